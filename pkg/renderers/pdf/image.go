package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for signature references that cannot be
// embedded: remote URLs and malformed data URIs.
var ErrUnsupportedImage = errors.New("pdf: unsupported signature image")

// preparedImage is a signature ready for embedding.
type preparedImage struct {
	data   []byte
	width  int
	height int
}

// decodeDataURI returns the payload of a data:image/... URI.
func decodeDataURI(ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(strings.ToLower(ref), "data:image/") {
		return nil, ErrUnsupportedImage
	}
	meta, payload, ok := strings.Cut(ref, ",")
	if !ok {
		return nil, ErrUnsupportedImage
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
		}
		return data, nil
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return []byte(decoded), nil
}

// prepareSignature decodes a png, jpeg, gif or webp signature, flattens it
// onto white, scales it and re-encodes it as JPEG.
func prepareSignature(ref string, scale, quality int) (preparedImage, error) {
	raw, err := decodeDataURI(ref)
	if err != nil {
		return preparedImage{}, err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return preparedImage{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return preparedImage{}, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	if scale < 1 {
		scale = 1
	}
	w, h := bounds.Dx()*scale, bounds.Dy()*scale

	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), flat, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return preparedImage{}, fmt.Errorf("pdf: encode signature: %w", err)
	}
	return preparedImage{data: buf.Bytes(), width: w, height: h}, nil
}
