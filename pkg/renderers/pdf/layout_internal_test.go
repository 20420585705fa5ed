package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestBlock_MovesToNextPageWhenItDoesNotFit(t *testing.T) {
	w := New().newWriter()
	w.pdf.AddPage()
	w.pdf.SetXY(w.left, w.bottom-10)

	var drawnAt []float64
	rows := []row{
		{height: 8, draw: func(_, y float64) { drawnAt = append(drawnAt, y) }},
		{height: 8, draw: func(_, y float64) { drawnAt = append(drawnAt, y) }},
	}
	w.block(rows)

	if got := w.pdf.PageNo(); got != 2 {
		t.Fatalf("page = %d, want 2", got)
	}
	if drawnAt[0] != w.top || drawnAt[1] != w.top+8 {
		t.Fatalf("rows drawn at %v, want both on the new page", drawnAt)
	}
}

func TestBlock_StaysWhenItFits(t *testing.T) {
	w := New().newWriter()
	w.pdf.AddPage()
	w.pdf.SetXY(w.left, w.bottom-20)

	w.block([]row{{height: 8, draw: func(float64, float64) {}}, {height: 8, draw: func(float64, float64) {}}})

	if got := w.pdf.PageNo(); got != 1 {
		t.Fatalf("page = %d, want 1", got)
	}
}

func TestBlock_OversizedBreaksBetweenRows(t *testing.T) {
	w := New().newWriter()
	w.pdf.AddPage()
	w.pdf.SetXY(w.left, w.top)

	usable := w.bottom - w.top
	rows := make([]row, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, row{height: usable / 2, draw: func(float64, float64) {}})
	}
	w.block(rows)

	if got := w.pdf.PageNo(); got != 2 {
		t.Fatalf("page = %d, want 2", got)
	}
}

func TestPrepareSignature_FlattensAndScales(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 5))
	src.Set(0, 0, color.NRGBA{A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	got, err := prepareSignature(ref, 2, 95)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if got.width != 20 || got.height != 10 {
		t.Fatalf("size = %dx%d, want 20x10", got.width, got.height)
	}
	out, err := jpeg.Decode(bytes.NewReader(got.data))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	r, g, b, _ := out.At(15, 8).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Fatalf("transparent area should flatten to white, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestDecodeDataURI(t *testing.T) {
	if _, err := decodeDataURI("https://example.org/sig.png"); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage for URL, got %v", err)
	}
	if _, err := decodeDataURI("data:image/png;base64,@@@"); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage for bad payload, got %v", err)
	}
	data, err := decodeDataURI("data:image/svg+xml,%3Csvg%3E")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(data) != "<svg>" {
		t.Fatalf("payload = %q", data)
	}
}
