package pdf

import (
	"bytes"
	"fmt"
	"strings"

	dpdf "github.com/digitorus/pdf"
	"golang.org/x/text/encoding/unicode"
)

// Info is what Inspect reads back from a produced file.
type Info struct {
	Pages   int
	Title   string
	Subject string
	Creator string
}

// Inspect parses data and reports its page count and metadata.
func Inspect(data []byte) (Info, error) {
	reader, err := dpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("pdf: inspect: %w", err)
	}
	trailer := reader.Trailer()
	info := trailer.Key("Info")
	return Info{
		Pages:   int(trailer.Key("Root").Key("Pages").Key("Count").Int64()),
		Title:   infoText(info.Key("Title").RawString()),
		Subject: infoText(info.Key("Subject").RawString()),
		Creator: infoText(info.Key("Creator").RawString()),
	}, nil
}

// infoText decodes a metadata string written either as UTF-16BE with a
// byte-order mark or as plain bytes.
func infoText(raw string) string {
	if strings.HasPrefix(raw, "\xfe\xff") {
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().String(raw)
		if err == nil {
			return decoded
		}
	}
	return raw
}
