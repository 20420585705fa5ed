package html

import (
	"fmt"
	stdhtml "html"
	"regexp"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fosterdocs/pkg/document"
)

var (
	signaturePolicyOnce sync.Once
	signaturePolicy     *bluemonday.Policy
)

func signatureSanitizer() *bluemonday.Policy {
	signaturePolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowImages()
		p.AllowDataURIImages()
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z\- ]+$`)).OnElements("img")
		signaturePolicy = p
	})
	return signaturePolicy
}

// SignatureImage returns sanitised <img> markup for a stored signature
// reference. References that are not image data URIs or http(s) URLs, or
// that the policy strips, yield "".
func SignatureImage(ref, alt string) string {
	if !document.IsImageRef(ref) {
		return ""
	}
	raw := fmt.Sprintf(`<img src="%s" alt="%s" class="%s">`,
		stdhtml.EscapeString(ref), stdhtml.EscapeString(alt), ClassSignature)
	return signatureSanitizer().Sanitize(raw)
}

func signatureFilter(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	alt := ""
	if param != nil && !param.IsNil() {
		alt = param.String()
	}
	return pongo2.AsSafeValue(SignatureImage(in.String(), alt)), nil
}
