package xmlformat

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-xmlfmt/xmlfmt"
)

// Indent is the per-level indentation of formatted output.
const Indent = "  "

var ErrMalformed = errors.New("xml not well-formed")

// beautify is the underlying pretty-printer.
var beautify = xmlfmt.FormatXML

// Format pretty-prints candidate with two-space indentation, keeping text
// content on the same line as its element. Text, CDATA, comments and
// attribute values are copied through unchanged. It fails with ErrMalformed
// when candidate is not a well-formed document.
func Format(candidate string) (out string, err error) {
	if err := wellFormed(candidate); err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	var h holder
	out = beautify(h.mask(candidate), "", Indent)
	return h.restore(tidy(out)), nil
}

// tidy normalises line endings and drops the blank lines xmlfmt leaves
// behind when text sits next to a child element. It runs on masked output,
// so only layout whitespace is touched.
func tidy(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

// wellFormed runs a strict token pass over s. xmlfmt itself never rejects
// input, so this is the only place malformed selections are caught.
func wellFormed(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w: NUL character", ErrMalformed)
	}
	d := xml.NewDecoder(strings.NewReader(s))
	d.Strict = true

	depth, roots := 0, 0
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return fmt.Errorf("%w: more than one root element", ErrMalformed)
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(strings.TrimSpace(string(t))) > 0 {
				return fmt.Errorf("%w: text outside root element", ErrMalformed)
			}
		}
	}
	if roots == 0 {
		return fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return nil
}
