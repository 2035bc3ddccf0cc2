package xmlformat

import (
	"regexp"
	"strconv"
	"strings"
)

// xmlfmt finds tags with a regular expression, so markup-like text inside
// CDATA, comments or attribute values would corrupt its indent count. A
// holder swaps such spans for NUL-delimited tokens before formatting and
// puts them back afterwards. NUL never appears in well-formed XML.
type holder struct {
	spans []string
}

var (
	leafToken   = regexp.MustCompile(`<\x00(\d+)\x00/>`)
	inlineToken = regexp.MustCompile(`\x00(\d+)\x00`)
)

const xmlSpace = " \t\r\n"

// hold stores s and returns the inline token standing for it.
func (h *holder) hold(s string) string {
	h.spans = append(h.spans, s)
	return "\x00" + strconv.Itoa(len(h.spans)-1) + "\x00"
}

// leaf stores s behind an empty-element token. xmlfmt puts it on its own
// line at the current depth.
func (h *holder) leaf(s string) string {
	return "<" + h.hold(s) + "/>"
}

func (h *holder) mask(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		rest := s[i:]
		var n int
		switch {
		case strings.HasPrefix(rest, "<![CDATA["):
			n = spanEnd(rest, "<![CDATA[", "]]>")
			b.WriteString(h.hold(rest[:n]))
		case strings.HasPrefix(rest, "<!--"):
			n = spanEnd(rest, "<!--", "-->")
			b.WriteString(h.leaf(rest[:n]))
		case strings.HasPrefix(rest, "<?"):
			n = spanEnd(rest, "<?", "?>")
			b.WriteString(h.leaf(rest[:n]))
		case strings.HasPrefix(rest, "<!"):
			n = declEnd(rest)
			b.WriteString(h.leaf(rest[:n]))
		case rest[0] == '<':
			n = h.maskTag(&b, rest)
		default:
			n = strings.IndexByte(rest, '<')
			if n < 0 {
				n = len(rest)
			}
			h.maskText(&b, rest[:n])
		}
		i += n
	}
	return b.String()
}

// spanEnd returns the length of the span opened by start at the beginning
// of s and closed by end.
func spanEnd(s, start, end string) int {
	if i := strings.Index(s[len(start):], end); i >= 0 {
		return len(start) + i + len(end)
	}
	return len(s)
}

// declEnd returns the length of a <!DOCTYPE ...> declaration, including
// any internal subset.
func declEnd(s string) int {
	depth := 0
	var quote byte
	for i := 2; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '>' && depth == 0:
			return i + 1
		}
	}
	return len(s)
}

// maskTag copies the start or end tag at the beginning of s into b with its
// attribute values held, and returns the tag's length.
func (h *holder) maskTag(b *strings.Builder, s string) int {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\'':
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				b.WriteString(s[i:])
				return len(s)
			}
			b.WriteByte(c)
			b.WriteString(h.hold(s[i+1 : i+1+end]))
			b.WriteByte(c)
			i += end + 1
		case '>':
			b.WriteByte(c)
			return i + 1
		default:
			b.WriteByte(c)
		}
	}
	return len(s)
}

// maskText holds a text run without its leading and trailing whitespace,
// which stays visible as layout.
func (h *holder) maskText(b *strings.Builder, s string) {
	lead := len(s) - len(strings.TrimLeft(s, xmlSpace))
	core := strings.TrimRight(s[lead:], xmlSpace)
	if core == "" {
		b.WriteString(s)
		return
	}
	b.WriteString(s[:lead])
	b.WriteString(h.hold(core))
	b.WriteString(s[lead+len(core):])
}

func (h *holder) restore(s string) string {
	s = leafToken.ReplaceAllStringFunc(s, h.lookup(leafToken))
	return inlineToken.ReplaceAllStringFunc(s, h.lookup(inlineToken))
}

func (h *holder) lookup(re *regexp.Regexp) func(string) string {
	return func(tok string) string {
		i, err := strconv.Atoi(re.FindStringSubmatch(tok)[1])
		if err != nil || i >= len(h.spans) {
			return tok
		}
		return h.spans[i]
	}
}
