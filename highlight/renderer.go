// Package highlight renders XML as line-numbered, class-styled HTML.
package highlight

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is used when no theme preference has been stored.
const DefaultTheme = "github"

// Renderer highlights XML content.
type Renderer struct {
	lexer chroma.Lexer
}

// New returns a renderer using chroma's XML lexer.
func New() *Renderer {
	lexer := lexers.Get("xml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Renderer{lexer: chroma.Coalesce(lexer)}
}

// Render returns content as a <pre class="chroma"> block with every line
// prefixed by its 1-based line number. Empty content gives an empty code
// body inside the same container.
func (r *Renderer) Render(content string) string {
	var b strings.Builder
	b.WriteString(`<pre class="chroma"><code>`)
	for i, line := range r.lines(content) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, `<span class="line"><span class="ln">%d</span>`, i+1)
		for _, tok := range line {
			writeToken(&b, tok)
		}
		b.WriteString(`</span>`)
	}
	b.WriteString(`</code></pre>`)
	return b.String()
}

func (r *Renderer) lines(content string) [][]chroma.Token {
	if content == "" {
		return nil
	}
	var tokens []chroma.Token
	it, err := r.lexer.Tokenise(nil, content)
	if err != nil {
		tokens = []chroma.Token{{Type: chroma.Text, Value: content}}
	} else {
		tokens = it.Tokens()
	}
	lines := chroma.SplitTokensIntoLines(tokens)
	// The lexer appends a final newline, which leaves an empty last line.
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func blank(line []chroma.Token) bool {
	for _, tok := range line {
		if tok.Value != "" {
			return false
		}
	}
	return true
}

func writeToken(b *strings.Builder, tok chroma.Token) {
	value := strings.TrimRight(tok.Value, "\n")
	if value == "" {
		return
	}
	value = html.EscapeString(value)
	if class := classFor(tok.Type); class != "" {
		fmt.Fprintf(b, `<span class="%s">%s</span>`, class, value)
		return
	}
	b.WriteString(value)
}

// classFor maps a token type to the short CSS class chroma's stylesheets
// use, falling back to the sub-category and category.
func classFor(tt chroma.TokenType) string {
	for _, t := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if class, ok := chroma.StandardTypes[t]; ok {
			return class
		}
	}
	return ""
}

// Themes returns the names of all available themes, sorted.
func Themes() []string {
	return styles.Names()
}

// IsTheme reports whether name is a registered theme.
func IsTheme(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// WriteThemeCSS writes the stylesheet for the named theme.
func WriteThemeCSS(w io.Writer, name string) error {
	if !IsTheme(name) {
		return fmt.Errorf("unknown theme %q", name)
	}
	f := chromahtml.New(chromahtml.WithClasses(true))
	return f.WriteCSS(w, styles.Get(name))
}
