// Package xmlformat turns raw editor selections into pretty-printed XML.
package xmlformat

import "strings"

// Candidates returns the strings worth formatting for a selection, most
// specific interpretation first. Text that does not start with '<' after
// trimming is not XML and yields no candidates.
func Candidates(text string) []string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "<") {
		return nil
	}
	out := make([]string, 0, len(Attempts))
	for _, a := range Attempts {
		out = append(out, a.Transform(text))
	}
	return out
}

// unescapeQuotes handles selections copied out of JSON strings or logs,
// where attribute quotes arrive as \".
func unescapeQuotes(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}

// Attempt is one way of reading a selection as XML.
type Attempt struct {
	Name      string
	Transform func(string) string
}

// Attempts is the ordered list tried by First. Order matters: the first
// attempt whose output formats wins.
var Attempts = []Attempt{
	{Name: "unescaped", Transform: unescapeQuotes},
	{Name: "raw", Transform: func(s string) string { return s }},
}

// Result is the outcome of First.
type Result struct {
	Text    string
	OK      bool
	Attempt string
}

// First runs Attempts against the trimmed text and returns the first
// successful format. Text that is not XML never reaches the formatter.
func First(text string) Result {
	return firstWith(text, Format)
}

func firstWith(text string, format func(string) (string, error)) Result {
	for i, c := range Candidates(text) {
		out, err := format(c)
		if err != nil {
			continue
		}
		return Result{Text: out, OK: true, Attempt: Attempts[i].Name}
	}
	return Result{}
}
