package preview

import (
	"html/template"
	"strings"

	"xml-prettify/preference"
)

// Page is everything the panel document shows.
type Page struct {
	preference.Preferences
	Themes        []string
	ShowSupporter bool
	// Body is trusted markup from the highlighter.
	Body string
}

// Render assembles the self-contained panel document for page.
func Render(page Page) (string, error) {
	var b strings.Builder
	err := documentTmpl.Execute(&b, struct {
		Page
		Body template.HTML
	}{page, template.HTML(page.Body)})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<link rel="stylesheet" href="/themes/{{.Theme}}.css">
<style>
body { margin: 0; font-family: sans-serif; }
.toolbar { position: sticky; top: 0; display: flex; gap: 1em; align-items: center; padding: 4px 8px; font-size: 12px; border-bottom: 1px solid #8884; background: inherit; }
.toolbar label { cursor: pointer; }
.supporter { margin-left: auto; }
pre.chroma { margin: 0; padding: 8px; font-size: 13px; }
.chroma .ln { display: inline-block; min-width: 3ch; text-align: right; margin-right: 1em; opacity: .6; user-select: none; -webkit-user-select: none; }
body.wrap pre.chroma { white-space: pre-wrap; word-break: break-all; }
</style>
</head>
<body class="bg{{if .WordWrap}} wrap{{end}}">
<div class="toolbar">
<label><input type="checkbox" id="wrap"{{if .WordWrap}} checked{{end}}> Word wrap</label>
<label><input type="checkbox" id="sticky"{{if .Sticky}} checked{{end}}> Sticky</label>
<select id="theme">
{{- range .Themes}}
<option value="{{.}}"{{if eq . $.Theme}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
{{- if .ShowSupporter}}
<span class="supporter">Enjoying the preview? <a href="https://github.com/sponsors" target="_blank" rel="noopener">Support it</a></span>
{{- end}}
</div>
{{.Body}}
<script>
(function () {
  function post(msg) { window.parent.postMessage(msg, "*"); }
  var wrap = document.getElementById("wrap");
  wrap.addEventListener("change", function () {
    document.body.classList.toggle("wrap", wrap.checked);
    post({type: "wrapChanged", wrap: wrap.checked});
  });
  var sticky = document.getElementById("sticky");
  sticky.addEventListener("change", function () {
    post({type: "stickyChanged", sticky: sticky.checked});
  });
  var theme = document.getElementById("theme");
  theme.addEventListener("change", function () {
    post({type: "themeChanged", theme: theme.value});
  });
  window.addEventListener("error", function (e) {
    post({type: "logMessage", text: String(e.message)});
  });
})();
</script>
</body>
</html>
`))
