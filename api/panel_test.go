package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"xml-prettify/api"
	"xml-prettify/highlight"
	"xml-prettify/panel"
	"xml-prettify/preference"
	"xml-prettify/preview"
)

// newTestSession creates a session backed by a temp preference file.
func newTestSession(t *testing.T) *preview.Session {
	t.Helper()
	store, err := preference.NewStore(t.TempDir() + "/prefs.json")
	if err != nil {
		t.Fatalf("newTestSession: %v", err)
	}
	defaults := preference.Preferences{Theme: highlight.DefaultTheme}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return preview.NewSession(store, defaults, panel.NewManager(panel.Fixed(false)), logger)
}

func newTestServer(t *testing.T) (*httptest.Server, *preview.Session) {
	t.Helper()
	sess := newTestSession(t)
	staticFS := fstest.MapFS{
		"index.html": {Data: []byte("<html>shell</html>")},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptest.NewServer(api.RegisterRoutes(sess, staticFS, logger)), sess
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestShellPage(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "<html>shell</html>" {
		t.Fatalf("unexpected shell response %d %q", resp.StatusCode, body)
	}
}

func TestGetPanelNotOpen(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/panel")
	if err != nil {
		t.Fatalf("GET /api/panel: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestOpenTwiceRevealsSamePanel(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/panel", `{"selection":"<a><b>1</b></a>"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var first panel.Info
	json.NewDecoder(resp.Body).Decode(&first)

	resp2 := postJSON(t, srv.URL+"/api/panel", `{"selection":"<a/>"}`)
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on reveal, got %d", resp2.StatusCode)
	}
	var second panel.Info
	json.NewDecoder(resp2.Body).Decode(&second)

	if first.ID == "" || first.ID != second.ID {
		t.Fatalf("expected same panel, got %q and %q", first.ID, second.ID)
	}
	if second.Reveals != 1 {
		t.Fatalf("expected 1 reveal, got %d", second.Reveals)
	}
}

func TestOpenWithoutBody(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/panel", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestOpenBadBody(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/panel", `{bad`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSelectionIgnoredWhenClosed(t *testing.T) {
	srv, sess := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/selection", `{"text":"<a/>"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got map[string]bool
	json.NewDecoder(resp.Body).Decode(&got)
	if got["active"] {
		t.Fatal("expected active=false with no panel")
	}
	if _, ok := sess.Panels().Current(); ok {
		t.Fatal("selection opened a panel")
	}
}

func TestSelectionMissingText(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/selection", `{}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSelectionUpdatesDocument(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	postJSON(t, srv.URL+"/api/panel", `{}`).Body.Close()
	resp := postJSON(t, srv.URL+"/api/selection", `{"text":"<a><b>1</b></a>"}`)
	resp.Body.Close()

	doc, err := http.Get(srv.URL + "/api/panel/document")
	if err != nil {
		t.Fatalf("GET document: %v", err)
	}
	defer doc.Body.Close()
	body, _ := io.ReadAll(doc.Body)
	if doc.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", doc.StatusCode)
	}
	for _, want := range []string{`<span class="ln">3</span>`, "&lt;/a", `href="/themes/github.css"`, `id="theme"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("document missing %q", want)
		}
	}
}

func TestClosePanel(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	postJSON(t, srv.URL+"/api/panel", `{}`).Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/panel", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("second DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on second close, got %d", resp.StatusCode)
	}

	doc, _ := http.Get(srv.URL + "/api/panel/document")
	doc.Body.Close()
	if doc.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 document after close, got %d", doc.StatusCode)
	}
}

func TestGetPreferences(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/preferences")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var prefs preference.Preferences
	if err := json.NewDecoder(resp.Body).Decode(&prefs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if prefs.Theme != highlight.DefaultTheme {
		t.Fatalf("theme = %q", prefs.Theme)
	}
}

func TestThemeCSS(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/themes/monokai.css")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("unexpected content type %q", ct)
	}

	for _, path := range []string{"/themes/no-such-theme.css", "/themes/monokai"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("GET %s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}
