// SPDX-License-Identifier: MPL-2.0

package call

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mwcli/internal/mwapi"
	"mwcli/internal/registry"
)

// parseTestTarget builds a page target whose site answers every parse call
// with the given JSON body.
func parseTestTarget(t *testing.T, title, response string) registry.Target {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	site, err := mwapi.New(mwapi.Options{
		Host:     strings.TrimPrefix(srv.URL, "http://"),
		Scheme:   "http",
		SkipInit: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return registry.Target{Site: site, Page: site.Page(title)}
}

func TestApplyMarkdownRendersWikitext(t *testing.T) {
	target := parseTestTarget(t, "Main_Page", `{"parse": {"text": {"*": "<p>rendered <b>body</b></p>"}}}`)
	method := &registry.Method{Name: "text", Render: registry.RenderWikitext}

	got, err := ApplyMarkdown(target, method, mwapi.NewScalar("''wikitext''"))
	if err != nil {
		t.Fatalf("ApplyMarkdown: %v", err)
	}

	text, ok := got.Scalar.(string)
	if !ok {
		t.Fatalf("expected string result, got %#v", got)
	}
	if !strings.HasPrefix(text, "# Main Page\n\n") {
		t.Errorf("missing heading: %q", text)
	}
	if !strings.Contains(text, "**body**") {
		t.Errorf("body not converted to Markdown: %q", text)
	}
}

func TestApplyMarkdownFallsBackToWikitext(t *testing.T) {
	target := parseTestTarget(t, "Main_Page", `{"parse": {}}`)
	method := &registry.Method{Name: "text", Render: registry.RenderWikitext}

	got, err := ApplyMarkdown(target, method, mwapi.NewScalar("plain text\n"))
	if err != nil {
		t.Fatalf("ApplyMarkdown: %v", err)
	}
	if want := "# Main Page\n\nplain text"; got.Scalar != want {
		t.Errorf("result = %q, want %q", got.Scalar, want)
	}
}

func TestApplyMarkdownHeadingOnlyForEmptyBody(t *testing.T) {
	target := parseTestTarget(t, "Empty_Page", `{"parse": {}}`)
	method := &registry.Method{Name: "text", Render: registry.RenderWikitext}

	got, err := ApplyMarkdown(target, method, mwapi.NewScalar("   \n"))
	if err != nil {
		t.Fatalf("ApplyMarkdown: %v", err)
	}
	if want := "# Empty Page"; got.Scalar != want {
		t.Errorf("result = %q, want %q", got.Scalar, want)
	}
}

func TestApplyMarkdownParseReplacesStructure(t *testing.T) {
	method := &registry.Method{Name: "parse", Render: registry.RenderParse}
	result := mwapi.NewStructure(map[string]any{
		"title": "Sandbox",
		"text":  map[string]any{"*": "<h2>Section</h2>"},
	})

	got, err := ApplyMarkdown(registry.Target{}, method, result)
	if err != nil {
		t.Fatalf("ApplyMarkdown: %v", err)
	}
	text, ok := got.Scalar.(string)
	if !ok {
		t.Fatalf("expected string result, got %#v", got)
	}
	if !strings.Contains(text, "## Section") {
		t.Errorf("fragment not converted: %q", text)
	}
}

func TestApplyMarkdownParseWithoutFragmentPassesThrough(t *testing.T) {
	method := &registry.Method{Name: "parse", Render: registry.RenderParse}
	result := mwapi.NewStructure(map[string]any{"title": "Sandbox"})

	got, err := ApplyMarkdown(registry.Target{}, method, result)
	if err != nil {
		t.Fatalf("ApplyMarkdown: %v", err)
	}
	if got.Kind != mwapi.KindStructure {
		t.Errorf("expected passthrough structure, got kind %v", got.Kind)
	}
}

func TestApplyMarkdownImageTextPassesThrough(t *testing.T) {
	method, ok := registry.Lookup(registry.EntityImage, "text")
	if !ok {
		t.Fatal("image.text not found")
	}

	// No site is wired up: a passthrough must not re-render anything.
	target := registry.Target{}
	got, err := ApplyMarkdown(target, method, mwapi.NewScalar("''file page wikitext''"))
	if err != nil {
		t.Fatalf("ApplyMarkdown: %v", err)
	}
	if got.Scalar != "''file page wikitext''" {
		t.Errorf("image text rewritten: %#v", got)
	}
}

func TestApplyMarkdownNoneIsIdentity(t *testing.T) {
	method := &registry.Method{Name: "exists", Render: registry.RenderNone}
	result := mwapi.NewScalar(true)

	got, err := ApplyMarkdown(registry.Target{}, method, result)
	if err != nil {
		t.Fatalf("ApplyMarkdown: %v", err)
	}
	if got.Scalar != true {
		t.Errorf("result changed: %#v", got)
	}
}
