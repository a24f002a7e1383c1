// SPDX-License-Identifier: MPL-2.0

package mwapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testSite builds a site against handler with init skipped.
func testSite(t *testing.T, handler http.HandlerFunc) *Site {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	site, err := New(Options{
		Host:     strings.TrimPrefix(srv.URL, "http://"),
		Scheme:   "http",
		SkipInit: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return site
}

func TestPageText(t *testing.T) {
	site := testSite(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("titles"); got != "Main Page" {
			t.Errorf("titles = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"query": {"pages": {"1": {"revisions": [{"*": "''wikitext''"}]}}}}`)
	})

	result, err := site.Page("Main Page").Text(nil)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if result.Scalar != "''wikitext''" {
		t.Errorf("text = %q", result.Scalar)
	}
}

func TestPageTextMissingPageIsEmpty(t *testing.T) {
	site := testSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"query": {"pages": {"-1": {"missing": ""}}}}`)
	})

	result, err := site.Page("No Such Page").Text(nil)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if result.Scalar != "" {
		t.Errorf("text = %q, want empty", result.Scalar)
	}
}

func TestPageEditRejectedWhenAnonymous(t *testing.T) {
	site := testSite(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a rejected write")
	})

	_, err := site.Page("Sandbox").Save("text", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "mustbeloggedin" {
		t.Errorf("code = %q, want mustbeloggedin", apiErr.Code)
	}
}

func TestPageSaveCarriesToken(t *testing.T) {
	site := testSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			fmt.Fprint(w, `{"query": {"tokens": {"csrftoken": "csrf+\\"}}}`)
			return
		}
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		if got := r.PostForm.Get("token"); got != `csrf+\` {
			t.Errorf("token = %q", got)
		}
		if got := r.PostForm.Get("text"); got != "new content" {
			t.Errorf("text = %q", got)
		}
		fmt.Fprint(w, `{"edit": {"result": "Success"}}`)
	})
	site.allowAnon = true

	result, err := site.Page("Sandbox").Save("new content", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	edit, ok := result.Structure["result"]
	if !ok || edit != "Success" {
		t.Errorf("edit result = %v", result.Structure)
	}
}

func TestPageTokenIsCached(t *testing.T) {
	tokenFetches := 0
	site := testSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			tokenFetches++
			fmt.Fprint(w, `{"query": {"tokens": {"csrftoken": "tok"}}}`)
			return
		}
		fmt.Fprint(w, `{"edit": {"result": "Success"}}`)
	})
	site.allowAnon = true

	page := site.Page("Sandbox")
	for i := 0; i < 2; i++ {
		if _, err := page.Append("more", nil); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	if tokenFetches != 1 {
		t.Errorf("token fetched %d times, want 1", tokenFetches)
	}
}

func TestPagePurge(t *testing.T) {
	site := testSite(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"purge": [{"title": "Sandbox", "purged": ""}]}`)
	})

	result, err := site.Page("Sandbox").Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if result.Kind != KindSequence || len(result.Sequence) != 1 {
		t.Errorf("unexpected purge result: %#v", result)
	}
}

func TestPageInfoFlags(t *testing.T) {
	site := testSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"query": {"pages": {"7": {"length": 1234, "redirect": ""}}}}`)
	})
	page := site.Page("Sandbox")

	exists, err := page.Exists()
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists.Scalar != true {
		t.Error("page should exist")
	}

	length, err := page.Length()
	if err != nil {
		t.Fatalf("Length: %v", err)
	}
	if length.Scalar != json.Number("1234") {
		t.Errorf("length = %v", length.Scalar)
	}

	redirect, err := page.Redirect()
	if err != nil {
		t.Fatalf("Redirect: %v", err)
	}
	if redirect.Scalar != true {
		t.Error("redirect flag lost")
	}
}
