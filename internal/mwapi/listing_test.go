// SPDX-License-Identifier: MPL-2.0

package mwapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

// searchSite builds a site against a server paging two batches of search
// results, recording the request count in *requests.
func searchSite(t *testing.T, requests *int) *Site {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("sroffset") == "" {
			fmt.Fprint(w, `{
				"continue": {"continue": "-||", "sroffset": 2},
				"query": {"search": [{"title": "A"}, {"title": "B"}]}
			}`)
			return
		}
		fmt.Fprint(w, `{"query": {"search": [{"title": "C"}]}}`)
	}))
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

func TestListingFollowsContinuation(t *testing.T) {
	requests := 0
	site := searchSite(t, &requests)

	result, err := site.Search("go", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	var titles []string
	for {
		item, err := result.Stream.Next()
		if errors.Is(err, ErrEndOfList) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		titles = append(titles, item.(map[string]any)["title"].(string))
	}

	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
	if requests != 2 {
		t.Errorf("expected 2 batch requests, got %d", requests)
	}
}

func TestListingEndOfListIsSticky(t *testing.T) {
	requests := 0
	site := searchSite(t, &requests)

	result, err := site.Search("go", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := result.Stream.Next(); err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := result.Stream.Next(); !errors.Is(err, ErrEndOfList) {
			t.Fatalf("expected ErrEndOfList, got %v", err)
		}
	}
}

func TestListingCappedConsumerFetchesOneBatch(t *testing.T) {
	requests := 0
	site := searchSite(t, &requests)

	result, err := site.Search("go", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if requests != 0 {
		t.Fatalf("stream construction already fetched %d batches", requests)
	}

	for i := 0; i < 2; i++ {
		if _, err := result.Stream.Next(); err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
	}
	if requests != 1 {
		t.Errorf("expected a single batch request, got %d", requests)
	}
}

func TestPropItemsStablePageOrder(t *testing.T) {
	query := map[string]any{
		"pages": map[string]any{
			"20": map[string]any{"links": []any{"late"}},
			"3":  map[string]any{"links": []any{"early", "mid"}},
		},
	}

	got := propItems(query, "links")
	// Page ids sort lexically, so "20" precedes "3".
	want := []any{"late", "early", "mid"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("propItems = %v, want %v", got, want)
	}
}

func TestPropItemsMissingPages(t *testing.T) {
	if got := propItems(map[string]any{}, "links"); got != nil {
		t.Errorf("expected nil for absent pages, got %v", got)
	}
}

func TestApplyPrefixedRewritesFriendlyNames(t *testing.T) {
	opts := Params{
		"limit":  json.Number("5"),
		"what":   "text",
		"srwhat": "title",
		"custom": "x",
	}
	got := applyPrefixed(Params{"srsearch": "go"}, opts, "sr", "what", "limit")

	want := Params{
		"srsearch": "go",
		"srlimit":  json.Number("5"),
		"srwhat":   "title",
		"custom":   "x",
	}
	// "what" and "srwhat" collide after prefixing; map iteration decides the
	// winner, so only assert on the unambiguous keys.
	for _, key := range []string{"srsearch", "srlimit", "custom"} {
		if !reflect.DeepEqual(got[key], want[key]) {
			t.Errorf("got[%q] = %v, want %v", key, got[key], want[key])
		}
	}
}

func TestApplyPrefixedDefaultsLimitToMax(t *testing.T) {
	got := applyPrefixed(Params{}, nil, "ap", "limit")
	if got["aplimit"] != "max" {
		t.Errorf("aplimit = %v, want max", got["aplimit"])
	}
}
