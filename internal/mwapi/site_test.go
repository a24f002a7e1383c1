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

func TestNewBuildsAPIURL(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "defaults",
			opts: Options{Host: "wiki.example.org"},
			want: "https://wiki.example.org/w/api.php",
		},
		{
			name: "custom path and ext",
			opts: Options{Host: "wiki.example.org", Path: "/wiki/", Ext: ""},
			want: "https://wiki.example.org/wiki/api.php",
		},
		{
			name: "http scheme",
			opts: Options{Host: "localhost:8080", Scheme: "http"},
			want: "http://localhost:8080/w/api.php",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.SkipInit = true
			site, err := New(tt.opts)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if site.apiURL != tt.want {
				t.Errorf("apiURL = %q, want %q", site.apiURL, tt.want)
			}
		})
	}
}

func TestNewRejectsEmptyHost(t *testing.T) {
	for _, host := range []string{"", "   "} {
		if _, err := New(Options{Host: host, SkipInit: true}); !errors.Is(err, ErrInvalidHost) {
			t.Errorf("New(host=%q) = %v, want ErrInvalidHost", host, err)
		}
	}
}

func TestNewProbesSiteinfo(t *testing.T) {
	var actions []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actions = append(actions, r.URL.Query().Get("action"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"query": {"general": {"sitename": "TestWiki"}}}`)
	}))
	defer srv.Close()

	_, err := New(Options{
		Host:   strings.TrimPrefix(srv.URL, "http://"),
		Scheme: "http",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(actions) != 1 || actions[0] != "query" {
		t.Errorf("expected one siteinfo query, got %v", actions)
	}
}

func TestRawSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error": {"code": "badtitle", "info": "Bad title"}}`)
	}))
	defer srv.Close()

	site, err := New(Options{
		Host:     strings.TrimPrefix(srv.URL, "http://"),
		Scheme:   "http",
		SkipInit: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = site.Siteinfo(nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "badtitle" || apiErr.Info != "Bad title" {
		t.Errorf("unexpected error fields: %+v", apiErr)
	}
	if !errors.Is(err, ErrAPI) {
		t.Error("error does not wrap ErrAPI")
	}
}

func TestRawSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	site, err := New(Options{
		Host:     strings.TrimPrefix(srv.URL, "http://"),
		Scheme:   "http",
		SkipInit: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = site.Siteinfo(nil)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", httpErr.StatusCode)
	}
}

func TestLoginHandshake(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"query": {"tokens": {"logintoken": "tok+\\"}}}`)
		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				t.Error(err)
			}
			if got := r.PostForm.Get("lgtoken"); got != `tok+\` {
				t.Errorf("lgtoken = %q", got)
			}
			if r.PostForm.Get("lgname") != "alice" {
				t.Errorf("lgname = %q", r.PostForm.Get("lgname"))
			}
			fmt.Fprint(w, `{"login": {"result": "Success"}}`)
		}
	}))
	defer srv.Close()

	site, err := New(Options{
		Host:     strings.TrimPrefix(srv.URL, "http://"),
		Scheme:   "http",
		SkipInit: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := site.Login("alice", "sekrit"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !site.loggedIn {
		t.Error("site not marked logged in")
	}
}

func TestLoginFailureCarriesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			fmt.Fprint(w, `{"query": {"tokens": {"logintoken": "tok"}}}`)
			return
		}
		fmt.Fprint(w, `{"login": {"result": "Failed", "reason": "Incorrect password"}}`)
	}))
	defer srv.Close()

	site, err := New(Options{
		Host:     strings.TrimPrefix(srv.URL, "http://"),
		Scheme:   "http",
		SkipInit: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = site.Login("alice", "wrong")
	var loginErr *LoginError
	if !errors.As(err, &loginErr) {
		t.Fatalf("expected *LoginError, got %T: %v", err, err)
	}
	if loginErr.Reason != "Incorrect password" {
		t.Errorf("reason = %q", loginErr.Reason)
	}
	if !errors.Is(err, ErrLoginFailed) {
		t.Error("error does not wrap ErrLoginFailed")
	}
}

func TestRequireWritable(t *testing.T) {
	anon := &Site{}
	if err := anon.requireWritable("page.save"); err == nil {
		t.Error("expected write rejection for anonymous site")
	}

	allowed := &Site{allowAnon: true}
	if err := allowed.requireWritable("page.save"); err != nil {
		t.Errorf("unexpected rejection: %v", err)
	}

	logged := &Site{loggedIn: true}
	if err := logged.requireWritable("page.save"); err != nil {
		t.Errorf("unexpected rejection: %v", err)
	}
}

func TestImageAddsFilePrefix(t *testing.T) {
	site := &Site{}
	if got := site.Image("Example.png").Name(); got != "File:Example.png" {
		t.Errorf("Name = %q", got)
	}
	if got := site.Image("File:Example.png").Name(); got != "File:Example.png" {
		t.Errorf("Name = %q, prefix duplicated", got)
	}
}

func TestParamsEncode(t *testing.T) {
	p := Params{
		"flag":    true,
		"off":     false,
		"absent":  nil,
		"titles":  []any{"A", "B"},
		"limit":   "max",
		"numeric": json.Number("42"),
	}
	values := p.encode()

	if got := values.Get("flag"); got != "1" {
		t.Errorf("flag = %q, want 1", got)
	}
	if values.Has("off") || values.Has("absent") {
		t.Error("false/nil parameters must be omitted")
	}
	if got := values.Get("titles"); got != "A|B" {
		t.Errorf("titles = %q, want A|B", got)
	}
	if got := values.Get("numeric"); got != "42" {
		t.Errorf("numeric = %q, want 42", got)
	}
}
