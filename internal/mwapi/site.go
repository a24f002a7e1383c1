// SPDX-License-Identifier: MPL-2.0

package mwapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/charmbracelet/log"
)

const defaultUserAgent = "mwcli (github.com/mwcli/mwcli)"

type (
	// Site is a connection to one MediaWiki installation. It is used by
	// exactly one logical call per process invocation; no locking.
	Site struct {
		host      string
		scheme    string
		path      string
		ext       string
		apiURL    string
		userAgent string
		allowAnon bool

		client *http.Client
		logger *log.Logger

		loggedIn  bool
		csrfToken string
	}

	// Options configures New. Zero values select the usual MediaWiki
	// defaults (https, /w/, .php).
	Options struct {
		// Host is the wiki host without scheme (required).
		Host string
		// Path is the script path with trailing slash. Default: /w/.
		Path string
		// Ext is the script extension. Default: .php.
		Ext string
		// Scheme is http or https. Default: https.
		Scheme string
		// UserAgent is prefixed to the default client identification.
		UserAgent string
		// AllowAnon permits write operations without a login.
		AllowAnon bool
		// SkipInit skips the initial siteinfo request.
		SkipInit bool
		// Logger receives request-level debug logging. Default: log.Default().
		Logger *log.Logger
		// HTTPClient overrides the transport. Default: http.DefaultClient.
		HTTPClient *http.Client
	}
)

// New builds a Site and, unless opts.SkipInit is set, performs the initial
// siteinfo request to verify the endpoint answers.
func New(opts Options) (*Site, error) {
	if strings.TrimSpace(opts.Host) == "" {
		return nil, ErrInvalidHost
	}
	if opts.Path == "" {
		opts.Path = "/w/"
	}
	if opts.Ext == "" {
		opts.Ext = ".php"
	}
	if opts.Scheme == "" {
		opts.Scheme = "https"
	}
	if opts.HTTPClient == nil {
		// Session cookies from the login handshake must survive across
		// requests, so the default client carries a jar.
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		opts.HTTPClient = &http.Client{Jar: jar}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	agent := defaultUserAgent
	if opts.UserAgent != "" {
		agent = opts.UserAgent + " " + defaultUserAgent
	}

	s := &Site{
		host:      opts.Host,
		scheme:    opts.Scheme,
		path:      opts.Path,
		ext:       opts.Ext,
		apiURL:    fmt.Sprintf("%s://%s%sapi%s", opts.Scheme, opts.Host, opts.Path, opts.Ext),
		userAgent: agent,
		allowAnon: opts.AllowAnon,
		client:    opts.HTTPClient,
		logger:    opts.Logger,
	}

	if !opts.SkipInit {
		if _, err := s.Siteinfo(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Host returns the configured wiki host.
func (s *Site) Host() string { return s.host }

// Page returns a page-level target for the given title.
func (s *Site) Page(title string) *Page {
	return &Page{site: s, name: title}
}

// Image returns an image-level target for the given title. The File:
// namespace prefix is added when missing.
func (s *Site) Image(title string) *Image {
	if !strings.Contains(title, ":") {
		title = "File:" + title
	}
	return &Image{Page: Page{site: s, name: title}}
}

// Login performs the two-step token handshake. All subsequent requests on
// this Site carry the session cookies of the logged-in user.
func (s *Site) Login(username, password string) error {
	resp, err := s.raw("GET", Params{
		"action": "query",
		"meta":   "tokens",
		"type":   "login",
	})
	if err != nil {
		return err
	}
	token := nestedString(resp, "query", "tokens", "logintoken")
	if token == "" {
		return &LoginError{Reason: "no login token in response"}
	}

	resp, err = s.raw("POST", Params{
		"action":     "login",
		"lgname":     username,
		"lgpassword": password,
		"lgtoken":    token,
	})
	if err != nil {
		return err
	}
	result := nestedString(resp, "login", "result")
	if result != "Success" {
		reason := nestedString(resp, "login", "reason")
		if reason == "" {
			reason = result
		}
		return &LoginError{Reason: reason}
	}
	s.loggedIn = true
	s.csrfToken = ""
	return nil
}

// raw performs one API request and decodes the JSON response. Numbers are
// decoded as json.Number to keep integer fidelity. An "error" member in the
// body is surfaced as *APIError.
func (s *Site) raw(method string, params Params) (map[string]any, error) {
	values := params.encode()
	values.Set("format", "json")

	var (
		req *http.Request
		err error
	)
	if method == http.MethodPost {
		req, err = http.NewRequest(http.MethodPost, s.apiURL, strings.NewReader(values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequest(http.MethodGet, s.apiURL+"?"+values.Encode(), nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	s.logger.Debug("api request",
		"method", method,
		"action", values.Get("action"),
		"params", params.sortedKeys())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: s.apiURL}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode api response: %w", err)
	}

	if apiErr, ok := body["error"].(map[string]any); ok {
		return nil, &APIError{
			Code: stringOr(apiErr["code"]),
			Info: stringOr(apiErr["info"]),
		}
	}
	return body, nil
}

// fetchBytes downloads a raw URL (used for file downloads) with the Site's
// client and user agent.
func (s *Site) fetchBytes(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	s.logger.Debug("file download", "url", rawURL)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}
	return io.ReadAll(resp.Body)
}

// token fetches and caches the CSRF token required by write operations.
func (s *Site) token() (string, error) {
	if s.csrfToken != "" {
		return s.csrfToken, nil
	}
	resp, err := s.raw("GET", Params{
		"action": "query",
		"meta":   "tokens",
	})
	if err != nil {
		return "", err
	}
	token := nestedString(resp, "query", "tokens", "csrftoken")
	if token == "" {
		return "", &APIError{Code: "notoken", Info: "no csrf token in response"}
	}
	s.csrfToken = token
	return token, nil
}

// requireWritable rejects write operations for anonymous connections unless
// the Site was built with AllowAnon.
func (s *Site) requireWritable(op string) error {
	if s.loggedIn || s.allowAnon {
		return nil
	}
	return &APIError{
		Code: "mustbeloggedin",
		Info: fmt.Sprintf("%s requires a login (or --allow-anon)", op),
	}
}

// --- Site operations ---

// Siteinfo fetches general site metadata. Extra siprop values can be
// requested through opts (for example siprop=general|namespaces).
func (s *Site) Siteinfo(opts Params) (Result, error) {
	base := Params{
		"action": "query",
		"meta":   "siteinfo",
		"siprop": "general",
	}
	resp, err := s.raw("GET", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	query, _ := resp["query"].(map[string]any)
	return NewStructure(query), nil
}

// Search streams full-text search results. Friendly options: what, namespace,
// limit; anything else is forwarded as a raw API parameter.
func (s *Site) Search(query string, opts Params) (Result, error) {
	base := applyPrefixed(Params{"srsearch": query}, opts, "sr", "what", "namespace", "limit", "offset")
	return NewStream(newListing(s, "search", "search", base)), nil
}

// Allpages streams pages, optionally filtered by prefix or namespace.
func (s *Site) Allpages(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "ap", "prefix", "namespace", "limit", "from", "to", "filterredir")
	return NewStream(newListing(s, "allpages", "allpages", base)), nil
}

// Allcategories streams category names.
func (s *Site) Allcategories(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "ac", "prefix", "limit", "from", "to")
	return NewStream(newListing(s, "allcategories", "allcategories", base)), nil
}

// Allusers streams registered users.
func (s *Site) Allusers(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "au", "prefix", "limit", "from", "group")
	return NewStream(newListing(s, "allusers", "allusers", base)), nil
}

// Allimages streams files, optionally filtered by prefix.
func (s *Site) Allimages(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "ai", "prefix", "limit", "from", "to", "sha1")
	return NewStream(newListing(s, "allimages", "allimages", base)), nil
}

// RecentChanges streams the recent changes feed.
func (s *Site) RecentChanges(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "rc", "limit", "namespace", "type", "show", "start", "end", "dir")
	return NewStream(newListing(s, "recentchanges", "recentchanges", base)), nil
}

// LogEvents streams log entries.
func (s *Site) LogEvents(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "le", "limit", "type", "action", "user", "title", "start", "end")
	return NewStream(newListing(s, "logevents", "logevents", base)), nil
}

// UserContributions streams edits by the given user.
func (s *Site) UserContributions(user string, opts Params) (Result, error) {
	base := applyPrefixed(Params{"ucuser": user}, opts, "uc", "limit", "namespace", "start", "end", "show", "dir")
	return NewStream(newListing(s, "usercontribs", "usercontribs", base)), nil
}

// Users returns account information for the given users (pipe-separated).
func (s *Site) Users(users string, opts Params) (Result, error) {
	base := Params{
		"action":  "query",
		"list":    "users",
		"ususers": users,
		"usprop":  "blockinfo|groups|registration|editcount",
	}
	resp, err := s.raw("GET", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	query, _ := resp["query"].(map[string]any)
	items, _ := query["users"].([]any)
	return NewSequence(items), nil
}

// ExpandTemplates expands wikitext templates and returns the wikitext.
func (s *Site) ExpandTemplates(text string, opts Params) (Result, error) {
	base := Params{
		"action": "expandtemplates",
		"text":   text,
	}
	resp, err := s.raw("GET", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	// The expansion lives at expandtemplates.* in the default format.
	if expanded := nestedString(resp, "expandtemplates", "*"); expanded != "" {
		return NewScalar(expanded), nil
	}
	inner, _ := resp["expandtemplates"].(map[string]any)
	return NewStructure(inner), nil
}

// Parse renders wikitext (or an existing page) to HTML. The rendered
// fragment lives at text.* in the returned structure.
func (s *Site) Parse(opts Params) (Result, error) {
	base := Params{"action": "parse"}
	resp, err := s.raw("POST", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	inner, _ := resp["parse"].(map[string]any)
	return NewStructure(inner), nil
}

// Revisions fetches revision metadata for the given revision ids
// (pipe-separated).
func (s *Site) Revisions(revids string, opts Params) (Result, error) {
	base := Params{
		"action": "query",
		"revids": revids,
		"prop":   "revisions",
		"rvprop": "ids|timestamp|flags|comment|user",
	}
	resp, err := s.raw("GET", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	query, _ := resp["query"].(map[string]any)
	return NewSequence(propItems(query, "revisions")), nil
}

// Get performs a raw GET call with an arbitrary action.
func (s *Site) Get(action string, opts Params) (Result, error) {
	base := Params{"action": action}
	resp, err := s.raw("GET", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	return NewStructure(resp), nil
}

// Post performs a raw POST call with an arbitrary action.
func (s *Site) Post(action string, opts Params) (Result, error) {
	base := Params{"action": action}
	resp, err := s.raw("POST", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	return NewStructure(resp), nil
}

// --- helpers ---

// nestedString walks a decoded JSON object by the given keys and returns the
// string leaf, or "" when any step is missing or not a string.
func nestedString(m map[string]any, keys ...string) string {
	var current any = m
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = obj[key]
	}
	s, _ := current.(string)
	return s
}

func stringOr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
