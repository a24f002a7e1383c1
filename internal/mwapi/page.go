// SPDX-License-Identifier: MPL-2.0

package mwapi

import "encoding/json"

// Page is a page-level target. It holds no remote state; every operation is
// one API request against the owning Site.
type Page struct {
	site *Site
	name string
}

// Name returns the page title this target addresses.
func (p *Page) Name() string { return p.name }

// Site returns the owning connection.
func (p *Page) Site() *Site { return p.site }

// Text fetches the current wikitext of the page. A missing page yields the
// empty string, matching the behavior of reading a page that does not exist.
func (p *Page) Text(opts Params) (Result, error) {
	base := Params{
		"action":  "query",
		"prop":    "revisions",
		"rvprop":  "content",
		"rvlimit": "1",
		"titles":  p.name,
	}
	resp, err := p.site.raw("GET", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	query, _ := resp["query"].(map[string]any)
	revisions := propItems(query, "revisions")
	if len(revisions) == 0 {
		return NewScalar(""), nil
	}
	rev, _ := revisions[0].(map[string]any)
	// Content lives at revisions[0].* in the default format.
	content, _ := rev["*"].(string)
	return NewScalar(content), nil
}

// Save replaces the page content. Friendly options: summary, minor, bot.
func (p *Page) Save(text string, opts Params) (Result, error) {
	return p.edit(Params{"text": text}, opts)
}

// Append adds text after the existing page content.
func (p *Page) Append(text string, opts Params) (Result, error) {
	return p.edit(Params{"appendtext": text}, opts)
}

// Prepend adds text before the existing page content.
func (p *Page) Prepend(text string, opts Params) (Result, error) {
	return p.edit(Params{"prependtext": text}, opts)
}

// Touch performs a null edit, refreshing derived data such as category
// membership without changing content.
func (p *Page) Touch() (Result, error) {
	return p.edit(Params{"appendtext": "", "minor": true}, nil)
}

// edit performs an action=edit request with the CSRF token attached.
func (p *Page) edit(fields, opts Params) (Result, error) {
	if err := p.site.requireWritable("edit"); err != nil {
		return Result{}, err
	}
	token, err := p.site.token()
	if err != nil {
		return Result{}, err
	}
	base := Params{
		"action": "edit",
		"title":  p.name,
		"token":  token,
	}
	resp, err := p.site.raw("POST", base.merge(fields).merge(opts))
	if err != nil {
		return Result{}, err
	}
	inner, _ := resp["edit"].(map[string]any)
	return NewStructure(inner), nil
}

// Move renames the page. Friendly options: reason, movetalk, noredirect.
func (p *Page) Move(newTitle string, opts Params) (Result, error) {
	if err := p.site.requireWritable("move"); err != nil {
		return Result{}, err
	}
	token, err := p.site.token()
	if err != nil {
		return Result{}, err
	}
	base := Params{
		"action": "move",
		"from":   p.name,
		"to":     newTitle,
		"token":  token,
	}
	resp, err := p.site.raw("POST", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	inner, _ := resp["move"].(map[string]any)
	return NewStructure(inner), nil
}

// Delete removes the page. Friendly option: reason.
func (p *Page) Delete(opts Params) (Result, error) {
	if err := p.site.requireWritable("delete"); err != nil {
		return Result{}, err
	}
	token, err := p.site.token()
	if err != nil {
		return Result{}, err
	}
	base := Params{
		"action": "delete",
		"title":  p.name,
		"token":  token,
	}
	resp, err := p.site.raw("POST", base.merge(opts))
	if err != nil {
		return Result{}, err
	}
	inner, _ := resp["delete"].(map[string]any)
	return NewStructure(inner), nil
}

// Purge invalidates the server-side cache for the page.
func (p *Page) Purge() (Result, error) {
	resp, err := p.site.raw("POST", Params{
		"action": "purge",
		"titles": p.name,
	})
	if err != nil {
		return Result{}, err
	}
	items, _ := resp["purge"].([]any)
	return NewSequence(items), nil
}

// Exists reports whether the page exists.
func (p *Page) Exists() (Result, error) {
	info, err := p.info()
	if err != nil {
		return Result{}, err
	}
	_, missing := info["missing"]
	return NewScalar(!missing), nil
}

// Length returns the page content length in bytes (0 for a missing page).
func (p *Page) Length() (Result, error) {
	info, err := p.info()
	if err != nil {
		return Result{}, err
	}
	if n, ok := info["length"].(json.Number); ok {
		return NewScalar(n), nil
	}
	return NewScalar(json.Number("0")), nil
}

// Redirect reports whether the page is a redirect.
func (p *Page) Redirect() (Result, error) {
	info, err := p.info()
	if err != nil {
		return Result{}, err
	}
	_, redirect := info["redirect"]
	return NewScalar(redirect), nil
}

// info fetches the prop=info record for the page.
func (p *Page) info() (map[string]any, error) {
	resp, err := p.site.raw("GET", Params{
		"action": "query",
		"prop":   "info",
		"titles": p.name,
	})
	if err != nil {
		return nil, err
	}
	query, _ := resp["query"].(map[string]any)
	pages, _ := query["pages"].(map[string]any)
	for _, page := range pages {
		if info, ok := page.(map[string]any); ok {
			return info, nil
		}
	}
	return map[string]any{}, nil
}

// --- page listings ---

// Backlinks streams pages linking to this page.
func (p *Page) Backlinks(opts Params) (Result, error) {
	base := applyPrefixed(Params{"bltitle": p.name}, opts, "bl", "limit", "namespace", "filterredir")
	return NewStream(newListing(p.site, "backlinks", "backlinks", base)), nil
}

// Embeddedin streams pages transcluding this page.
func (p *Page) Embeddedin(opts Params) (Result, error) {
	base := applyPrefixed(Params{"eititle": p.name}, opts, "ei", "limit", "namespace", "filterredir")
	return NewStream(newListing(p.site, "embeddedin", "embeddedin", base)), nil
}

// Categories streams the categories this page belongs to.
func (p *Page) Categories(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "cl", "limit", "show")
	return NewStream(newPropListing(p.site, "categories", "categories", p.name, base)), nil
}

// Extlinks streams external URLs referenced by the page.
func (p *Page) Extlinks(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "el", "limit")
	return NewStream(newPropListing(p.site, "extlinks", "extlinks", p.name, base)), nil
}

// Images streams files used on the page.
func (p *Page) Images(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "im", "limit")
	return NewStream(newPropListing(p.site, "images", "images", p.name, base)), nil
}

// Langlinks streams interlanguage links on the page.
func (p *Page) Langlinks(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "ll", "limit", "lang")
	return NewStream(newPropListing(p.site, "langlinks", "langlinks", p.name, base)), nil
}

// Links streams internal links on the page.
func (p *Page) Links(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "pl", "limit", "namespace")
	return NewStream(newPropListing(p.site, "links", "links", p.name, base)), nil
}

// Templates streams templates transcluded by the page.
func (p *Page) Templates(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "tl", "limit", "namespace")
	return NewStream(newPropListing(p.site, "templates", "templates", p.name, base)), nil
}

// Revisions streams the revision history of the page.
func (p *Page) Revisions(opts Params) (Result, error) {
	base := applyPrefixed(Params{
		"rvprop": "ids|timestamp|flags|comment|user",
	}, opts, "rv", "limit", "start", "end", "dir", "user", "prop")
	return NewStream(newPropListing(p.site, "revisions", "revisions", p.name, base)), nil
}
