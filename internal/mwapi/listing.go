// SPDX-License-Identifier: MPL-2.0

package mwapi

import (
	"sort"

	"golang.org/x/exp/slices"
)

// listing is a Stream over a query list or page-prop module. Items are
// produced one batch at a time, driven by API continuation; the full result
// set is never materialized.
type listing struct {
	site *Site
	// base holds the request parameters for every batch, including the
	// list= or prop= selector.
	base Params
	// key is the response field holding the item batch: query.<key> for
	// list modules, query.pages.<id>.<key> for page-prop modules.
	key string
	// prop marks a page-prop module (items nested under query.pages).
	prop bool

	cont map[string]any
	buf  []any
	done bool
}

// newListing builds a Stream over a list=<module> query.
func newListing(site *Site, module, key string, base Params) *listing {
	base["action"] = "query"
	base["list"] = module
	return &listing{site: site, base: base, key: key}
}

// newPropListing builds a Stream over a prop=<module> query scoped to titles.
func newPropListing(site *Site, module, key, titles string, base Params) *listing {
	base["action"] = "query"
	base["prop"] = module
	base["titles"] = titles
	return &listing{site: site, base: base, key: key, prop: true}
}

// Next implements Stream. It fetches the next batch only when the buffered
// one is exhausted, so a capped consumer triggers no extra requests.
func (l *listing) Next() (any, error) {
	for len(l.buf) == 0 {
		if l.done {
			return nil, ErrEndOfList
		}
		if err := l.fetch(); err != nil {
			return nil, err
		}
	}
	item := l.buf[0]
	l.buf = l.buf[1:]
	return item, nil
}

// fetch requests one batch and refills the buffer. An empty batch with no
// continuation marks the listing done.
func (l *listing) fetch() error {
	params := l.base.merge(nil)
	params["continue"] = ""
	for k, v := range l.cont {
		params[k] = v
	}

	resp, err := l.site.raw("GET", params)
	if err != nil {
		return err
	}

	query, _ := resp["query"].(map[string]any)
	if l.prop {
		l.buf = append(l.buf, propItems(query, l.key)...)
	} else if items, ok := query[l.key].([]any); ok {
		l.buf = append(l.buf, items...)
	}

	if cont, ok := resp["continue"].(map[string]any); ok {
		l.cont = cont
	} else {
		l.done = true
	}
	return nil
}

// propItems flattens query.pages.<id>.<key> arrays in stable page-id order.
func propItems(query map[string]any, key string) []any {
	pages, ok := query["pages"].(map[string]any)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(pages))
	for id := range pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var items []any
	for _, id := range ids {
		page, ok := pages[id].(map[string]any)
		if !ok {
			continue
		}
		if arr, ok := page[key].([]any); ok {
			items = append(items, arr...)
		}
	}
	return items
}

// applyPrefixed copies opts into dst, rewriting the friendly option names in
// known to their prefixed wire form (limit -> srlimit and so on). Unknown
// keys pass through verbatim, so raw API parameters remain usable. A missing
// limit defaults to "max" to fetch full-size batches.
func applyPrefixed(dst, opts Params, prefix string, known ...string) Params {
	for key, v := range opts {
		if slices.Contains(known, key) {
			dst[prefix+key] = v
		} else {
			dst[key] = v
		}
	}
	if _, ok := dst[prefix+"limit"]; !ok {
		dst[prefix+"limit"] = "max"
	}
	return dst
}
