// SPDX-License-Identifier: MPL-2.0

package mwapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Params holds extra API parameters forwarded verbatim to one request.
// Values may be strings, bools, JSON numbers, or sequences; they are
// flattened to the API's wire conventions by encode.
type Params map[string]any

// encode converts Params to url.Values using MediaWiki conventions:
// booleans are present-or-absent flags, sequences are pipe-joined, and
// everything else is rendered in its JSON text form.
func (p Params) encode() url.Values {
	values := url.Values{}
	for key, v := range p {
		s, ok := paramString(v)
		if !ok {
			continue
		}
		values.Set(key, s)
	}
	return values
}

// merge returns a copy of p overlaid with extra. Keys in extra win.
func (p Params) merge(extra Params) Params {
	merged := make(Params, len(p)+len(extra))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// sortedKeys returns the parameter names in lexical order, for stable logging.
func (p Params) sortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// paramString renders a single parameter value. The second return value is
// false for boolean false, which the API expects to be omitted entirely.
func paramString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		if !val {
			return "", false
		}
		// MediaWiki flag parameters are present-or-absent.
		return "1", true
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := paramString(item)
			if !ok {
				s = ""
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, "|"), true
	default:
		return fmt.Sprint(val), true
	}
}
