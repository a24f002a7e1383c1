// SPDX-License-Identifier: MPL-2.0

package call

import (
	"encoding/json"
	"strings"
)

// Coerce interprets a raw CLI string as a typed JSON value, falling back to
// the original string verbatim. It is total: every input produces exactly
// one value and never an error. "true", "null", "3", "[1,2]" coerce to their
// JSON forms; malformed-looking JSON such as "{oops" stays a string.
// Numbers are kept as json.Number so integers survive a round trip.
func Coerce(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	// Trailing garbage after a valid prefix ("1x", "[1] tail") means the
	// token as a whole is not JSON.
	if dec.More() {
		return raw
	}
	return v
}

// CoerceAll coerces each raw token in order.
func CoerceAll(raws []string) []any {
	out := make([]any, len(raws))
	for i, raw := range raws {
		out[i] = Coerce(raw)
	}
	return out
}
