// SPDX-License-Identifier: MPL-2.0

package call

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"mwcli/internal/mwapi"
)

// Normalize projects an arbitrary value into a JSON-safe structure composed
// only of nil, bool, number, string, map[string]any, and []any. Binary data
// becomes a tagged object carrying a base64 payload and its byte length.
// Anything unrecognized falls back to its debug string. The projection is
// idempotent: normalizing an already-normalized value is the identity.
//
// No cycle detection is performed; a self-referential structure recurses
// until resource exhaustion.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case []byte:
		return map[string]any{
			"__type__": "bytes",
			"base64":   base64.StdEncoding.EncodeToString(val),
			"size":     json.Number(fmt.Sprint(len(val))),
		}
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case mwapi.Result:
		return Normalize(val.Value())
	default:
		return fmt.Sprint(val)
	}
}
