// SPDX-License-Identifier: MPL-2.0

package call

import "strings"

// Keywords converts repeated KEY=VALUE tokens into a keyword mapping. The
// value portion is coerced; the key stays verbatim. A token without "=" or
// with an empty key is rejected. Duplicate keys follow last-occurrence-wins,
// matching the CLI convention of later flags overriding earlier ones.
func Keywords(tokens []string) (map[string]any, error) {
	kwargs := make(map[string]any, len(tokens))
	for _, token := range tokens {
		key, rawValue, found := strings.Cut(token, "=")
		if !found {
			return nil, &KeywordError{Token: token, Reason: "expected key=value"}
		}
		if key == "" {
			return nil, &KeywordError{Token: token, Reason: "empty key"}
		}
		kwargs[key] = Coerce(rawValue)
	}
	return kwargs, nil
}
