// SPDX-License-Identifier: MPL-2.0

package call

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCoerceJSONAndStringFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{name: "integer", raw: "3", want: json.Number("3")},
		{name: "float", raw: "2.5", want: json.Number("2.5")},
		{name: "true", raw: "true", want: true},
		{name: "false", raw: "false", want: false},
		{name: "null", raw: "null", want: nil},
		{name: "quoted string", raw: `"hello"`, want: "hello"},
		{name: "plain string", raw: "hello", want: "hello"},
		{name: "array", raw: "[1,2]", want: []any{json.Number("1"), json.Number("2")}},
		{name: "object", raw: `{"a":1}`, want: map[string]any{"a": json.Number("1")}},
		{name: "unbalanced brace stays string", raw: "{oops", want: "{oops"},
		{name: "trailing garbage stays string", raw: "1x", want: "1x"},
		{name: "empty string", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Coerce(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCoerceIsDeterministic(t *testing.T) {
	for _, raw := range []string{"3", "true", "hello", "[1,2]", "{broken"} {
		first := Coerce(raw)
		second := Coerce(raw)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Coerce(%q) not deterministic: %#v vs %#v", raw, first, second)
		}
	}
}

func TestCoerceAllPreservesOrder(t *testing.T) {
	got := CoerceAll([]string{"1", "two", "true"})
	want := []any{json.Number("1"), "two", true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoerceAll = %#v, want %#v", got, want)
	}
}
