// SPDX-License-Identifier: MPL-2.0

// Package registry is the static catalog of invocable methods per entity
// variant. The catalog is the single source of truth for the CLI surface:
// it drives method listing, pre-dispatch validation, and dispatch binding.
package registry

import (
	"fmt"
	"strings"

	"mwcli/internal/mwapi"
)

type (
	// Entity is one of the three addressable target kinds.
	Entity string

	// RenderHint tags a method's response shape for the markdown
	// post-processor, replacing brittle entity+method string matching.
	RenderHint int

	// Param is one declared positional parameter of a method.
	Param struct {
		Name     string
		Optional bool
	}

	// Target is the resolved object a call is made against. Site is always
	// set; Page is set for page and image targets; Image only for images.
	Target struct {
		Site  *mwapi.Site
		Page  *mwapi.Page
		Image *mwapi.Image
	}

	// Arguments is the bound call argument mapping: declared parameter
	// names plus any extra keywords, all holding coerced values.
	Arguments map[string]any

	// Method is one registry entry. Invoke performs exactly one API
	// operation against the target.
	Method struct {
		Name   string
		Params []Param
		Render RenderHint
		Invoke func(t Target, a Arguments) (mwapi.Result, error)
	}
)

const (
	// EntitySite addresses site-level methods.
	EntitySite Entity = "site"
	// EntityPage addresses title-scoped page methods.
	EntityPage Entity = "page"
	// EntityImage addresses title-scoped file methods.
	EntityImage Entity = "image"
)

const (
	// RenderNone passes results through the markdown post-processor unchanged.
	RenderNone RenderHint = iota
	// RenderWikitext marks methods returning raw wikitext that can be
	// re-rendered and converted to Markdown.
	RenderWikitext
	// RenderParse marks methods returning a parse structure with an HTML
	// fragment at text.*.
	RenderParse
)

// Entities lists the entity variants in their canonical order.
func Entities() []Entity {
	return []Entity{EntitySite, EntityPage, EntityImage}
}

// ValidEntity reports whether name names a known entity variant.
func ValidEntity(name string) bool {
	switch Entity(name) {
	case EntitySite, EntityPage, EntityImage:
		return true
	}
	return false
}

// Methods returns the catalog for an entity, sorted by method name.
func Methods(entity Entity) []Method {
	return catalog[entity]
}

// Lookup finds a method by exact, case-sensitive name.
func Lookup(entity Entity, name string) (*Method, bool) {
	for i := range catalog[entity] {
		if catalog[entity][i].Name == name {
			return &catalog[entity][i], true
		}
	}
	return nil, false
}

// Signature renders the listing line for a method, such as
// "site.search(search, what=?, limit=?)".
func (m *Method) Signature(entity Entity) string {
	parts := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		if p.Optional {
			parts = append(parts, p.Name+"=?")
		} else {
			parts = append(parts, p.Name)
		}
	}
	return fmt.Sprintf("%s.%s(%s)", entity, m.Name, strings.Join(parts, ", "))
}

// Required returns the names of the non-optional parameters.
func (m *Method) Required() []string {
	var names []string
	for _, p := range m.Params {
		if !p.Optional {
			names = append(names, p.Name)
		}
	}
	return names
}

// String returns the argument for key rendered as a string. Non-string
// coerced values (numbers, booleans) are rendered in their text form.
func (a Arguments) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Rest returns every argument except the consumed keys, as API parameters.
func (a Arguments) Rest(consumed ...string) mwapi.Params {
	rest := make(mwapi.Params, len(a))
	for k, v := range a {
		skip := false
		for _, c := range consumed {
			if k == c {
				skip = true
				break
			}
		}
		if !skip {
			rest[k] = v
		}
	}
	return rest
}

// params parses a compact parameter spec: a trailing "?" marks the
// parameter optional. Optional parameters must follow required ones.
func params(specs ...string) []Param {
	out := make([]Param, 0, len(specs))
	for _, spec := range specs {
		if name, ok := strings.CutSuffix(spec, "?"); ok {
			out = append(out, Param{Name: name, Optional: true})
		} else {
			out = append(out, Param{Name: spec})
		}
	}
	return out
}
