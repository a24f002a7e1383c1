// SPDX-License-Identifier: MPL-2.0

package call

import (
	"fmt"

	"mwcli/internal/mwapi"
	"mwcli/internal/registry"
)

type (
	// Request is one fully parsed CLI invocation, ready for validation and
	// dispatch. Positional and Keywords hold coerced values.
	Request struct {
		Entity     registry.Entity
		Title      string
		Method     string
		Positional []any
		Keywords   map[string]any
	}

	// Connector produces the site connection. It is only called after all
	// validation has passed, so usage failures never touch the network.
	Connector func() (*mwapi.Site, error)
)

// Dispatch validates the request, resolves the target, and performs exactly
// one invocation. No retry, no timeout, no batching; errors from the
// underlying call propagate unmodified.
func Dispatch(req Request, connect Connector) (mwapi.Result, registry.Target, *registry.Method, error) {
	method, args, err := Validate(req)
	if err != nil {
		return mwapi.Result{}, registry.Target{}, nil, err
	}

	site, err := connect()
	if err != nil {
		return mwapi.Result{}, registry.Target{}, nil, err
	}

	target := resolveTarget(site, req)

	result, err := method.Invoke(target, args)
	if err != nil {
		return mwapi.Result{}, registry.Target{}, nil, err
	}
	return result, target, method, nil
}

// Validate checks the request against the registry and binds arguments.
// It performs every pre-dispatch check: method existence (exact-match,
// case-sensitive), title presence, positional arity, and required
// parameters. Keyword arguments win over positional ones bound to the same
// parameter name.
func Validate(req Request) (*registry.Method, registry.Arguments, error) {
	if req.Entity != registry.EntitySite && req.Title == "" {
		return nil, nil, &TitleError{Entity: req.Entity}
	}

	method, ok := registry.Lookup(req.Entity, req.Method)
	if !ok {
		return nil, nil, &UnknownMethodError{Entity: req.Entity, Name: req.Method}
	}

	if len(req.Positional) > len(method.Params) {
		return nil, nil, &ArgumentError{
			Method: string(req.Entity) + "." + method.Name,
			Reason: fmt.Sprintf("takes at most %d positional arguments, got %d",
				len(method.Params), len(req.Positional)),
		}
	}

	args := make(registry.Arguments, len(req.Positional)+len(req.Keywords))
	for i, v := range req.Positional {
		args[method.Params[i].Name] = v
	}
	for k, v := range req.Keywords {
		args[k] = v
	}

	for _, name := range method.Required() {
		if _, ok := args[name]; !ok {
			return nil, nil, &ArgumentError{
				Method: string(req.Entity) + "." + method.Name,
				Reason: fmt.Sprintf("missing required argument %q", name),
			}
		}
	}
	return method, args, nil
}

// resolveTarget builds the call target from the entity variant and title.
// The title is ignored for site targets.
func resolveTarget(site *mwapi.Site, req Request) registry.Target {
	target := registry.Target{Site: site}
	switch req.Entity {
	case registry.EntityPage:
		target.Page = site.Page(req.Title)
	case registry.EntityImage:
		image := site.Image(req.Title)
		target.Image = image
		target.Page = &image.Page
	}
	return target
}
