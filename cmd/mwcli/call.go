// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mwcli/internal/call"
	"mwcli/internal/config"
	"mwcli/internal/issue"
	"mwcli/internal/mwapi"
	"mwcli/internal/registry"
)

// callSpec describes one entity call command. Page and image commands take a
// leading title argument; the site command does not.
type callSpec struct {
	entity registry.Entity
	titled bool
}

var (
	siteSpec  = callSpec{entity: registry.EntitySite}
	pageSpec  = callSpec{entity: registry.EntityPage, titled: true}
	imageSpec = callSpec{entity: registry.EntityImage, titled: true}
)

// newCallCommand builds the cobra command for one entity variant.
func newCallCommand(spec callSpec) *cobra.Command {
	var (
		rawArgs  []string
		rawKws   []string
		stream   bool
		maxItems int
	)

	use := fmt.Sprintf("%s <method>", spec.entity)
	nargs := 1
	if spec.titled {
		use = fmt.Sprintf("%s <title> <method>", spec.entity)
		nargs = 2
	}

	cobraCmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Call a public %s method by name", spec.entity),
		Long: fmt.Sprintf(`Call a public method on the %s target.

Method arguments are passed via repeated --arg and --kw options. Values are
parsed as JSON with a plain-string fallback.

Run 'mwcli methods %s' to list the available methods.`, spec.entity, spec.entity),
		Args: cobra.ExactArgs(nargs),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			title := ""
			method := args[0]
			if spec.titled {
				title = args[0]
				method = args[1]
			}
			return runCall(cobraCmd, spec, title, method, rawArgs, rawKws, stream, maxItems)
		},
	}

	cobraCmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "positional method arg (JSON parsed, fallback to string)")
	cobraCmd.Flags().StringArrayVar(&rawKws, "kw", nil, "keyword method arg KEY=VALUE (value JSON parsed, fallback to string)")
	cobraCmd.Flags().BoolVar(&stream, "stream", false, "stream list results as one JSON object per line")
	cobraCmd.Flags().IntVar(&maxItems, "max-items", -1, "limit the number of emitted items for list results")

	return cobraCmd
}

// runCall drives one invocation through the pipeline: validate and coerce
// arguments, connect, dispatch exactly one call, post-process, emit.
func runCall(cobraCmd *cobra.Command, spec callSpec, title, method string, rawArgs, rawKws []string, stream bool, maxItems int) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireHost(); err != nil {
		return usageError(err, issue.HostMissingId)
	}

	kwargs, err := call.Keywords(rawKws)
	if err != nil {
		return usageError(err, issue.MalformedKeywordId)
	}

	req := call.Request{
		Entity:     spec.entity,
		Title:      title,
		Method:     method,
		Positional: call.CoerceAll(rawArgs),
		Keywords:   kwargs,
	}

	result, target, methodEntry, err := call.Dispatch(req, connector(cfg))
	if err != nil {
		return callError(err)
	}

	if cfg.Markdown {
		result, err = call.ApplyMarkdown(target, methodEntry, result)
		if err != nil {
			return &ExitError{Code: exitUpstream, Err: err}
		}
	}

	if err := call.Emit(cobraCmd.OutOrStdout(), result, call.EmitOptions{
		Stream:   stream,
		MaxItems: maxItems,
		Indent:   int(cfg.Indent),
		Markdown: cfg.Markdown,
	}); err != nil {
		return &ExitError{Code: exitUpstream, Err: err}
	}
	return nil
}

// connector builds the deferred site connection for one invocation. It is
// only called once every pre-dispatch validation has passed.
func connector(cfg *config.Config) call.Connector {
	return func() (*mwapi.Site, error) {
		site, err := mwapi.New(mwapi.Options{
			Host:      cfg.Host,
			Path:      cfg.Path,
			Ext:       cfg.Ext,
			Scheme:    string(cfg.Scheme),
			UserAgent: cfg.UserAgent,
			AllowAnon: cfg.AllowAnon,
			SkipInit:  cfg.NoInit,
			Logger:    log.Default(),
		})
		if err != nil {
			return nil, err
		}
		if cfg.Username != "" {
			if err := site.Login(cfg.Username, cfg.Password); err != nil {
				return nil, err
			}
		}
		return site, nil
	}
}

// callError maps a dispatch failure to the right exit behavior: validation
// failures are usage errors with a help card, everything past validation is
// an upstream error propagated unmodified.
func callError(err error) error {
	switch {
	case errors.Is(err, call.ErrUnknownMethod):
		return usageError(err, issue.UnknownMethodId)
	case call.IsUsage(err):
		return usageError(err, 0)
	case errors.Is(err, mwapi.ErrLoginFailed):
		if entry := issue.Get(issue.LoginFailedId); entry != nil {
			if rendered, renderErr := entry.Render("dark"); renderErr == nil {
				fmt.Fprint(rootCmd.ErrOrStderr(), rendered)
			}
		}
		return &ExitError{Code: exitUpstream, Err: err}
	default:
		return &ExitError{Code: exitUpstream, Err: err}
	}
}
