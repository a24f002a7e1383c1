// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mwcli/internal/config"
	"mwcli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Global connection flags. Each has an MWCLI_* environment fallback
	// resolved by internal/config; flags win when set.
	flagHost      string
	flagPath      string
	flagExt       string
	flagScheme    string
	flagUsername  string
	flagPassword  string
	flagUserAgent string
	flagAllowAnon bool
	flagNoInit    bool
	flagIndent    int
	flagMarkdown  bool
	verbose       bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "mwcli",
		Short: "A command-line adapter for the MediaWiki API",
		Long: TitleStyle.Render("mwcli") + SubtitleStyle.Render(" - A command-line adapter for the MediaWiki API") + `

mwcli exposes the public methods of the three MediaWiki targets as
subcommands, converting CLI arguments into typed call arguments and
results into JSON or Markdown.

` + SubtitleStyle.Render("Targets:") + `
  site   methods addressing the wiki as a whole
  page   methods addressing one page by title
  image  methods addressing one file by title

` + SubtitleStyle.Render("Examples:") + `
  mwcli methods site
  mwcli --host en.wikipedia.org site siteinfo
  mwcli --host wiki.local --scheme http page "Main Page" text --markdown
  mwcli --host wiki.local site search --arg space --kw what=text --max-items 5`,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHost, "host", "", "wiki host without scheme (env MWCLI_HOST)")
	pf.StringVar(&flagPath, "path", "/w/", "MediaWiki script path with trailing slash (env MWCLI_PATH)")
	pf.StringVar(&flagExt, "ext", ".php", "script extension (env MWCLI_EXT)")
	pf.StringVar(&flagScheme, "scheme", "https", "URL scheme: http or https (env MWCLI_SCHEME)")
	pf.StringVar(&flagUsername, "username", "", "login username; requires --password (env MWCLI_USERNAME)")
	pf.StringVar(&flagPassword, "password", "", "login password; requires --username (env MWCLI_PASSWORD)")
	pf.StringVar(&flagUserAgent, "clients-useragent", "", "custom user-agent prefix (env MWCLI_USER_AGENT)")
	pf.BoolVar(&flagAllowAnon, "allow-anon", false, "allow unauthenticated write calls")
	pf.BoolVar(&flagNoInit, "no-init", false, "skip the initial siteinfo request")
	pf.IntVar(&flagIndent, "indent", 0, "pretty-print JSON output with N-space indentation")
	pf.BoolVar(&flagMarkdown, "markdown", false, "convert content-read methods to Markdown")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newCallCommand(siteSpec))
	rootCmd.AddCommand(newCallCommand(pageSpec))
	rootCmd.AddCommand(newCallCommand(imageSpec))
	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// resolveConfig loads the configuration and overlays the global flags the
// user actually set on this invocation.
func resolveConfig() (*config.Config, error) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, usageError(err, issue.ConfigLoadFailedId)
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("host") {
		cfg.Host = flagHost
	}
	if flags.Changed("path") {
		cfg.Path = flagPath
	}
	if flags.Changed("ext") {
		cfg.Ext = flagExt
	}
	if flags.Changed("scheme") {
		cfg.Scheme = config.Scheme(flagScheme)
	}
	if flags.Changed("username") {
		cfg.Username = flagUsername
	}
	if flags.Changed("password") {
		cfg.Password = flagPassword
	}
	if flags.Changed("clients-useragent") {
		cfg.UserAgent = flagUserAgent
	}
	if flags.Changed("allow-anon") {
		cfg.AllowAnon = flagAllowAnon
	}
	if flags.Changed("no-init") {
		cfg.NoInit = flagNoInit
	}
	if flags.Changed("indent") {
		cfg.Indent = config.IndentWidth(flagIndent)
	}
	if flags.Changed("markdown") {
		cfg.Markdown = flagMarkdown
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrCredentialsMismatch) {
			return nil, usageError(err, issue.CredentialsMismatchId)
		}
		return nil, usageError(err, 0)
	}
	return cfg, nil
}

// usageError renders the matching issue card on stderr and wraps err so the
// process exits with the usage exit code. Cards are skipped when stderr is
// not worth cluttering (unknown id). An ActionableError additionally prints
// its operation context and suggestions, with the full error chain under
// --verbose.
func usageError(err error, id issue.Id) error {
	w := rootCmd.ErrOrStderr()
	if entry := issue.Get(id); entry != nil {
		if rendered, renderErr := entry.Render("dark"); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render(ae.Format(verbose)))
	}
	return &ExitError{Code: exitUsage, Err: err}
}
