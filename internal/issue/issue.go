// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies one entry of the issue catalog.
type Id int

const (
	// HostMissingId: no --host flag and no MWCLI_HOST in the environment.
	HostMissingId Id = iota + 1
	// CredentialsMismatchId: exactly one of --username/--password is set.
	CredentialsMismatchId
	// UnknownMethodId: the requested method is not in the entity's public set.
	UnknownMethodId
	// MalformedKeywordId: a --kw token is not of the form key=value.
	MalformedKeywordId
	// LoginFailedId: the wiki rejected the login handshake.
	LoginFailedId
	// ConfigLoadFailedId: the configuration file could not be read.
	ConfigLoadFailedId
)

// MarkdownMsg is the renderable body of an issue card.
type MarkdownMsg string

// Issue is one catalog entry: a stable id plus the markdown help text
// rendered when the corresponding failure is reported.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue card with glamour for terminal display.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	hostMissingIssue = &Issue{
		id: HostMissingId,
		mdMsg: `
# No wiki host configured

Every call needs to know which wiki to talk to.

## Things you can try:
- Pass the host on the command line:
~~~
$ mwcli --host en.wikipedia.org site siteinfo
~~~
- Or export it once:
~~~
$ export MWCLI_HOST=en.wikipedia.org
~~~
- Or store it in the config file:
~~~
$ mwcli config init
~~~`,
	}

	credentialsMismatchIssue = &Issue{
		id: CredentialsMismatchId,
		mdMsg: `
# Incomplete credentials

` + "`--username`" + ` and ` + "`--password`" + ` must be set together or not at all.

## Things you can try:
- Provide both flags (or both MWCLI_USERNAME and MWCLI_PASSWORD)
- Drop both to make anonymous read calls`,
	}

	unknownMethodIssue = &Issue{
		id: UnknownMethodId,
		mdMsg: `
# Unknown method

The requested method is not in the public set for this target. Method lookup
is exact and case-sensitive.

## Things you can try:
- List the available methods:
~~~
$ mwcli methods site
$ mwcli methods page
$ mwcli methods image
~~~`,
	}

	malformedKeywordIssue = &Issue{
		id: MalformedKeywordId,
		mdMsg: `
# Malformed keyword argument

Keyword arguments are passed as ` + "`--kw KEY=VALUE`" + `. The key must be
non-empty; the value is parsed as JSON with a plain-string fallback.

## Examples:
~~~
$ mwcli --host HOST site search --arg space --kw limit=5
$ mwcli --host HOST page "Main Page" save --kw text='"hello"' --kw summary=test
~~~`,
	}

	loginFailedIssue = &Issue{
		id: LoginFailedId,
		mdMsg: `
# Login failed

The wiki rejected the credentials during the login handshake.

## Things you can try:
- Check MWCLI_USERNAME / MWCLI_PASSWORD for typos
- Bot passwords use the form ` + "`user@botname`" + ` with the generated secret`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

The config file exists but could not be read or parsed.

## Things you can try:
- Check the file for TOML syntax errors
- Regenerate a default file:
~~~
$ mwcli config init
~~~`,
	}

	catalog = map[Id]*Issue{
		HostMissingId:         hostMissingIssue,
		CredentialsMismatchId: credentialsMismatchIssue,
		UnknownMethodId:       unknownMethodIssue,
		MalformedKeywordId:    malformedKeywordIssue,
		LoginFailedId:         loginFailedIssue,
		ConfigLoadFailedId:    configLoadFailedIssue,
	}
)

// Get returns the catalog entry for id, or nil when the id is unknown.
func Get(id Id) *Issue {
	return catalog[id]
}

// Ids returns every catalog id in ascending order.
func Ids() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}
