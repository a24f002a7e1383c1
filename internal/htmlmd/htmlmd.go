// SPDX-License-Identifier: MPL-2.0

// Package htmlmd converts rendered HTML fragments to Markdown text with the
// fixed settings the CLI relies on: no line wrapping, links kept as Markdown
// link syntax, and images kept as Markdown image syntax.
package htmlmd

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Convert renders an HTML fragment as Markdown, trimmed of leading and
// trailing whitespace.
func Convert(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
