// SPDX-License-Identifier: MPL-2.0

package call

import (
	"strings"

	"mwcli/internal/htmlmd"
	"mwcli/internal/mwapi"
	"mwcli/internal/registry"
)

// ApplyMarkdown conditionally rewrites an already-obtained result into
// Markdown text, switching on the method's RenderHint:
//
//   - RenderWikitext with a string result: the wikitext is re-rendered
//     through the site's parse call, the HTML fragment is converted to
//     Markdown, and an H1 heading derived from the title is prefixed. When
//     no HTML fragment comes back, the original wikitext is kept as the
//     body, still under the heading.
//   - RenderParse with a structure result: the HTML fragment at text.* is
//     converted and replaces the whole result; without a fragment the
//     result passes through unchanged.
//   - RenderNone: the result passes through unchanged.
//
// The caller only invokes this when the markdown flag is set.
func ApplyMarkdown(target registry.Target, method *registry.Method, result mwapi.Result) (mwapi.Result, error) {
	switch method.Render {
	case registry.RenderWikitext:
		body, ok := result.Scalar.(string)
		if result.Kind != mwapi.KindScalar || !ok {
			return result, nil
		}
		return renderWikitext(target, body)

	case registry.RenderParse:
		if result.Kind != mwapi.KindStructure {
			return result, nil
		}
		fragment := extractParseHTML(result.Structure)
		if fragment == "" {
			return result, nil
		}
		md, err := htmlmd.Convert(fragment)
		if err != nil {
			return mwapi.Result{}, err
		}
		return mwapi.NewScalar(md), nil

	default:
		return result, nil
	}
}

// renderWikitext re-renders wikitext through the remote parser and builds
// the heading-plus-body Markdown document.
func renderWikitext(target registry.Target, wikitext string) (mwapi.Result, error) {
	title := headingTitle(target.Page.Name())
	heading := strings.TrimSpace("# " + title)

	parsed, err := target.Site.Parse(mwapi.Params{
		"text":  wikitext,
		"title": target.Page.Name(),
	})
	if err != nil {
		return mwapi.Result{}, err
	}

	body := ""
	if fragment := extractParseHTML(parsed.Structure); fragment != "" {
		body, err = htmlmd.Convert(fragment)
		if err != nil {
			return mwapi.Result{}, err
		}
	} else {
		body = strings.TrimSpace(wikitext)
	}

	if body == "" {
		return mwapi.NewScalar(heading), nil
	}
	return mwapi.NewScalar(heading + "\n\n" + body), nil
}

// extractParseHTML returns the rendered HTML fragment at text.* of a parse
// result, or "" when the path is absent.
func extractParseHTML(parse map[string]any) string {
	text, ok := parse["text"].(map[string]any)
	if !ok {
		return ""
	}
	html, _ := text["*"].(string)
	return html
}

// headingTitle derives the display heading from a page title: underscores
// become spaces and surrounding whitespace is trimmed.
func headingTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, "_", " "))
}
