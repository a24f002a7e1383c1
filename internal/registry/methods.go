// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"sort"

	"mwcli/internal/mwapi"
)

// catalog maps each entity variant to its invocable methods. Entries are
// sorted by name at init time; a registry integrity test guards the
// structural invariants (unique names, bound Invoke, required-first params).
var catalog = map[Entity][]Method{}

func init() {
	catalog[EntitySite] = sorted(siteMethods)
	catalog[EntityPage] = sorted(pageMethods)
	catalog[EntityImage] = sorted(append(inherited(pageMethods), imageMethods...))
}

// inherited copies page methods into another catalog. The markdown rewrite
// applies to page.text only, so render hints are cleared on the copies:
// image.text returns raw wikitext even with the markdown flag set.
func inherited(methods []Method) []Method {
	out := append([]Method{}, methods...)
	for i := range out {
		out[i].Render = RenderNone
	}
	return out
}

func sorted(methods []Method) []Method {
	out := append([]Method{}, methods...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var siteMethods = []Method{
	{
		Name: "siteinfo",
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Siteinfo(a.Rest())
		},
	},
	{
		Name:   "search",
		Params: params("search", "what?", "limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Search(a.String("search"), a.Rest("search"))
		},
	},
	{
		Name:   "allpages",
		Params: params("prefix?", "namespace?", "limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Allpages(a.Rest())
		},
	},
	{
		Name:   "allcategories",
		Params: params("prefix?", "limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Allcategories(a.Rest())
		},
	},
	{
		Name:   "allusers",
		Params: params("prefix?", "limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Allusers(a.Rest())
		},
	},
	{
		Name:   "allimages",
		Params: params("prefix?", "limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Allimages(a.Rest())
		},
	},
	{
		Name:   "recentchanges",
		Params: params("limit?", "namespace?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.RecentChanges(a.Rest())
		},
	},
	{
		Name:   "logevents",
		Params: params("limit?", "type?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.LogEvents(a.Rest())
		},
	},
	{
		Name:   "usercontributions",
		Params: params("user", "limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.UserContributions(a.String("user"), a.Rest("user"))
		},
	},
	{
		Name:   "users",
		Params: params("users"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Users(a.String("users"), a.Rest("users"))
		},
	},
	{
		Name:   "expandtemplates",
		Params: params("text", "title?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.ExpandTemplates(a.String("text"), a.Rest("text"))
		},
	},
	{
		Name:   "parse",
		Params: params("text?", "title?", "page?"),
		Render: RenderParse,
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Parse(a.Rest())
		},
	},
	{
		Name:   "revisions",
		Params: params("revids"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Revisions(a.String("revids"), a.Rest("revids"))
		},
	},
	{
		Name:   "get",
		Params: params("action"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Get(a.String("action"), a.Rest("action"))
		},
	},
	{
		Name:   "post",
		Params: params("action"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Site.Post(a.String("action"), a.Rest("action"))
		},
	},
}

var pageMethods = []Method{
	{
		Name:   "text",
		Render: RenderWikitext,
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Text(a.Rest())
		},
	},
	{
		Name:   "save",
		Params: params("text", "summary?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Save(a.String("text"), a.Rest("text"))
		},
	},
	{
		Name:   "append",
		Params: params("text", "summary?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Append(a.String("text"), a.Rest("text"))
		},
	},
	{
		Name:   "prepend",
		Params: params("text", "summary?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Prepend(a.String("text"), a.Rest("text"))
		},
	},
	{
		Name:   "move",
		Params: params("new_title", "reason?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Move(a.String("new_title"), a.Rest("new_title"))
		},
	},
	{
		Name:   "delete",
		Params: params("reason?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Delete(a.Rest())
		},
	},
	{
		Name: "purge",
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Purge()
		},
	},
	{
		Name: "touch",
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Touch()
		},
	},
	{
		Name: "exists",
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Exists()
		},
	},
	{
		Name: "length",
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Length()
		},
	},
	{
		Name: "redirect",
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Redirect()
		},
	},
	{
		Name:   "backlinks",
		Params: params("limit?", "namespace?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Backlinks(a.Rest())
		},
	},
	{
		Name:   "embeddedin",
		Params: params("limit?", "namespace?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Embeddedin(a.Rest())
		},
	},
	{
		Name:   "categories",
		Params: params("limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Categories(a.Rest())
		},
	},
	{
		Name:   "extlinks",
		Params: params("limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Extlinks(a.Rest())
		},
	},
	{
		Name:   "images",
		Params: params("limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Images(a.Rest())
		},
	},
	{
		Name:   "langlinks",
		Params: params("limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Langlinks(a.Rest())
		},
	},
	{
		Name:   "links",
		Params: params("limit?", "namespace?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Links(a.Rest())
		},
	},
	{
		Name:   "templates",
		Params: params("limit?", "namespace?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Templates(a.Rest())
		},
	},
	{
		Name:   "revisions",
		Params: params("limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Page.Revisions(a.Rest())
		},
	},
}

var imageMethods = []Method{
	{
		Name: "download",
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Image.Download()
		},
	},
	{
		Name:   "imagehistory",
		Params: params("limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Image.ImageHistory(a.Rest())
		},
	},
	{
		Name:   "imageusage",
		Params: params("limit?", "namespace?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Image.ImageUsage(a.Rest())
		},
	},
	{
		Name:   "duplicatefiles",
		Params: params("limit?"),
		Invoke: func(t Target, a Arguments) (mwapi.Result, error) {
			return t.Image.DuplicateFiles(a.Rest())
		},
	},
}
