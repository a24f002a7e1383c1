// SPDX-License-Identifier: MPL-2.0

package mwapi

// Image is an image-level target. It supports every Page operation plus the
// file-specific ones below.
type Image struct {
	Page
}

// Download fetches the raw file content. The file URL is resolved through
// prop=imageinfo, then fetched directly.
func (i *Image) Download() (Result, error) {
	resp, err := i.site.raw("GET", Params{
		"action": "query",
		"prop":   "imageinfo",
		"iiprop": "url",
		"titles": i.name,
	})
	if err != nil {
		return Result{}, err
	}
	query, _ := resp["query"].(map[string]any)
	infos := propItems(query, "imageinfo")
	if len(infos) == 0 {
		return Result{}, &APIError{Code: "missingfile", Info: "no file information for " + i.name}
	}
	info, _ := infos[0].(map[string]any)
	fileURL, _ := info["url"].(string)
	if fileURL == "" {
		return Result{}, &APIError{Code: "missingfile", Info: "no file URL for " + i.name}
	}

	data, err := i.site.fetchBytes(fileURL)
	if err != nil {
		return Result{}, err
	}
	return NewBytes(data), nil
}

// ImageHistory streams the upload history of the file, newest first.
func (i *Image) ImageHistory(opts Params) (Result, error) {
	base := applyPrefixed(Params{
		"iiprop": "timestamp|user|comment|url|size|sha1",
	}, opts, "ii", "limit", "start", "end")
	return NewStream(newPropListing(i.site, "imageinfo", "imageinfo", i.name, base)), nil
}

// ImageUsage streams pages that use this file.
func (i *Image) ImageUsage(opts Params) (Result, error) {
	base := applyPrefixed(Params{"iutitle": i.name}, opts, "iu", "limit", "namespace", "filterredir")
	return NewStream(newListing(i.site, "imageusage", "imageusage", base)), nil
}

// DuplicateFiles streams files identical to this one.
func (i *Image) DuplicateFiles(opts Params) (Result, error) {
	base := applyPrefixed(Params{}, opts, "df", "limit")
	return NewStream(newPropListing(i.site, "duplicatefiles", "duplicatefiles", i.name, base)), nil
}
