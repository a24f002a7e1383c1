// SPDX-License-Identifier: MPL-2.0

// Package mwapi is a minimal MediaWiki Action API client.
//
// It exposes three target kinds (Site, Page, Image) whose operations each
// map to a single API request. Operations return a tagged Result so callers
// can switch on the value shape instead of inspecting runtime types; list
// modules are surfaced as lazy, forward-only Streams driven by API
// continuation.
package mwapi
