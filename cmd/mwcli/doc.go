// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for mwcli.
//
// This package implements the Cobra command hierarchy: the root command with
// the global connection flags, the site/page/image call commands, the
// methods listing, and config management.
package cmd
