// SPDX-License-Identifier: MPL-2.0

// mwcli is a command-line adapter for the MediaWiki API.
package main

import cmd "mwcli/cmd/mwcli"

func main() {
	cmd.Execute()
}
