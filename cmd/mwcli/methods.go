// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mwcli/internal/registry"
)

// methodsCmd lists the public methods of a target. It needs no host and
// performs no network call: the listing comes from the static registry.
var methodsCmd = &cobra.Command{
	Use:   "methods <site|page|image|all>",
	Short: "List available methods on site/page/image targets",
	Long: `List callable public methods and their parameter signatures.

Optional parameters are marked with "=?".`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"site", "page", "image", "all"},
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		entity := args[0]
		if entity == "all" {
			for _, e := range registry.Entities() {
				printMethodList(cobraCmd.OutOrStdout(), e)
			}
			return nil
		}
		if !registry.ValidEntity(entity) {
			return usageError(fmt.Errorf("unknown target %q (expected site, page, image, or all)", entity), 0)
		}
		printMethodList(cobraCmd.OutOrStdout(), registry.Entity(entity))
		return nil
	},
}

// printMethodList writes one signature per line, sorted by method name.
func printMethodList(w io.Writer, entity registry.Entity) {
	for _, method := range registry.Methods(entity) {
		fmt.Fprintln(w, method.Signature(entity))
	}
}
