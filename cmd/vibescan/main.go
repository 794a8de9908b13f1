// Command vibescan scores VIBE answer sets from the terminal and runs
// maintenance tasks against the response store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vibescan",
		Short:         "VIBE scan scoring engine",
		Long:          "Score VIBE questionnaires, inspect the built-in catalogs, hash company names and migrate the response database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newScoreCmd(),
		newCatalogCmd(),
		newHashCmd(),
		newMigrateCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
