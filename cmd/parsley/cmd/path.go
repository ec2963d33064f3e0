package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/adapters/treesitter"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show grammar search paths",
	RunE:  runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := treesitter.DefaultGrammarPaths(root)
	out := cmd.OutOrStdout()

	for i, p := range paths {
		exists := "  "
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			exists = "* "
		}
		scope := "global"
		if i == 0 {
			scope = "project"
		}
		fmt.Fprintf(out, "%s%s (%s)\n", exists, p, scope)
	}
	fmt.Fprintln(out, "\n* = directory exists")
	return nil
}
