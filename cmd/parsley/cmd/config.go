package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/adapters/treesitter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows project root, record store path, grammar search paths, and platform.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "parsley config")
	fmt.Fprintf(out, "  Project:   %s\n", filepath.Base(root))
	fmt.Fprintf(out, "  Root:      %s\n", root)
	fmt.Fprintf(out, "  Store:     %s\n", storePath(root))
	fmt.Fprintf(out, "  Grammars:  %s\n", strings.Join(treesitter.DefaultGrammarPaths(root), ", "))
	fmt.Fprintf(out, "  Platform:  %s\n", treesitter.PlatformString())
	fmt.Fprintf(out, "  Artifact:  *%s\n", treesitter.LibExtension())
	return nil
}
