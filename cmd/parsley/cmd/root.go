package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/adapters/bbolt"
	"github.com/corey/parsley/internal/adapters/treesitter"
)

var rootCmd = &cobra.Command{
	Use:   "parsley",
	Short: "parsley — tree-sitter grammar pack manager",
	Long:  "Install, load-verify, and inspect tree-sitter grammars, compiled-in or as shared library artifacts.",
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// newRegistry builds a registry with the default grammar search paths
// configured for the project.
func newRegistry(root string) *treesitter.Registry {
	reg := treesitter.NewRegistry()
	reg.SetGrammarPaths(treesitter.DefaultGrammarPaths(root))
	return reg
}

// storePath returns the bbolt database path for a project.
func storePath(root string) string {
	return filepath.Join(root, ".parsley", "parsley.db")
}

// openStore opens the project's record store, creating the dot-dir on
// first use.
func openStore(root string) (*bbolt.Store, error) {
	if err := os.MkdirAll(filepath.Join(root, ".parsley"), 0o755); err != nil {
		return nil, fmt.Errorf("create .parsley dir: %w", err)
	}
	return bbolt.NewStore(storePath(root))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(wipeCmd)
}
