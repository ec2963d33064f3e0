package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/adapters/treesitter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available and installed grammars",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	manifest := treesitter.BuiltinManifest()
	root := projectRoot()
	paths := treesitter.DefaultGrammarPaths(root)
	reg := newRegistry(root)

	installedSet := make(map[string]bool)
	for _, g := range reg.Loader().InstalledGrammars() {
		installedSet[g] = true
	}

	out := cmd.OutOrStdout()
	for _, tier := range treesitter.AllTiers {
		grammars := manifest.GrammarsByTier(tier.Code)
		if len(grammars) == 0 {
			continue
		}
		sort.Strings(grammars)

		fmt.Fprintf(out, "\n%s (%d grammars)\n", tier.Name, len(grammars))
		fmt.Fprintln(out, strings.Repeat("─", 50))

		for _, name := range grammars {
			info := manifest.Grammars[name]
			status := "  "
			if reg.IsBuiltin(name) {
				status = "B "
			} else if installedSet[name] || installedSet[treesitter.SOBaseName(name)] {
				status = "D "
			}
			exts := strings.Join(info.Extensions, " ")
			fmt.Fprintf(out, "  %s%-14s %s\n", status, name, exts)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "B = built-in (compiled)  D = dynamic (artifact installed)")
	fmt.Fprintf(out, "Search paths: %s\n", strings.Join(paths, ", "))
	return nil
}
