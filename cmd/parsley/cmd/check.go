package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/grammar"
)

var checkCmd = &cobra.Command{
	Use:   "check <grammar.json>...",
	Short: "Validate grammar definition files",
	Long: `Parse and validate tree-sitter grammar.json files: the start rule must
exist, every symbol reference must resolve, and patterns must compile.
Catches definition mistakes before the slower 'tree-sitter generate' does.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		g, err := grammar.ParseFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  FAIL  %s: %v\n", path, err)
			continue
		}
		if err := g.Validate(); err != nil {
			failed++
			fmt.Fprintf(out, "  FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "  ok    %s (grammar %q, %d rules, start %q)\n",
			path, g.Name, g.Rules.Len(), g.Rules.Start())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d grammar files failed validation", failed, len(args))
	}
	return nil
}
