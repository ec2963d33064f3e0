package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/adapters/treesitter"
)

var infoCmd = &cobra.Command{
	Use:   "info <grammar>",
	Short: "Show details about a grammar",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	manifest := treesitter.BuiltinManifest()

	info, ok := manifest.Grammars[name]
	if !ok {
		return fmt.Errorf("unknown grammar: %s", name)
	}

	root := projectRoot()
	reg := newRegistry(root)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Grammar:    %s\n", info.Name)
	fmt.Fprintf(out, "Version:    %s\n", info.Version)
	fmt.Fprintf(out, "Tier:       %s\n", info.Tier)
	fmt.Fprintf(out, "Extensions: %s\n", strings.Join(info.Extensions, ", "))
	fmt.Fprintf(out, "Repository: %s\n", info.RepoURL)

	if reg.IsBuiltin(name) {
		fmt.Fprintln(out, "Status:     built-in (compiled into binary)")
	} else if p := reg.Loader().GrammarPath(name); p != "" {
		fmt.Fprintf(out, "Status:     installed (%s)\n", p)
	} else {
		fmt.Fprintln(out, "Status:     not installed")
	}

	fmt.Fprintf(out, "C symbol:   %s\n", treesitter.CSymbolName(name))
	fmt.Fprintf(out, "Artifact:   %s%s\n", treesitter.SOBaseName(name), treesitter.LibExtension())

	// Last verification outcome, if any was recorded.
	store, err := openStore(root)
	if err != nil {
		return nil
	}
	defer store.Close()
	rec, err := store.LoadRecord(name)
	if err != nil || rec == nil || rec.VerifiedAt == 0 {
		return nil
	}
	when := time.Unix(rec.VerifiedAt, 0).Format(time.RFC3339)
	if rec.VerifyOK {
		fmt.Fprintf(out, "Verified:   ok (%s)\n", when)
	} else {
		fmt.Fprintf(out, "Verified:   FAILED (%s): %s\n", when, rec.VerifyError)
	}
	return nil
}
