package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/adapters/treesitter"
	"github.com/corey/parsley/internal/ports"
)

var (
	verifyAll       bool
	verifyInstalled bool
	verifyNoRecord  bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [grammar...]",
	Short: "Verify that grammars load",
	Long: `Load each grammar and confirm a parser accepts it. With no arguments the
project grammars (bind, dash) are verified. Any load failure — missing
artifact, unloadable library, null grammar pointer, ABI rejection — fails
that grammar; the exit code is non-zero if any grammar fails.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyAll, "all", false, "Verify every grammar in the manifest")
	verifyCmd.Flags().BoolVar(&verifyInstalled, "installed", false, "Verify compiled-in and installed grammars")
	verifyCmd.Flags().BoolVar(&verifyNoRecord, "no-record", false, "Do not persist outcomes to the record store")
}

func runVerify(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	reg := newRegistry(root)
	verifier := treesitter.NewVerifier(reg)

	names := args
	switch {
	case verifyAll:
		names = treesitter.BuiltinManifest().PackGrammars("all")
		sort.Strings(names)
	case verifyInstalled:
		names = reg.BuiltinGrammars()
		names = append(names, reg.Loader().InstalledGrammars()...)
		names = dedupe(names)
		sort.Strings(names)
	}

	results := verifier.VerifyAll(names)

	out := cmd.OutOrStdout()
	failed := 0
	for _, res := range results {
		switch {
		case res.OK() && res.Builtin:
			fmt.Fprintf(out, "  ok    %-14s builtin  (%s)\n", res.Grammar, res.Duration.Round(time.Microsecond))
		case res.OK():
			fmt.Fprintf(out, "  ok    %-14s %s  (%s)\n", res.Grammar, res.Path, res.Duration.Round(time.Microsecond))
		default:
			failed++
			fmt.Fprintf(out, "  FAIL  %-14s %v\n", res.Grammar, res.Err)
		}
	}

	if !verifyNoRecord {
		if err := recordResults(root, results); err != nil {
			fmt.Fprintf(out, "\nwarning: could not persist outcomes: %v\n", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d grammars failed to load", failed, len(results))
	}
	fmt.Fprintf(out, "\n%d grammars verified\n", len(results))
	return nil
}

// recordResults writes verification outcomes to the project store, merging
// into existing records where present.
func recordResults(root string, results []treesitter.Result) error {
	store, err := openStore(root)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now()
	manifest := treesitter.BuiltinManifest()
	for _, res := range results {
		rec, err := store.LoadRecord(res.Grammar)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = &ports.GrammarRecord{
				Name:     res.Grammar,
				Platform: treesitter.PlatformString(),
			}
			if info, ok := manifest.Grammars[res.Grammar]; ok {
				rec.Version = info.Version
			}
		}
		if res.Builtin {
			rec.Source = "builtin"
			rec.Path = ""
		} else {
			rec.Source = "installed"
			rec.Path = res.Path
		}
		treesitter.RecordResult(rec, res, now)
		if err := store.SaveRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// dedupe removes repeats preserving first occurrence.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
