package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/parsley/internal/adapters/treesitter"
	"github.com/corey/parsley/internal/ports"
)

var installGlobal bool

var installCmd = &cobra.Command{
	Use:   "install <grammar|pack>...",
	Short: "Install prebuilt grammar artifacts",
	Long: `Install grammars by name or pack:

  parsley install project   Install the project grammars (bind, dash)
  parsley install core      Install the core language pack
  parsley install extra     Install the extra language pack
  parsley install all       Install everything
  parsley install dash      Install a single grammar

Artifacts are fetched from the release base URL, SHA-256 verified against
the manifest, and installed into the project grammar directory
(.parsley/grammars/), or the global one with --global.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installGlobal, "global", false, "Install into ~/.parsley/grammars instead of the project")
}

func runInstall(cmd *cobra.Command, args []string) error {
	manifest := treesitter.BuiltinManifest()
	root := projectRoot()

	grammarDir := filepath.Join(root, ".parsley", "grammars")
	if installGlobal {
		grammarDir = treesitter.GlobalGrammarDir()
		if grammarDir == "" {
			return fmt.Errorf("cannot resolve home directory for --global install")
		}
	}

	// Resolve targets — pack names or individual grammars.
	var targets []string
	for _, arg := range args {
		if pack := manifest.PackGrammars(arg); len(pack) > 0 {
			targets = append(targets, pack...)
		} else if _, ok := manifest.Grammars[arg]; ok {
			targets = append(targets, arg)
		} else {
			return fmt.Errorf("unknown grammar or pack: %s\nAvailable packs: %s",
				arg, strings.Join(treesitter.AllPacks, ", "))
		}
	}
	targets = dedupe(targets)
	sort.Strings(targets)

	dl := treesitter.NewDownloader(manifest.BaseURL, grammarDir)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Grammar directory: %s\n", grammarDir)
	fmt.Fprintf(out, "Grammars to install: %d\n\n", len(targets))

	store, err := openStore(root)
	if err != nil {
		return err
	}
	defer store.Close()

	ext := treesitter.LibExtension()
	failed := 0
	for _, name := range targets {
		info := manifest.Grammars[name]
		soPath := filepath.Join(grammarDir, treesitter.SOBaseName(name)+ext)

		if _, err := os.Stat(soPath); err == nil {
			fmt.Fprintf(out, "  skip  %-14s (already installed)\n", name)
			continue
		}

		installed, err := dl.Fetch(info)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  FAIL  %-14s %v\n", name, err)
			continue
		}
		fmt.Fprintf(out, "  ok    %-14s %s\n", name, installed)

		digest, _ := treesitter.SHA256File(installed)
		rec := &ports.GrammarRecord{
			Name:        name,
			Version:     info.Version,
			Path:        installed,
			SHA256:      digest,
			Platform:    treesitter.PlatformString(),
			Source:      "installed",
			InstalledAt: time.Now().Unix(),
		}
		if err := store.SaveRecord(rec); err != nil {
			fmt.Fprintf(out, "        warning: could not record %s: %v\n", name, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d grammars failed to install", failed, len(targets))
	}
	fmt.Fprintf(out, "\nDone. Verify with: parsley verify --installed\n")
	return nil
}
