package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adapterfs "github.com/corey/parsley/internal/adapters/fsnotify"
	"github.com/corey/parsley/internal/adapters/treesitter"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-verify grammars when artifacts change",
	Long: `Watch the grammar directories and re-run load verification whenever an
artifact is added or replaced (e.g. after 'tree-sitter generate' and a
rebuild). Outcomes are persisted to the record store. Runs until
interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := treesitter.DefaultGrammarPaths(root)

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	watcher, err := adapterfs.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Stop()

	// Each change gets a fresh registry so the re-verify dlopens the new
	// artifact instead of returning the cached language from the old one.
	verify := func(name string) {
		reg := treesitter.NewRegistry()
		reg.SetGrammarPaths(paths)
		res := treesitter.NewVerifier(reg).Verify(name)
		if res.OK() {
			log.Infow("grammar verified",
				"grammar", name,
				"path", res.Path,
				"builtin", res.Builtin,
				"duration", res.Duration)
		} else {
			log.Errorw("grammar failed verification",
				"grammar", name,
				"error", res.Err)
		}
		if err := recordResults(root, []treesitter.Result{res}); err != nil {
			log.Warnw("could not persist outcome", "grammar", name, "error", err)
		}
	}

	if err := watcher.Watch(paths, verify); err != nil {
		if os.IsNotExist(err) {
			log.Warnw("no grammar directories exist yet", "paths", paths)
			log.Infow("waiting for a grammar directory to appear")
			// Poll until one shows up, then restart the watch.
			for {
				time.Sleep(2 * time.Second)
				if err := watcher.Watch(paths, verify); err == nil {
					break
				}
			}
		} else {
			return err
		}
	}
	log.Infow("watching grammar directories", "paths", paths)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Infow("stopping")
	return nil
}
