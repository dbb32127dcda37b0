package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hivellm/compression-prompt/internal/compressor"
	"github.com/hivellm/compression-prompt/internal/config"
	"github.com/hivellm/compression-prompt/internal/scanner"
	"github.com/hivellm/compression-prompt/internal/tokenizer"
)

func newWatchCmd() *cobra.Command {
	var (
		ratio      float64
		outDir     string
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and compress text files as they change",
		Long: `Start a long-running watcher that monitors a directory for text file
changes and compresses each changed file into --out-dir.

Changes are debounced so that rapid edits are batched into a single pass.

Press Ctrl-C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ratio <= 0 || ratio > 1 {
				return fmt.Errorf("ratio must be in (0, 1], got %g", ratio)
			}
			root := args[0]
			if outDir == "" {
				outDir = root + ".compressed"
			}

			log := logrus.New()
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

			gcfg, err := config.LoadGlobal()
			if err != nil {
				return err
			}
			ccfg := gcfg.CompressorConfig()
			if cmd.Flags().Changed("ratio") {
				ccfg.Filter.TargetRatio = ratio
			}
			comp := compressor.New(ccfg, tokenizer.Default())

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			rules := scanner.NewRuleset(root)
			if err := addWatchDirs(watcher, root, rules); err != nil {
				return fmt.Errorf("add watch directories: %w", err)
			}

			debounce := time.Duration(debounceMs) * time.Millisecond
			log.WithFields(logrus.Fields{
				"root":     root,
				"out_dir":  outDir,
				"debounce": debounce,
			}).Info("watching for changes")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			pending := make(map[string]bool)
			timer := time.NewTimer(debounce)
			timer.Stop() // Don't fire immediately.

			for {
				select {
				case <-sigCh:
					log.Info("stopping watcher")
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}

					rel, err := filepath.Rel(root, event.Name)
					if err != nil || rel == "." {
						continue
					}
					if shouldIgnoreEvent(rel, rules) {
						continue
					}

					// If a new directory was created, start watching it.
					if event.Has(fsnotify.Create) {
						if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
							if !scanner.HardIgnore(filepath.Base(event.Name)) {
								_ = watcher.Add(event.Name)
							}
							continue
						}
					}

					if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
						continue
					}
					if !scanner.IsTextFile(rel) {
						continue
					}

					pending[rel] = true
					timer.Reset(debounce)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.WithError(err).Warn("watch error")

				case <-timer.C:
					if len(pending) == 0 {
						continue
					}
					batch := pending
					pending = make(map[string]bool)

					for rel := range batch {
						compressChanged(log, comp, ccfg, root, outDir, rel)
					}
				}
			}
		},
	}

	cmd.Flags().Float64VarP(&ratio, "ratio", "r", 0.5, "fraction of word tokens to keep (0, 1]")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for compressed copies (default <dir>.compressed)")
	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "debounce interval in milliseconds")

	return cmd
}

// addWatchDirs recursively adds directories to the watcher, skipping ignored ones.
func addWatchDirs(watcher *fsnotify.Watcher, root string, rules *scanner.Ruleset) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		if rel != "." && rules.SkipDir(rel, d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnoreEvent checks whether a relative path should be ignored by the watcher.
func shouldIgnoreEvent(rel string, rules *scanner.Ruleset) bool {
	parts := strings.Split(rel, string(filepath.Separator))
	for _, p := range parts {
		if scanner.HardIgnore(p) {
			return true
		}
	}
	return rules.Ignored(rel)
}

// compressChanged compresses one changed file into outDir.
func compressChanged(log *logrus.Logger, comp *compressor.Compressor, ccfg compressor.Config, root, outDir, rel string) {
	input, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		log.WithError(err).WithField("file", rel).Warn("read failed")
		return
	}

	result, err := comp.Compress(string(input))
	if err != nil {
		var tooShort *compressor.InputTooShortError
		var noGain *compressor.NegativeGainError
		if errors.As(err, &tooShort) || errors.As(err, &noGain) {
			log.WithField("file", rel).Debug("skipped: not worth compressing")
			return
		}
		log.WithError(err).WithField("file", rel).Warn("compress failed")
		return
	}

	dest := filepath.Join(outDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		log.WithError(err).WithField("file", rel).Warn("mkdir failed")
		return
	}
	if err := os.WriteFile(dest, []byte(result.Compressed), 0o644); err != nil {
		log.WithError(err).WithField("file", rel).Warn("write failed")
		return
	}

	recordRun(rel, input, result, ccfg, 0)
	log.WithFields(logrus.Fields{
		"file":  rel,
		"ratio": fmt.Sprintf("%.2f", result.Ratio),
		"saved": result.TokensRemoved,
	}).Info("compressed")
}
