package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hivellm/compression-prompt/internal/compressor"
	"github.com/hivellm/compression-prompt/internal/config"
	"github.com/hivellm/compression-prompt/internal/quality"
	"github.com/hivellm/compression-prompt/internal/scanner"
	"github.com/hivellm/compression-prompt/internal/tokenizer"
)

func newBatchCmd() *cobra.Command {
	var (
		ratio  float64
		outDir string
		suffix string
	)

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Compress every text file under a directory",
		Long: `Walk a directory, find compressible text files (.txt, .md, and friends,
honoring .gitignore), and compress each one.

Results are written next to the originals with a suffix, or mirrored into
--out-dir when given. Files that fail size gating are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ratio <= 0 || ratio > 1 {
				return fmt.Errorf("ratio must be in (0, 1], got %g", ratio)
			}

			root := args[0]
			files, err := scanner.Discover(root)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			if len(files) == 0 {
				fmt.Println("No compressible text files found.")
				return nil
			}

			gcfg, err := config.LoadGlobal()
			if err != nil {
				return err
			}
			ccfg := gcfg.CompressorConfig()
			if cmd.Flags().Changed("ratio") {
				ccfg.Filter.TargetRatio = ratio
			}

			comp := compressor.New(ccfg, tokenizer.Default())

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetDescription("  Compressing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			var done, skipped int
			var tokensSaved int
			for _, rel := range files {
				bar.Add(1)

				input, err := os.ReadFile(filepath.Join(root, rel))
				if err != nil {
					fmt.Fprintf(os.Stderr, "  warning: read %s: %v\n", rel, err)
					continue
				}

				result, err := comp.Compress(string(input))
				if err != nil {
					var tooShort *compressor.InputTooShortError
					var noGain *compressor.NegativeGainError
					if errors.As(err, &tooShort) || errors.As(err, &noGain) {
						skipped++
						continue
					}
					fmt.Fprintf(os.Stderr, "  warning: compress %s: %v\n", rel, err)
					continue
				}

				dest := destPath(root, rel, outDir, suffix)
				if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
					fmt.Fprintf(os.Stderr, "  warning: mkdir for %s: %v\n", rel, err)
					continue
				}
				if err := os.WriteFile(dest, []byte(result.Compressed), 0o644); err != nil {
					fmt.Fprintf(os.Stderr, "  warning: write %s: %v\n", dest, err)
					continue
				}

				m := quality.Calculate(string(input), result.Compressed)
				recordRun(rel, input, result, ccfg, m.OverallScore)
				done++
				tokensSaved += result.TokensRemoved
			}

			fmt.Printf("Compressed %d file(s), skipped %d, saved ~%d tokens.\n",
				done, skipped, tokensSaved)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&ratio, "ratio", "r", 0.5, "fraction of word tokens to keep (0, 1]")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "mirror compressed files into this directory")
	cmd.Flags().StringVar(&suffix, "suffix", ".compressed", "suffix inserted before the extension")

	return cmd
}

// destPath places the compressed copy: mirrored under outDir when set,
// otherwise next to the original with the suffix before the extension.
func destPath(root, rel, outDir, suffix string) string {
	if outDir != "" {
		return filepath.Join(outDir, rel)
	}
	ext := filepath.Ext(rel)
	base := rel[:len(rel)-len(ext)]
	return filepath.Join(root, base+suffix+ext)
}
