package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hivellm/compression-prompt/internal/compressor"
	"github.com/hivellm/compression-prompt/internal/config"
	"github.com/hivellm/compression-prompt/internal/db"
	"github.com/hivellm/compression-prompt/internal/quality"
	"github.com/hivellm/compression-prompt/internal/tokenizer"
)

func newRunCmd() *cobra.Command {
	var (
		ratio       float64
		output      string
		format      string
		jpegQuality int
		showStats   bool
		noRecord    bool
	)

	cmd := &cobra.Command{
		Use:   "run [input-file]",
		Short: "Compress a file or stdin",
		Long: `Compress a single input. Reads the named file, or stdin when no file is
given, and writes the compressed result to stdout or --output.

Inputs that fail size gating or would not shrink are passed through
unchanged with a note on stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ratio <= 0 || ratio > 1 {
				return fmt.Errorf("ratio must be in (0, 1], got %g", ratio)
			}

			gcfg, err := config.LoadGlobal()
			if err != nil {
				return err
			}

			ccfg := gcfg.CompressorConfig()
			if cmd.Flags().Changed("ratio") {
				ccfg.Filter.TargetRatio = ratio
			}
			switch format {
			case "text":
				ccfg.Format = compressor.FormatText
			case "png":
				ccfg.Format = compressor.FormatPNG
			case "jpeg", "jpg":
				ccfg.Format = compressor.FormatJPEG
				ccfg.JPEGQuality = jpegQuality
			default:
				return fmt.Errorf("invalid format %q (use: text, png, jpeg)", format)
			}

			source := "stdin"
			var input []byte
			if len(args) == 1 {
				source = args[0]
				input, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			} else {
				input, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			comp := compressor.New(ccfg, tokenizer.Default())
			result, err := comp.Compress(string(input))
			if err != nil {
				var tooShort *compressor.InputTooShortError
				var noGain *compressor.NegativeGainError
				if errors.As(err, &tooShort) || errors.As(err, &noGain) {
					fmt.Fprintf(os.Stderr, "note: %v; passing input through\n", err)
					return writeOutput(output, input)
				}
				return err
			}

			m := quality.Calculate(string(input), result.Compressed)

			if showStats {
				fmt.Fprintf(os.Stderr, "Tokens:  %d -> %d (%.1f%% saved)\n",
					result.OriginalTokens, result.CompressedTokens,
					(1.0-result.Ratio)*100)
				fmt.Fprintf(os.Stderr, "Bytes:   %d -> %d\n", len(input), len(result.Compressed))
				fmt.Fprintln(os.Stderr, m.Format())
			}

			if !noRecord {
				recordRun(source, input, result, ccfg, m.OverallScore)
			}

			if result.Format != compressor.FormatText {
				if output == "" {
					return fmt.Errorf("image output requires --output")
				}
				return writeOutput(output, result.ImageBytes)
			}
			return writeOutput(output, []byte(result.Compressed))
		},
	}

	cmd.Flags().Float64VarP(&ratio, "ratio", "r", 0.5, "fraction of word tokens to keep (0, 1]")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, png, jpeg")
	cmd.Flags().IntVarP(&jpegQuality, "quality", "q", 85, "JPEG quality 1-100")
	cmd.Flags().BoolVarP(&showStats, "stats", "s", false, "print compression statistics to stderr")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "do not record this run in the history database")

	return cmd
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// recordRun appends the run to the history database. History is an
// accounting convenience, so failures only warn.
func recordRun(source string, input []byte, result *compressor.Result, ccfg compressor.Config, overall float64) {
	path, err := config.HistoryDBPath()
	if err != nil {
		return
	}
	database, err := db.OpenHistory(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: open history db: %v\n", err)
		return
	}
	defer database.Close()

	formatName := "text"
	switch result.Format {
	case compressor.FormatPNG:
		formatName = "png"
	case compressor.FormatJPEG:
		formatName = "jpeg"
	}

	_, err = database.InsertRun(db.Run{
		Source:           source,
		OriginalBytes:    len(input),
		CompressedBytes:  len(result.Compressed),
		OriginalTokens:   result.OriginalTokens,
		CompressedTokens: result.CompressedTokens,
		Ratio:            result.Ratio,
		TargetRatio:      ccfg.Filter.TargetRatio,
		QualityScore:     sql.NullFloat64{Float64: overall, Valid: overall > 0},
		Format:           formatName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: record run: %v\n", err)
	}
}
