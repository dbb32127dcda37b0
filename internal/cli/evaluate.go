package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hivellm/compression-prompt/internal/adapter"
	"github.com/hivellm/compression-prompt/internal/compressor"
	"github.com/hivellm/compression-prompt/internal/config"
	"github.com/hivellm/compression-prompt/internal/eval"
	"github.com/hivellm/compression-prompt/internal/quality"
	"github.com/hivellm/compression-prompt/internal/tokenizer"
)

func newEvaluateCmd() *cobra.Command {
	var (
		ratio    float64
		provider string
		model    string
	)

	cmd := &cobra.Command{
		Use:   "evaluate <input-file>",
		Short: "Compress a file and have an LLM judge the fidelity",
		Long: `Compress the input, then send both versions to an LLM judge that rates
how much of the original's actionable content survives (0-100).

Requires an API key for the chosen provider (ANTHROPIC_API_KEY or
OPENAI_API_KEY, or the keys section of the config file).`,
		Args: cobra.ExactArgs(1),
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

			if provider == "" {
				provider = gcfg.Eval.Provider
			}
			if model == "" {
				model = gcfg.Eval.Model
			}

			apiKey := gcfg.Keys.Anthropic
			if provider == adapter.ProviderOpenAI {
				apiKey = gcfg.Keys.OpenAI
			}

			llm, err := adapter.New(provider, apiKey)
			if err != nil {
				return err
			}

			input, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			comp := compressor.New(ccfg, tokenizer.Default())
			result, err := comp.Compress(string(input))
			if err != nil {
				return err
			}

			m := quality.Calculate(string(input), result.Compressed)
			fmt.Printf("Tokens: %d -> %d (ratio %.2f)\n",
				result.OriginalTokens, result.CompressedTokens, result.Ratio)
			fmt.Println(m.Format())

			fmt.Printf("\nAsking %s to judge...\n", llm.Info().Name)
			verdict, err := eval.New(llm, model).Judge(cmd.Context(), string(input), result.Compressed)
			if err != nil {
				return err
			}

			fmt.Printf("\nLLM fidelity score: %d/100\n%s\n", verdict.Score, verdict.Justification)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&ratio, "ratio", "r", 0.5, "fraction of word tokens to keep (0, 1]")
	cmd.Flags().StringVar(&provider, "provider", "", "judge provider: claude or openai (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "judge model override")

	return cmd
}
