package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hivellm/compression-prompt/internal/config"
	"github.com/hivellm/compression-prompt/internal/mcp"
	"github.com/hivellm/compression-prompt/internal/tokenizer"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve compression tools over the Model Context Protocol",
		Long: `Start an MCP server on stdio exposing compress_prompt and
quality_metrics tools, so agent frontends can shrink context before
forwarding it to a model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gcfg, err := config.LoadGlobal()
			if err != nil {
				return err
			}

			log := logrus.New()
			// stdout carries the protocol; keep logs on stderr.
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

			srv := mcp.NewServer(gcfg.CompressorConfig(), tokenizer.Default(), log)
			return srv.Serve(version)
		},
	}
}
