package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hivellm/compression-prompt/internal/compressor"
	"github.com/hivellm/compression-prompt/internal/quality"
)

func (s *Server) registerTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("compress_prompt",
		mcp.WithDescription("Compress a prompt by removing low-value tokens while preserving identifiers, code, negations, and domain terms. Returns the compressed text with token accounting."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The prompt text to compress")),
		mcp.WithNumber("target_ratio", mcp.Description("Fraction of word tokens to keep, in (0, 1]. Defaults to the configured ratio (0.5 unless set in the config file)")),
	), s.handleCompress)

	srv.AddTool(mcp.NewTool("quality_metrics",
		mcp.WithDescription("Measure how well a compressed text preserves the keywords and entities of the original."),
		mcp.WithString("original", mcp.Required(), mcp.Description("The original text")),
		mcp.WithString("compressed", mcp.Required(), mcp.Description("The compressed text")),
	), s.handleQualityMetrics)
}

func (s *Server) handleCompress(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	cfg := s.cfg
	if ratio := req.GetFloat("target_ratio", 0); ratio != 0 {
		if ratio <= 0 || ratio > 1 {
			return mcp.NewToolResultError(fmt.Sprintf("target_ratio must be in (0, 1], got %g", ratio)), nil
		}
		cfg.Filter.TargetRatio = ratio
	}

	comp := compressor.New(cfg, s.counter)
	result, err := comp.Compress(text)
	if err != nil {
		var tooShort *compressor.InputTooShortError
		var noGain *compressor.NegativeGainError
		switch {
		case errors.As(err, &tooShort), errors.As(err, &noGain):
			// Pass-through is the documented recovery: the input is
			// returned unchanged so the caller can use it as-is.
			s.log.WithError(err).Debug("compression skipped")
			return mcp.NewToolResultText(text), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("compression failed: %v", err)), nil
		}
	}

	s.log.WithFields(map[string]interface{}{
		"original_tokens":   result.OriginalTokens,
		"compressed_tokens": result.CompressedTokens,
		"ratio":             result.Ratio,
	}).Info("compressed prompt")

	summary := fmt.Sprintf("[%d -> %d tokens, ratio %.2f]\n%s",
		result.OriginalTokens, result.CompressedTokens, result.Ratio, result.Compressed)
	return mcp.NewToolResultText(summary), nil
}

func (s *Server) handleQualityMetrics(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	original, err := req.RequireString("original")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: original"), nil
	}
	compressed, err := req.RequireString("compressed")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: compressed"), nil
	}

	m := quality.Calculate(original, compressed)
	return mcp.NewToolResultText(m.Format()), nil
}
