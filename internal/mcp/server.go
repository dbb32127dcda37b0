// Package mcp exposes prompt compression as MCP tools over stdio, so
// agent frontends can shrink context before forwarding it to a model.
package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/hivellm/compression-prompt/internal/compressor"
	"github.com/hivellm/compression-prompt/internal/tokenizer"
)

// Server wires the compression pipeline into an MCP stdio server.
type Server struct {
	cfg     compressor.Config
	counter tokenizer.Tokenizer
	log     *logrus.Logger
}

// NewServer creates a Server with the given pipeline configuration.
func NewServer(cfg compressor.Config, counter tokenizer.Tokenizer, log *logrus.Logger) *Server {
	return &Server{cfg: cfg, counter: counter, log: log}
}

// Serve registers the tools and blocks serving stdio until the client
// disconnects.
func (s *Server) Serve(version string) error {
	srv := server.NewMCPServer("compression-prompt", version)

	s.registerTools(srv)

	s.log.WithField("version", version).Info("mcp server listening on stdio")
	if err := server.ServeStdio(srv); err != nil {
		return fmt.Errorf("mcp: serve: %w", err)
	}
	return nil
}
