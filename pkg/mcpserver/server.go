// Package mcpserver exposes a tools.Dispatcher as an MCP server.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/entrhq/notesbridge/pkg/logging"
	"github.com/entrhq/notesbridge/pkg/tools"
)

// ServerName is the implementation name reported to clients.
const ServerName = "apple-notes"

// Server serves the dispatcher's tools over MCP.
type Server struct {
	mcp        *mcp.Server
	dispatcher *tools.Dispatcher
	logger     *logging.Logger
}

// New creates a server and registers every tool the dispatcher holds.
func New(dispatcher *tools.Dispatcher, version string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil),
		dispatcher: dispatcher,
		logger:     logger,
	}

	for _, tool := range dispatcher.Tools() {
		s.mcp.AddTool(Definition(tool), s.handler(tool.Name()))
		logger.Debug().Str("tool", tool.Name()).Msg("Registered MCP tool")
	}
	return s
}

// Definition converts a tool into its MCP description.
func Definition(tool tools.Tool) *mcp.Tool {
	def := &mcp.Tool{
		Name:        tool.Name(),
		Description: tool.Description(),
		InputSchema: tool.Schema(),
	}
	if ro, ok := tool.(tools.ReadOnly); ok {
		if ro.IsReadOnly() {
			def.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true}
		} else {
			destructive := false
			def.Annotations = &mcp.ToolAnnotations{DestructiveHint: &destructive}
		}
	}
	return def
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw []byte
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		return Result(s.dispatcher.Dispatch(ctx, name, raw)), nil
	}
}

// Result converts a dispatcher response into an MCP tool result. Tool
// failures are reported in-band with IsError, never as protocol errors.
func Result(resp *tools.Response) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(resp.Content))
	for _, c := range resp.Content {
		content = append(content, &mcp.TextContent{Text: c.Text})
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: resp.IsError,
	}
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves over stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

// RunTransport serves over an arbitrary transport.
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	s.logger.Info().Int("tools", len(s.dispatcher.Tools())).Msg("MCP server started")
	if err := s.mcp.Run(ctx, t); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	s.logger.Info().Msg("MCP server stopped")
	return nil
}
