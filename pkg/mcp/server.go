// Package mcp exposes the tools of a bridge over the Model Context Protocol,
// using either standard input and output or streamable HTTP.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	// Packages
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	bridge "github.com/mutablelogic/go-toolbridge/pkg/bridge"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name         string
	version      string
	instructions string
	stateless    bool
	logger       *slog.Logger
	bridge       *bridge.Bridge
	server       *sdk.Server
}

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version, which serves
// the tools registered with the bridge
func New(name, version string, b *bridge.Bridge, opts ...Opt) (*Server, error) {
	if b == nil {
		return nil, toolbridge.ErrBadParameter.With("bridge is required")
	}
	self := &Server{
		name:    name,
		version: version,
		bridge:  b,
		logger:  slog.New(slog.DiscardHandler),
	}
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Create the protocol server
	self.server = sdk.NewServer(&sdk.Implementation{
		Name:    name,
		Version: version,
	}, &sdk.ServerOptions{
		Instructions: self.instructions,
		Logger:       self.logger,
	})

	// Register the tools
	for _, tool := range b.Tools() {
		schema, err := tool.Schema()
		if err != nil {
			return nil, err
		}
		self.server.AddTool(&sdk.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		}, self.handler(tool.Name))
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Implements an MCP server with standard input and output,
// and run in the foreground until the context is done.
func (server *Server) RunStdio(ctx context.Context, r io.ReadCloser, w io.WriteCloser) error {
	server.logger.InfoContext(ctx, "mcp server started", "name", server.name, "version", server.version)
	defer server.logger.InfoContext(ctx, "mcp server stopped", "name", server.name)
	return server.Run(ctx, &sdk.IOTransport{Reader: r, Writer: w})
}

// Run serves a single session over the transport until the client
// disconnects or the context is done
func (server *Server) Run(ctx context.Context, t sdk.Transport) error {
	return server.server.Run(ctx, t)
}

// Connect starts a session over the transport and returns immediately
func (server *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return server.server.Connect(ctx, t, nil)
}

// Handler returns an http.Handler which serves the streamable HTTP transport
func (server *Server) Handler() http.Handler {
	return sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return server.server
	}, &sdk.StreamableHTTPOptions{
		Stateless: server.stateless,
		Logger:    server.logger,
	})
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// handler invokes a tool. Failures are returned as a tool result with
// IsError set, so the client always sees the error message.
func (server *Server) handler(name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		var args json.RawMessage
		if req.Params != nil {
			args = req.Params.Arguments
		}
		result, err := server.bridge.InvokeJSON(ctx, name, args)
		if err != nil {
			server.logger.WarnContext(ctx, "tool call failed", "tool", name, "error", err)
			return &sdk.CallToolResult{
				Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}
		return &sdk.CallToolResult{
			Content:           []sdk.Content{&sdk.TextContent{Text: text(result)}},
			StructuredContent: map[string]any{"result": result},
		}, nil
	}
}

// text renders a result as the text content of a tool result
func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		if data, err := json.Marshal(v); err != nil {
			return err.Error()
		} else {
			return string(data)
		}
	}
}
