package mcp

import (
	"log/slog"

	// Packages
	toolbridge "github.com/mutablelogic/go-toolbridge"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger used by the protocol layer
func WithLogger(logger *slog.Logger) Opt {
	return func(server *Server) error {
		if logger == nil {
			return toolbridge.ErrBadParameter.With("logger is required")
		}
		server.logger = logger
		return nil
	}
}

// WithInstructions sets the instructions returned to clients on initialize
func WithInstructions(v string) Opt {
	return func(server *Server) error {
		server.instructions = v
		return nil
	}
}

// WithStateless serves streamable HTTP without session tracking
func WithStateless() Opt {
	return func(server *Server) error {
		server.stateless = true
		return nil
	}
}
