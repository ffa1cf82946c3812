package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"time"

	// Packages
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	httphandler "github.com/mutablelogic/go-toolbridge/pkg/httphandler"
	mcp "github.com/mutablelogic/go-toolbridge/pkg/mcp"
	version "github.com/mutablelogic/go-toolbridge/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type RunCommand struct{}

type ServeCommand struct {
	Stateless bool `name:"stateless" env:"TOOLBRIDGE_STATELESS" help:"Serve MCP without session tracking"`

	// HTTP server options
	HTTP struct {
		Addr    string        `name:"addr" env:"TOOLBRIDGE_HTTP_ADDR" default:"localhost:8080" help:"HTTP listen address"`
		Timeout time.Duration `name:"timeout" env:"TOOLBRIDGE_HTTP_TIMEOUT" default:"5m" help:"HTTP read and write timeout"`
	} `embed:"" prefix:"http."`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" type:"existingfile" help:"TLS certificate file"`
		KeyFile    string `name:"key" type:"existingfile" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCommand) Run(ctx *Globals) error {
	b, err := ctx.Bridge()
	if err != nil {
		return err
	}
	server, err := ctx.MCPServer(b)
	if err != nil {
		return err
	}
	return server.RunStdio(ctx.ctx, os.Stdin, os.Stdout)
}

func (cmd *ServeCommand) Run(ctx *Globals) error {
	b, err := ctx.Bridge()
	if err != nil {
		return err
	}

	// MCP over streamable HTTP
	opts := []mcp.Opt{}
	if cmd.Stateless {
		opts = append(opts, mcp.WithStateless())
	}
	server, err := ctx.MCPServer(b, opts...)
	if err != nil {
		return err
	}

	// Create the TLS config if TLS options are provided
	tlsConfig, err := cmd.tlsConfig()
	if err != nil {
		return err
	}

	// Create the HTTP server
	srv, err := httpserver.New(cmd.HTTP.Addr, tlsConfig,
		httpserver.WithReadTimeout(cmd.HTTP.Timeout),
		httpserver.WithWriteTimeout(cmd.HTTP.Timeout),
	)
	if err != nil {
		return err
	}
	srv.Router().Handle("/", httphandler.NewRouter(ctx.execName, b, server.Handler(), ctx.logger))

	// Bind, so that an address in use is reported before serving
	if err := srv.Listen(); err != nil {
		return err
	}

	// Run the server until the context is cancelled
	ctx.logger.InfoContext(ctx.ctx, "server started", "name", ctx.execName, "version", version.Version(), "url", srv.URL().String(), "tools", len(b.Tools()))
	if err := srv.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	ctx.logger.InfoContext(ctx.ctx, "server stopped", "name", ctx.execName)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *ServeCommand) tlsConfig() (*tls.Config, error) {
	if cmd.TLS.CertFile == "" && cmd.TLS.KeyFile == "" {
		return nil, nil
	}
	var pemData [][]byte
	if cmd.TLS.CertFile != "" {
		certData, err := os.ReadFile(cmd.TLS.CertFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read TLS certificate: %w", err)
		}
		pemData = append(pemData, certData)
	}
	if cmd.TLS.KeyFile != "" {
		keyData, err := os.ReadFile(cmd.TLS.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read TLS key: %w", err)
		}
		pemData = append(pemData, keyData)
	}
	tlsConfig, err := httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS config: %w", err)
	}
	return tlsConfig, nil
}
