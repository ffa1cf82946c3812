package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	transport "github.com/mutablelogic/go-client/pkg/transport"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	bridge "github.com/mutablelogic/go-toolbridge/pkg/bridge"
	httpclient "github.com/mutablelogic/go-toolbridge/pkg/httpclient"
	mcp "github.com/mutablelogic/go-toolbridge/pkg/mcp"
	outsystems "github.com/mutablelogic/go-toolbridge/pkg/outsystems"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
	telemetry "github.com/mutablelogic/go-toolbridge/pkg/telemetry"
	version "github.com/mutablelogic/go-toolbridge/pkg/version"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" env:"TOOLBRIDGE_DEBUG" help:"Enable debug logging and trace remote requests"`
	Verbose bool `name:"verbose" env:"TOOLBRIDGE_VERBOSE" help:"Include request and response bodies in traces"`

	// Tools
	Endpoint  string        `name:"endpoint" env:"TOOLBRIDGE_ENDPOINT" default:"${endpoint}" help:"REST endpoint for the built-in tools"`
	Manifest  []string      `name:"manifest" env:"TOOLBRIDGE_MANIFEST" type:"existingfile" help:"YAML tool manifest, may be repeated"`
	NoBuiltin bool          `name:"no-builtin" env:"TOOLBRIDGE_NO_BUILTIN" help:"Do not register the built-in tools"`
	Timeout   time.Duration `name:"timeout" env:"TOOLBRIDGE_TIMEOUT" default:"30s" help:"Timeout for each remote call, zero for none"`

	// Call tools through a running server
	Remote string `name:"remote" env:"TOOLBRIDGE_REMOTE" help:"URL of a toolbridge server, used by the tools, tool and call commands"`

	// Open Telemetry
	OTel struct {
		Endpoint string `name:"endpoint" env:"TOOLBRIDGE_OTEL_ENDPOINT,OTEL_EXPORTER_OTLP_ENDPOINT" help:"OTLP endpoint for traces, metrics and logs"`
		Header   string `name:"header" env:"OTEL_EXPORTER_OTLP_HEADERS" help:"Headers sent with each export, as key=value pairs"`
	} `embed:"" prefix:"otel."`

	// Private
	ctx      context.Context
	execName string
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
}

type CLI struct {
	Globals

	// MCP
	Run   RunCommand   `cmd:"" name:"run" help:"Serve MCP over standard input and output." group:"SERVER"`
	Serve ServeCommand `cmd:"" name:"serve" help:"Serve MCP and REST over HTTP." group:"SERVER"`

	// Tools
	ToolCommands

	// Version
	Version VersionCommand `cmd:"" name:"version" help:"Print the version and exit."`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	shutdownTimeout = 5 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	name := execName()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(name),
		kong.Description("Expose REST endpoints as Model Context Protocol tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"endpoint": outsystems.EndPoint,
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = name

	// Export telemetry when an endpoint is set
	var handlers []slog.Handler
	var provider *telemetry.Provider
	if cli.OTel.Endpoint != "" {
		var err error
		provider, err = telemetry.New(name, version.Version(), cli.OTel.Endpoint, cli.OTel.Header)
		cmd.FatalIfErrorf(err)
		cli.Globals.tracer = provider.Tracer()
		cli.Globals.meter = provider.Meter()
		handlers = append(handlers, provider.Handler())
	}

	// Standard output carries the MCP protocol, so log to standard error
	cli.Globals.logger = telemetry.NewLogger(os.Stderr, cli.Debug, handlers...)

	// Run the command
	err := cmd.Run(&cli.Globals)

	// Flush telemetry
	if provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			cli.Globals.logger.Warn("telemetry shutdown", "error", err)
		}
	}

	cmd.FatalIfErrorf(err)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns the built-in tools and the tools from every manifest
func (g *Globals) Tools() ([]*schema.Descriptor, error) {
	var tools []*schema.Descriptor
	if !g.NoBuiltin {
		builtin, err := outsystems.NewTools(g.Endpoint)
		if err != nil {
			return nil, err
		}
		tools = append(tools, builtin...)
	}
	for _, path := range g.Manifest {
		manifest, err := schema.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		tools = append(tools, manifest.Tools...)
	}
	if len(tools) == 0 {
		return nil, toolbridge.ErrBadParameter.With("no tools, set --manifest or remove --no-builtin")
	}
	return tools, nil
}

// Bridge returns a bridge for the configured tools
func (g *Globals) Bridge() (*bridge.Bridge, error) {
	tools, err := g.Tools()
	if err != nil {
		return nil, err
	}

	// Client options
	clientopts := []client.ClientOpt{client.OptUserAgent(version.UserAgent())}
	if g.Debug {
		clientopts = append(clientopts, client.OptTransport(func(parent http.RoundTripper) http.RoundTripper {
			return transport.NewLogging(os.Stderr, parent, g.Verbose)
		}))
	}

	// Bridge options
	opts := []bridge.Opt{
		bridge.WithTimeout(g.Timeout),
		bridge.WithLogger(g.logger),
		bridge.WithClientOpts(clientopts...),
	}
	if g.tracer != nil {
		opts = append(opts, bridge.WithTracer(g.tracer))
	}
	if g.meter != nil {
		opts = append(opts, bridge.WithMeter(g.meter))
	}

	return bridge.New(tools, opts...)
}

// Client returns a client for the server set with --remote
func (g *Globals) Client() (*httpclient.Client, error) {
	if g.Remote == "" {
		return nil, toolbridge.ErrBadParameter.With("missing --remote")
	}
	opts := []client.ClientOpt{client.OptUserAgent(version.UserAgent()), client.OptTimeout(g.Timeout)}
	if g.Debug {
		opts = append(opts, client.OptTransport(func(parent http.RoundTripper) http.RoundTripper {
			return transport.NewLogging(os.Stderr, parent, g.Verbose)
		}))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	return httpclient.New(g.Remote, opts...)
}

// ToolMeta returns the metadata for every tool, from the remote server
// when --remote is set
func (g *Globals) ToolMeta() ([]schema.ToolMeta, error) {
	if g.Remote != "" {
		c, err := g.Client()
		if err != nil {
			return nil, err
		}
		resp, err := c.ListTools(g.ctx)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	}

	b, err := g.Bridge()
	if err != nil {
		return nil, err
	}
	result := make([]schema.ToolMeta, 0, len(b.Tools()))
	for _, tool := range b.Tools() {
		meta, err := schema.NewToolMeta(tool)
		if err != nil {
			return nil, err
		}
		result = append(result, meta)
	}
	return result, nil
}

// Tool returns the metadata for one tool, from the remote server when
// --remote is set
func (g *Globals) Tool(name string) (*schema.ToolMeta, error) {
	if g.Remote != "" {
		c, err := g.Client()
		if err != nil {
			return nil, err
		}
		return c.GetTool(g.ctx, name)
	}

	b, err := g.Bridge()
	if err != nil {
		return nil, err
	}
	tool := b.Lookup(name)
	if tool == nil {
		return nil, toolbridge.ErrNotFound.Withf("tool %q not found", name)
	}
	meta, err := schema.NewToolMeta(tool)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// MCPServer returns an MCP server for the bridge
func (g *Globals) MCPServer(b *bridge.Bridge, opts ...mcp.Opt) (*mcp.Server, error) {
	opts = append([]mcp.Opt{
		mcp.WithLogger(g.logger),
		mcp.WithInstructions(instructions),
	}, opts...)
	return mcp.New(version.Name, version.Version(), b, opts...)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

const instructions = `Each tool forwards its arguments to a REST endpoint and returns the reply.
Calls are not retried, so check the result before calling a tool again.`

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
