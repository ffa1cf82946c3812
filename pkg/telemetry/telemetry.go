// Package telemetry configures OpenTelemetry trace, metric and log export
// over OTLP, and the structured logger.
package telemetry

import (
	"context"
	"log/slog"

	// Packages
	otel "github.com/mutablelogic/go-server/pkg/otel"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	otelslog "go.opentelemetry.io/contrib/bridges/otelslog"
	global "go.opentelemetry.io/otel/log/global"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Provider exports the telemetry of a service. Only one provider can be
// active in a process.
type Provider struct {
	name     string
	provider *otel.Provider
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New exports traces, metrics and logs to an OTLP endpoint and installs the
// global providers. The endpoint is an http(s) URL such as
// http://localhost:4318, or grpc://host:4317. The header is a list of
// comma-separated key=value pairs sent with each export.
func New(name, version, endpoint, header string) (*Provider, error) {
	if name == "" {
		return nil, toolbridge.ErrBadParameter.With("missing service name")
	}
	if endpoint == "" {
		return nil, toolbridge.ErrBadParameter.With("missing otel endpoint")
	}
	provider, err := otel.NewProvider(endpoint, endpoint, endpoint, header, name, otel.Attr{
		Key:   "service.version",
		Value: version,
	})
	if err != nil {
		return nil, toolbridge.ErrBadParameter.With(err)
	}
	return &Provider{name: name, provider: provider}, nil
}

// Shutdown flushes pending telemetry and restores the no-op providers
func (p *Provider) Shutdown(ctx context.Context) error {
	return otel.ShutdownProvider(ctx)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tracer returns a tracer for the service
func (p *Provider) Tracer() trace.Tracer {
	return p.provider.Tracer(p.name)
}

// Meter returns a meter for the service
func (p *Provider) Meter() metric.Meter {
	return p.provider.Meter(p.name)
}

// Handler returns a slog handler which exports records as OpenTelemetry logs
func (p *Provider) Handler() slog.Handler {
	return otelslog.NewHandler(p.name, otelslog.WithLoggerProvider(global.GetLoggerProvider()))
}
