package bridge

import (
	"log/slog"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a bridge
type Opt func(*Bridge) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultTimeout bounds each remote call unless overridden
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResponse is the largest response body read, in bytes
	DefaultMaxResponse = 1 << 20
)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTimeout sets the per-call timeout. Zero disables the bridge timeout,
// leaving only the caller's context deadline.
func WithTimeout(timeout time.Duration) Opt {
	return func(b *Bridge) error {
		if timeout < 0 {
			return toolbridge.ErrBadParameter.Withf("invalid timeout %v", timeout)
		}
		b.timeout = timeout
		return nil
	}
}

// WithMaxResponse caps the number of response bytes read from the remote
func WithMaxResponse(n int64) Opt {
	return func(b *Bridge) error {
		if n <= 0 {
			return toolbridge.ErrBadParameter.Withf("invalid max response size %d", n)
		}
		b.maxResponse = n
		return nil
	}
}

// WithClientOpts appends options used when creating the client for each call,
// for example client.OptUserAgent. Transport middleware must be added with
// client.OptTransport.
func WithClientOpts(opts ...client.ClientOpt) Opt {
	return func(b *Bridge) error {
		b.clientopts = append(b.clientopts, opts...)
		return nil
	}
}

// WithTracer sets the tracer used for invocation spans and outbound requests
func WithTracer(tracer trace.Tracer) Opt {
	return func(b *Bridge) error {
		if tracer == nil {
			return toolbridge.ErrBadParameter.With("tracer is required")
		}
		b.tracer = tracer
		b.traced = true
		return nil
	}
}

// WithMeter sets the meter used to count invocations and record their duration
func WithMeter(meter metric.Meter) Opt {
	return func(b *Bridge) error {
		if meter == nil {
			return toolbridge.ErrBadParameter.With("meter is required")
		}
		b.meter = meter
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Opt {
	return func(b *Bridge) error {
		if logger == nil {
			return toolbridge.ErrBadParameter.With("logger is required")
		}
		b.logger = logger
		return nil
	}
}
