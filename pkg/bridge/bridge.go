// Package bridge implements a registry of REST-backed tools. Each invocation
// validates its arguments against the tool's descriptor, forwards them as a
// single HTTP request and maps the response to a typed result or an error.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	metric "go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Bridge is an immutable registry of tools. It holds no per-call state,
// so Invoke is safe to call concurrently.
type Bridge struct {
	tools       map[string]*schema.Descriptor
	timeout     time.Duration
	maxResponse int64
	clientopts  []client.ClientOpt
	tracer      trace.Tracer
	traced      bool
	meter       metric.Meter
	calls       metric.Int64Counter
	duration    metric.Float64Histogram
	logger      *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	tracerName = "github.com/mutablelogic/go-toolbridge/pkg/bridge"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New validates and registers the tools. Duplicate names are rejected.
func New(tools []*schema.Descriptor, opts ...Opt) (*Bridge, error) {
	b := &Bridge{
		tools:       make(map[string]*schema.Descriptor, len(tools)),
		timeout:     DefaultTimeout,
		maxResponse: DefaultMaxResponse,
		tracer:      noop.NewTracerProvider().Tracer(tracerName),
		meter:       metricnoop.NewMeterProvider().Meter(tracerName),
		logger:      slog.New(slog.DiscardHandler),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	// Create the instruments
	if calls, err := b.meter.Int64Counter("toolbridge.invocations",
		metric.WithDescription("Number of tool invocations"),
	); err != nil {
		return nil, err
	} else {
		b.calls = calls
	}
	if duration, err := b.meter.Float64Histogram("toolbridge.invocation.duration",
		metric.WithDescription("Duration of remote calls"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	} else {
		b.duration = duration
	}

	// Register the tools
	for _, tool := range tools {
		if err := tool.Validate(); err != nil {
			return nil, err
		}
		if _, exists := b.tools[tool.Name]; exists {
			return nil, toolbridge.ErrConflict.Withf("tool %q already exists", tool.Name)
		}

		// Take a copy, so the caller cannot modify a registered tool
		b.tools[tool.Name] = clone(tool)
	}

	// Return success
	return b, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns copies of the registered tools, sorted by name
func (b *Bridge) Tools() []*schema.Descriptor {
	result := make([]*schema.Descriptor, 0, len(b.tools))
	for _, tool := range b.tools {
		result = append(result, clone(tool))
	}
	slices.SortFunc(result, func(a, b *schema.Descriptor) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Lookup returns a copy of a tool by name, or nil if it is not registered
func (b *Bridge) Lookup(name string) *schema.Descriptor {
	if tool, exists := b.tools[name]; exists {
		return clone(tool)
	}
	return nil
}

// Timeout returns the per-call timeout
func (b *Bridge) Timeout() time.Duration {
	return b.timeout
}

// InvokeJSON decodes a JSON object of arguments and invokes the tool.
// Empty or null arguments are treated as an empty object.
func (b *Bridge) InvokeJSON(ctx context.Context, name string, data json.RawMessage) (any, error) {
	args := make(map[string]any)
	if data := bytes.TrimSpace(data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return nil, toolbridge.ErrBadParameter.Withf("invalid arguments: %v", err)
		} else if _, err := dec.Token(); err != io.EOF {
			return nil, toolbridge.ErrBadParameter.With("invalid arguments: trailing data")
		}
	}
	return b.Invoke(ctx, name, args)
}

// Invoke validates the arguments, forwards them to the remote service and
// returns the typed result. Validation failures return ErrBadParameter
// without any network I/O.
func (b *Bridge) Invoke(ctx context.Context, name string, args map[string]any) (result any, err error) {
	tool, exists := b.tools[name]
	if !exists {
		return nil, toolbridge.ErrNotFound.Withf("tool %q not found", name)
	}

	// Count the invocation by outcome
	defer func() {
		b.calls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tool", tool.Name),
			attribute.String("outcome", outcome(err)),
		))
	}()

	// Bind the arguments against the parameter schema
	fields, err := b.bind(ctx, tool, args)
	if err != nil {
		return nil, err
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(b.tracer, ctx, "Invoke",
		attribute.String("tool", tool.Name),
		attribute.String("method", tool.Remote.HTTPMethod()),
		attribute.String("url", tool.Remote.URL),
	)
	defer func() { endSpan(err) }()

	// Apply the per-call timeout
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	// Build the request
	req, err := newRequest(ctx, tool.Remote, fields)
	if err != nil {
		return nil, err
	}

	// Perform the request
	start := time.Now()
	status, body, err := b.do(req)
	b.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("tool", tool.Name)))
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("status", status))
	b.logger.DebugContext(ctx, "invoke", "tool", tool.Name, "status", status, "duration", time.Since(start), "error", err)
	if err != nil {
		return nil, err
	}

	// Map the response
	return decode(tool.Result, status, body)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// clone returns a copy of a descriptor which shares no mutable state
func clone(tool *schema.Descriptor) *schema.Descriptor {
	result := *tool
	result.Parameters = slices.Clone(tool.Parameters)
	return &result
}

// outcome returns a metric label for the result of an invocation
func outcome(err error) string {
	var code toolbridge.Err
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &code):
		return strings.ReplaceAll(code.Error(), " ", "_")
	default:
		return "error"
	}
}
