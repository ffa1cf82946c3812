package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// field is a bound argument, keyed by its remote name
type field struct {
	name  string
	value any
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// bind coerces the arguments in parameter order, applying defaults.
// A missing required parameter is a validation error.
func (b *Bridge) bind(ctx context.Context, tool *schema.Descriptor, args map[string]any) ([]field, error) {
	fields := make([]field, 0, len(tool.Parameters))
	for _, param := range tool.Parameters {
		var value any
		if v, exists := args[param.Name]; exists && v != nil {
			if coerced, err := param.Type.Coerce(v); err != nil {
				return nil, fmt.Errorf("parameter %s: %w", param.Name, err)
			} else {
				value = coerced
			}
		} else if param.Required {
			return nil, toolbridge.ErrBadParameter.Withf("missing parameter %s", param.Name)
		} else if v, err := param.DefaultValue(); err != nil {
			return nil, err
		} else {
			value = v
		}
		fields = append(fields, field{name: param.RemoteName(), value: value})
	}

	// Unknown arguments are ignored
	for name := range args {
		if !hasParameter(tool, name) {
			b.logger.DebugContext(ctx, "ignoring unknown argument", "tool", tool.Name, "argument", name)
		}
	}

	// Return success
	return fields, nil
}

func hasParameter(tool *schema.Descriptor, name string) bool {
	for _, param := range tool.Parameters {
		if param.Name == name {
			return true
		}
	}
	return false
}

// newRequest builds the outbound request for a remote call
func newRequest(ctx context.Context, remote schema.RemoteCall, fields []field) (*http.Request, error) {
	u, err := url.Parse(remote.URL)
	if err != nil {
		return nil, toolbridge.ErrBadParameter.Withf("invalid url %q: %v", remote.URL, err)
	}

	// Set the query or the body
	var body io.Reader
	switch remote.BodyEncoding() {
	case schema.EncodingQuery:
		query := u.Query()
		for _, f := range fields {
			query.Set(f.name, schema.Format(f.value))
		}
		u.RawQuery = query.Encode()
	case schema.EncodingJSON:
		if data, err := jsonObject(fields); err != nil {
			return nil, toolbridge.ErrInternalServerError.With(err)
		} else {
			body = bytes.NewReader(data)
		}
	default:
		return nil, toolbridge.ErrBadParameter.Withf("unknown encoding %q", remote.Encoding)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, remote.HTTPMethod(), u.String(), body)
	if err != nil {
		return nil, toolbridge.ErrBadParameter.With(err)
	}
	req.Header.Set("Accept", client.ContentTypeAny)
	if body != nil {
		req.Header.Set("Content-Type", client.ContentTypeJson)
	}

	// Do not keep the connection alive after the call
	req.Close = true

	// Return success
	return req, nil
}

// jsonObject encodes the fields as a JSON object, preserving parameter order
func jsonObject(fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if key, err := json.Marshal(f.name); err != nil {
			return nil, err
		} else {
			buf.Write(key)
		}
		buf.WriteByte(':')
		if value, err := json.Marshal(f.value); err != nil {
			return nil, err
		} else {
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
