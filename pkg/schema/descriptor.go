package schema

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	toolbridge "github.com/mutablelogic/go-toolbridge"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Encoding determines how arguments are placed in the outbound request
type Encoding string

// Parameter is one entry of a tool's ordered parameter schema
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Remote      string `json:"remote,omitempty" yaml:"remote,omitempty"` // Remote field name, defaults to Name
	Type        Type   `json:"type" yaml:"type"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"` // Hint only, for example "date"
}

// RemoteCall describes the single HTTP request a tool forwards to
type RemoteCall struct {
	Method   string   `json:"method,omitempty" yaml:"method,omitempty"`
	URL      string   `json:"url" yaml:"url"`
	Encoding Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// Descriptor declares a tool: its name, ordered parameters, result type
// and the remote call which implements it. Descriptors are immutable
// once registered.
type Descriptor struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Result      Type        `json:"result" yaml:"result"`
	Remote      RemoteCall  `json:"remote" yaml:"remote"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EncodingQuery Encoding = "query"
	EncodingJSON  Encoding = "json"
)

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (d Descriptor) String() string {
	return types.Stringify(d)
}

func (p Parameter) String() string {
	return types.Stringify(p)
}

////////////////////////////////////////////////////////////////////////////////
// PARAMETER

// RemoteName returns the field name used in the outbound request
func (p Parameter) RemoteName() string {
	if p.Remote != "" {
		return p.Remote
	}
	return p.Name
}

// DefaultValue returns the coerced default for an optional parameter
func (p Parameter) DefaultValue() (any, error) {
	if p.Default == nil {
		return nil, toolbridge.ErrBadParameter.Withf("parameter %q has no default", p.Name)
	}
	return p.Type.Coerce(p.Default)
}

// Validate checks a parameter declaration
func (p Parameter) Validate() error {
	if !types.IsIdentifier(p.Name) {
		return toolbridge.ErrBadParameter.Withf("invalid parameter name %q", p.Name)
	}
	if !types.IsIdentifier(p.RemoteName()) {
		return toolbridge.ErrBadParameter.Withf("parameter %q: invalid remote name %q", p.Name, p.RemoteName())
	}
	if !p.Type.Valid() {
		return toolbridge.ErrBadParameter.Withf("parameter %q: unknown type %q", p.Name, p.Type)
	}

	// Required and default are mutually exclusive, and one must be set
	switch {
	case p.Required && p.Default != nil:
		return toolbridge.ErrBadParameter.Withf("parameter %q: required parameter cannot have a default", p.Name)
	case !p.Required && p.Default == nil:
		return toolbridge.ErrBadParameter.Withf("parameter %q: optional parameter requires a default", p.Name)
	case !p.Required:
		if _, err := p.DefaultValue(); err != nil {
			return fmt.Errorf("parameter %q: invalid default: %w", p.Name, err)
		}
	}

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// REMOTE CALL

// HTTPMethod returns the request method, which defaults to POST
func (r RemoteCall) HTTPMethod() string {
	if r.Method == "" {
		return http.MethodPost
	}
	return strings.ToUpper(r.Method)
}

// BodyEncoding returns the argument encoding, which defaults to query parameters
func (r RemoteCall) BodyEncoding() Encoding {
	if r.Encoding == "" {
		return EncodingQuery
	}
	return r.Encoding
}

// Validate checks the remote call is an absolute http(s) request
func (r RemoteCall) Validate() error {
	u, err := url.Parse(r.URL)
	if err != nil {
		return toolbridge.ErrBadParameter.Withf("invalid url %q: %v", r.URL, err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return toolbridge.ErrBadParameter.Withf("invalid url %q: scheme must be http or https", r.URL)
	} else if u.Host == "" {
		return toolbridge.ErrBadParameter.Withf("invalid url %q: missing host", r.URL)
	}

	switch r.HTTPMethod() {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		// Supported
	default:
		return toolbridge.ErrBadParameter.Withf("unsupported method %q", r.Method)
	}

	switch r.BodyEncoding() {
	case EncodingQuery:
		// Supported for all methods
	case EncodingJSON:
		if r.HTTPMethod() == http.MethodGet {
			return toolbridge.ErrBadParameter.With("json encoding cannot be used with GET")
		}
	default:
		return toolbridge.ErrBadParameter.Withf("unknown encoding %q", r.Encoding)
	}

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// DESCRIPTOR

// Validate checks the descriptor is internally consistent
func (d *Descriptor) Validate() error {
	if d == nil {
		return toolbridge.ErrBadParameter.With("descriptor cannot be nil")
	}
	if !types.IsIdentifier(d.Name) {
		return toolbridge.ErrBadParameter.Withf("invalid tool name %q", d.Name)
	}
	if !d.Result.Valid() {
		return toolbridge.ErrBadParameter.Withf("tool %q: unknown result type %q", d.Name, d.Result)
	}
	if err := d.Remote.Validate(); err != nil {
		return fmt.Errorf("tool %q: %w", d.Name, err)
	}

	// Parameter and remote names must be unique
	names := make(map[string]bool, len(d.Parameters))
	remotes := make(map[string]bool, len(d.Parameters))
	for _, p := range d.Parameters {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("tool %q: %w", d.Name, err)
		}
		if names[p.Name] {
			return toolbridge.ErrConflict.Withf("tool %q: duplicate parameter %q", d.Name, p.Name)
		} else {
			names[p.Name] = true
		}
		if remotes[p.RemoteName()] {
			return toolbridge.ErrConflict.Withf("tool %q: duplicate remote name %q", d.Name, p.RemoteName())
		} else {
			remotes[p.RemoteName()] = true
		}
	}

	// Return success
	return nil
}

// Schema returns the JSON schema for the tool arguments
func (d *Descriptor) Schema() (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(d.Parameters)),
	}
	for _, p := range d.Parameters {
		prop := &jsonschema.Schema{
			Type:        p.Type.String(),
			Description: p.Description,
			Format:      p.Format,
		}
		if p.Required {
			s.Required = append(s.Required, p.Name)
		} else if v, err := p.DefaultValue(); err != nil {
			return nil, err
		} else if data, err := json.Marshal(v); err != nil {
			return nil, err
		} else {
			prop.Default = data
		}
		s.Properties[p.Name] = prop
	}
	return s, nil
}
