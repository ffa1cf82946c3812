package schema

import (
	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolMeta describes a registered tool
type ToolMeta struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Result      Type               `json:"result"`
	Method      string             `json:"method"`
	URL         string             `json:"url"`
	Encoding    Encoding           `json:"encoding"`
	InputSchema *jsonschema.Schema `json:"input_schema,omitempty"`
}

// ListToolRequest represents a request to list tools
type ListToolRequest struct {
	Limit  *uint `json:"limit,omitempty" help:"Maximum number of tools to return"`
	Offset uint  `json:"offset,omitempty" help:"Offset for pagination"`
}

// ListToolResponse represents a response containing a list of tools
type ListToolResponse struct {
	Count  uint       `json:"count"`
	Offset uint       `json:"offset,omitzero"`
	Limit  *uint      `json:"limit,omitzero"`
	Body   []ToolMeta `json:"body,omitzero"`
}

// CallToolResponse is the result of invoking a tool
type CallToolResponse struct {
	Tool   string `json:"tool"`
	Result any    `json:"result"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolMeta returns the metadata for a descriptor, including its input schema
func NewToolMeta(d *Descriptor) (ToolMeta, error) {
	s, err := d.Schema()
	if err != nil {
		return ToolMeta{}, err
	}
	return ToolMeta{
		Name:        d.Name,
		Description: d.Description,
		Result:      d.Result,
		Method:      d.Remote.HTTPMethod(),
		URL:         d.Remote.URL,
		Encoding:    d.Remote.BodyEncoding(),
		InputSchema: s,
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ToolMeta) String() string {
	return types.Stringify(r)
}

func (r ListToolRequest) String() string {
	return types.Stringify(r)
}

func (r ListToolResponse) String() string {
	return types.Stringify(r)
}

func (r CallToolResponse) String() string {
	return types.Stringify(r)
}
