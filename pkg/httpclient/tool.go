package httpclient

import (
	"context"
	"encoding/json"
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

// callToolResponse decodes numbers in the result as json.Number
type callToolResponse struct {
	schema.CallToolResponse
}

var _ client.Unmarshaler = (*callToolResponse)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns the tools registered with the server.
// Use WithLimit and WithOffset to paginate results.
func (c *Client) ListTools(ctx context.Context, opts ...Opt) (*schema.ListToolResponse, error) {
	q := url.Values{}
	for _, opt := range opts {
		opt(q)
	}

	// Create request
	req := client.NewRequest()
	reqOpts := []client.RequestOpt{client.OptPath("tool")}
	if len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.ListToolResponse
	if err := c.DoWithContext(ctx, req, &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// GetTool returns the metadata for a tool
func (c *Client) GetTool(ctx context.Context, name string) (*schema.ToolMeta, error) {
	if name == "" {
		return nil, toolbridge.ErrBadParameter.With("tool name cannot be empty")
	}

	// Perform request
	var response schema.ToolMeta
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("tool", name)); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// CallTool invokes a tool with a JSON object of arguments. Numbers in the
// result are returned as json.Number, so large integers keep their precision.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*schema.CallToolResponse, error) {
	if name == "" {
		return nil, toolbridge.ErrBadParameter.With("tool name cannot be empty")
	}
	if args == nil {
		args = map[string]any{}
	}

	// Create request
	req, err := client.NewJSONRequest(args)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response callToolResponse
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("tool", name)); err != nil {
		return nil, err
	}

	// Return the response
	return &response.CallToolResponse, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *callToolResponse) Unmarshal(_ http.Header, body io.Reader) error {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	return dec.Decode(&r.CallToolResponse)
}
