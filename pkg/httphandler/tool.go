package httphandler

import (
	"encoding/json"
	"net/http"

	// Packages
	chi "github.com/go-chi/chi/v5"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	bridge "github.com/mutablelogic/go-toolbridge/pkg/bridge"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /tool
func ToolListHandler(b *bridge.Bridge) (string, http.HandlerFunc) {
	return "/tool", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			var req schema.ListToolRequest
			if err := httprequest.Query(r.URL.Query(), &req); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			resp, err := listTools(b, req)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
		default:
			_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}
}

// Path: /tool/{name}
func ToolHandler(b *bridge.Bridge) (string, http.HandlerFunc) {
	return "/tool/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		tool := b.Lookup(name)
		if tool == nil {
			_ = httpresponse.Error(w, httpErr(toolbridge.ErrNotFound.Withf("tool %q not found", name)))
			return
		}
		switch r.Method {
		case http.MethodGet:
			resp, err := schema.NewToolMeta(tool)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
		case http.MethodPost:
			var args json.RawMessage
			if err := httprequest.Read(r, &args); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			result, err := b.InvokeJSON(r.Context(), tool.Name, args)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.CallToolResponse{
				Tool:   tool.Name,
				Result: result,
			})
		default:
			_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func listTools(b *bridge.Bridge, req schema.ListToolRequest) (*schema.ListToolResponse, error) {
	tools := b.Tools()
	resp := &schema.ListToolResponse{
		Count:  uint(len(tools)),
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	// Paginate. Clamp in uint before converting to int.
	start, end := len(tools), len(tools)
	if req.Offset < uint(len(tools)) {
		start = int(req.Offset)
	}
	if req.Limit != nil && *req.Limit < uint(end-start) {
		end = start + int(*req.Limit)
	}

	// Collect the metadata
	resp.Body = make([]schema.ToolMeta, 0, end-start)
	for _, tool := range tools[start:end] {
		meta, err := schema.NewToolMeta(tool)
		if err != nil {
			return nil, err
		}
		resp.Body = append(resp.Body, meta)
	}

	// Return success
	return resp, nil
}
