package httphandler

import (
	"errors"
	"net/http"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	bridge "github.com/mutablelogic/go-toolbridge/pkg/bridge"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router is implemented by chi.Router
type Router interface {
	HandleFunc(pattern string, handler http.HandlerFunc)
	Handle(pattern string, handler http.Handler)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the REST handlers for the bridge. When mcp is
// not nil, the streamable MCP transport is mounted at /mcp.
func RegisterHandlers(b *bridge.Bridge, mcp http.Handler, router Router) {
	router.HandleFunc(HealthHandler())
	router.HandleFunc(ToolListHandler(b))
	router.HandleFunc(ToolHandler(b))
	if mcp != nil {
		router.Handle("/mcp", mcp)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a toolbridge error to an httpresponse.Err, preserving the
// original error message. Remote failures map to gateway errors and
// unknown error codes map to 500.
func httpErr(err error) error {
	var code toolbridge.Err
	if !errors.As(err, &code) {
		return httpresponse.ErrInternalError.With(err)
	}
	switch code {
	case toolbridge.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case toolbridge.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case toolbridge.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case toolbridge.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case toolbridge.ErrRemote, toolbridge.ErrResponseFormat:
		return httpresponse.Err(http.StatusBadGateway).With(err)
	case toolbridge.ErrTransport:
		return httpresponse.Err(http.StatusGatewayTimeout).With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
