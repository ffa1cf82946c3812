package httphandler

import (
	"log/slog"
	"net/http"

	// Packages
	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	otel "github.com/mutablelogic/go-server/pkg/otel"
	bridge "github.com/mutablelogic/go-toolbridge/pkg/bridge"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRouter returns a router serving the REST handlers and, when mcp is
// not nil, the streamable MCP transport. Each request is traced and logged
// once it completes.
func NewRouter(name string, b *bridge.Bridge, mcp http.Handler, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(otel.HTTPHandler(name, logger))
	router.Use(middleware.Recoverer)
	RegisterHandlers(b, mcp, router)
	return router
}
