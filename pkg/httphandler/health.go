package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	version "github.com/mutablelogic/go-toolbridge/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /health
func HealthHandler() (string, http.HandlerFunc) {
	return "/health", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), HealthResponse{
				Status:  "ok",
				Version: version.Version(),
			})
		default:
			_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}
}
