package bridge

import (
	"strings"

	// Packages
	toolbridge "github.com/mutablelogic/go-toolbridge"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// decode maps a response to a result. A non-2xx status is returned as an
// HTTPError with the raw body; otherwise the trimmed body is parsed
// according to the result type.
func decode(result schema.Type, status int, body string) (any, error) {
	if status < 200 || status > 299 {
		return nil, toolbridge.NewHTTPError(status, body)
	}
	return result.Parse(strings.TrimSpace(body))
}
