/*
outsystems declares tools backed by the OutSystems MCPServer REST module.
Each tool is a descriptor which the bridge forwards as a single POST.
*/
package outsystems

import (
	"fmt"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// EndPoint is the default base URL of the REST module
	EndPoint = "https://nelsonandre.outsystemscloud.com/MCPServer/rest/MCP"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the tool descriptors for an endpoint. An empty
// endpoint uses the default.
func NewTools(endpoint string) ([]*schema.Descriptor, error) {
	if endpoint == "" {
		endpoint = EndPoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	// Create the descriptors
	tools := []*schema.Descriptor{
		SumNumbers(endpoint),
		CreateEmployee(endpoint),
	}
	for _, tool := range tools {
		if err := tool.Validate(); err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", endpoint, err)
		}
	}

	// Return success
	return tools, nil
}
