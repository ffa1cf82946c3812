package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Manifest is a list of tool descriptors read from a YAML document
type Manifest struct {
	Tools []*Descriptor `json:"tools" yaml:"tools"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// LoadManifest reads and validates a manifest file
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	manifest, err := ReadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}

// ReadManifest decodes and validates a manifest. Unknown fields are
// rejected and an empty document yields an empty manifest.
func ReadManifest(r io.Reader) (*Manifest, error) {
	var manifest Manifest

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return nil, toolbridge.ErrBadParameter.Withf("manifest: %v", err)
	}

	// Validate each descriptor
	for i, tool := range manifest.Tools {
		if tool == nil {
			return nil, toolbridge.ErrBadParameter.Withf("manifest: empty tool at index %d", i)
		}
		if err := tool.Validate(); err != nil {
			return nil, err
		}
	}

	// Return success
	return &manifest, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Manifest) String() string {
	return types.Stringify(m)
}
