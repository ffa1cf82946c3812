package outsystems_test

import (
	"testing"

	// Packages
	outsystems "github.com/mutablelogic/go-toolbridge/pkg/outsystems"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// The sample manifest describes the same tools as the built-ins
func TestManifest(t *testing.T) {
	manifest, err := schema.LoadManifest("../../etc/tools.yaml")
	require.NoError(t, err)
	builtin, err := outsystems.NewTools("")
	require.NoError(t, err)
	require.Len(t, manifest.Tools, len(builtin))

	for i, want := range builtin {
		got := manifest.Tools[i]
		t.Run(want.Name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(want.Name, got.Name)
			assert.Equal(want.Description, got.Description)
			assert.Equal(want.Result, got.Result)
			assert.Equal(want.Remote.URL, got.Remote.URL)
			assert.Equal(want.Remote.HTTPMethod(), got.Remote.HTTPMethod())
			assert.Equal(want.Remote.BodyEncoding(), got.Remote.BodyEncoding())
			assert.Equal(want.Parameters, got.Parameters)
		})
	}
}
