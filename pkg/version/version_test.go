package version_test

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-toolbridge/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_version_001(t *testing.T) {
	assert := assert.New(t)
	assert.NotEmpty(version.Version())
	assert.True(strings.HasPrefix(version.UserAgent(), version.Name+"/"))
}

func Test_version_002(t *testing.T) {
	assert := assert.New(t)
	tag := version.GitTag
	t.Cleanup(func() { version.GitTag = tag })

	version.GitTag = "v1.2.3"
	assert.Equal("v1.2.3", version.Version())
	assert.Equal("toolbridge/v1.2.3", version.UserAgent())
}

func Test_version_003(t *testing.T) {
	assert := assert.New(t)
	data, err := version.JSON("toolbridge")
	assert.NoError(err)

	var meta map[string]any
	assert.NoError(json.Unmarshal(data, &meta))
	assert.Equal("toolbridge", meta["name"])
	assert.Equal(runtime.Version(), meta["compiler"])
	assert.Equal(version.Version(), meta["version"])
}
