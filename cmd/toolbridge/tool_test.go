package main

import (
	"encoding/json"
	"strings"
	"testing"

	// Packages
	toolbridge "github.com/mutablelogic/go-toolbridge"
	outsystems "github.com/mutablelogic/go-toolbridge/pkg/outsystems"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
	table "github.com/mutablelogic/go-toolbridge/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_arguments_001(t *testing.T) {
	assert := assert.New(t)
	cmd := CallToolCommand{
		Name: "create_employee",
		Args: []string{"employee_name=Alice", "address=1 Main St, Lisbon", "nif="},
		JSON: `{"nif": 123, "date_of_birth": "2000-01-01"}`,
	}
	args, err := cmd.arguments()
	assert.NoError(err)
	assert.Equal("Alice", args["employee_name"])
	assert.Equal("1 Main St, Lisbon", args["address"])
	assert.Equal("", args["nif"])
	assert.Equal("2000-01-01", args["date_of_birth"])
}

func Test_arguments_002(t *testing.T) {
	assert := assert.New(t)
	for _, cmd := range []CallToolCommand{
		{Args: []string{"number1"}},
		{Args: []string{"=1"}},
		{JSON: `[1,2]`},
	} {
		_, err := cmd.arguments()
		assert.ErrorIs(err, toolbridge.ErrBadParameter)
	}
}

func Test_batch_001(t *testing.T) {
	assert := assert.New(t)
	calls, err := readBatch(strings.NewReader(`{"tool":"sum_numbers","arguments":{"number1":1,"number2":2}}

{"tool":"create_employee","arguments":{"employee_name":"Alice"}}
`))
	require.NoError(t, err)
	assert.Len(calls, 2)
	assert.Equal("sum_numbers", calls[0].Tool)
	assert.Equal(1, calls[0].line)
	assert.JSONEq(`{"employee_name":"Alice"}`, string(calls[1].Arguments))
	assert.Equal(3, calls[1].line)
}

func Test_batch_002(t *testing.T) {
	assert := assert.New(t)
	_, err := readBatch(strings.NewReader(`{"arguments":{}}`))
	assert.ErrorIs(err, toolbridge.ErrBadParameter)
	_, err = readBatch(strings.NewReader(`not json`))
	assert.ErrorIs(err, toolbridge.ErrBadParameter)
}

func Test_batch_003(t *testing.T) {
	assert := assert.New(t)

	// Lines longer than the default scanner buffer are read whole
	address := strings.Repeat("a", 256<<10)
	input := `{"tool":"create_employee","arguments":{"employee_name":"Alice","address":"` + address + `"}}` + "\n" +
		`{"tool":"sum_numbers","arguments":{"number1":1,"number2":2}}` + "\n"
	calls, err := readBatch(strings.NewReader(input))
	require.NoError(t, err)
	if assert.Len(calls, 2) {
		var args map[string]string
		require.NoError(t, json.Unmarshal(calls[0].Arguments, &args))
		assert.Equal(address, args["address"])
		assert.Equal("sum_numbers", calls[1].Tool)
		assert.Equal(2, calls[1].line)
	}
}

func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	tool := outsystems.CreateEmployee("http://localhost/MCP")
	s, err := tool.Schema()
	require.NoError(t, err)

	props := newProperties(s)
	if assert.Len(props, 4) {
		assert.Equal("employee_name", props[0].name)
		assert.Equal("address", props[1].name)
		assert.Equal("date_of_birth", props[2].name)
		assert.Equal("nif", props[3].name)
	}

	result := table.Markdown(props)
	assert.Contains(result, "| **employee_name** | string | - | yes | - | Full name of the employee |")
	assert.Contains(result, "| **nif** | integer | - | - | 0 | Tax identification number |")
	assert.Contains(result, `| **address** | string | - | - | "" | Postal address |`)
	assert.Contains(result, "| **date_of_birth** | string | date | - |")
	assert.Nil(newProperties(nil))
}

func Test_table_002(t *testing.T) {
	assert := assert.New(t)
	meta, err := schema.NewToolMeta(outsystems.SumNumbers("http://localhost/MCP"))
	require.NoError(t, err)
	result := table.Markdown(tools{meta})
	assert.Contains(result, "| **sum_numbers** | integer | POST | http://localhost/MCP/SumNumbers |")
}

func Test_globals_001(t *testing.T) {
	assert := assert.New(t)
	g := Globals{NoBuiltin: true}
	_, err := g.Tools()
	assert.ErrorIs(err, toolbridge.ErrBadParameter)

	g = Globals{Endpoint: "http://localhost:9999/rest/MCP/"}
	tools, err := g.Tools()
	require.NoError(t, err)
	assert.Len(tools, 2)
	for _, tool := range tools {
		assert.True(strings.HasPrefix(tool.Remote.URL, "http://localhost:9999/rest/MCP/"))
		assert.False(strings.Contains(tool.Remote.URL, "MCP//"))
	}
}
