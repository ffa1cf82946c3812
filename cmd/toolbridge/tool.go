package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
	table "github.com/mutablelogic/go-toolbridge/pkg/ui/table"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List available tools." group:"TOOL"`
	ToolInfo  ToolInfoCommand  `cmd:"" name:"tool" help:"Show the parameters of a tool." group:"TOOL"`
	CallTool  CallToolCommand  `cmd:"" name:"call" help:"Call a tool once and print the result." group:"TOOL"`
	Batch     BatchCommand     `cmd:"" name:"batch" help:"Call tools from JSON lines, concurrently." group:"TOOL"`
}

type ListToolsCommand struct {
	Format string `name:"format" enum:"table,markdown,json" default:"table" help:"Output format (table, markdown, json)"`
}

type ToolInfoCommand struct {
	Name   string `arg:"" name:"name" help:"Tool name"`
	Format string `name:"format" enum:"table,markdown,json" default:"json" help:"Output format (table, markdown, json)"`
}

type CallToolCommand struct {
	Name string   `arg:"" name:"name" help:"Tool name"`
	Args []string `arg:"" name:"args" optional:"" help:"Arguments as name=value"`
	JSON string   `name:"json" help:"Arguments as a JSON object, merged before name=value arguments"`
}

type BatchCommand struct {
	File     string `arg:"" name:"file" optional:"" default:"-" help:"File of JSON lines, or - for standard input"`
	Parallel int    `name:"parallel" default:"4" help:"Maximum number of concurrent calls"`
}

// batchCall is one line of batch input
type batchCall struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// batchResult is one line of batch output
type batchResult struct {
	Line   int    `json:"line"`
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// tools renders a list of tools as a table
type tools []schema.ToolMeta

// property is one parameter in an input schema
type property struct {
	name     string
	required bool
	schema   *jsonschema.Schema
}

// properties renders the parameters of a tool as a table
type properties []property

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// maxBatchLine is the longest line of batch input, in bytes
	maxBatchLine = 16 << 20
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	meta, err := ctx.ToolMeta()
	if err != nil {
		return err
	}
	if cmd.Format == "json" {
		fmt.Println(types.Stringify(meta))
		return nil
	}
	return table.Write(os.Stdout, tools(meta), table.Format(cmd.Format))
}

func (cmd *ToolInfoCommand) Run(ctx *Globals) error {
	meta, err := ctx.Tool(cmd.Name)
	if err != nil {
		return err
	}
	if cmd.Format == "json" {
		fmt.Println(meta)
		return nil
	}
	fmt.Printf("%s: %s\n", meta.Name, meta.Description)
	return table.Write(os.Stdout, newProperties(meta.InputSchema), table.Format(cmd.Format))
}

func (cmd *CallToolCommand) Run(ctx *Globals) error {
	args, err := cmd.arguments()
	if err != nil {
		return err
	}

	// Call the tool directly, or through the remote server
	var result any
	if ctx.Remote != "" {
		c, err := ctx.Client()
		if err != nil {
			return err
		}
		resp, err := c.CallTool(ctx.ctx, cmd.Name, args)
		if err != nil {
			return err
		}
		result = resp.Result
	} else {
		b, err := ctx.Bridge()
		if err != nil {
			return err
		}
		result, err = b.Invoke(ctx.ctx, cmd.Name, args)
		if err != nil {
			return err
		}
	}

	// Print the result
	if v, ok := result.(string); ok {
		fmt.Println(v)
	} else {
		fmt.Println(types.Stringify(result))
	}
	return nil
}

func (cmd *BatchCommand) Run(ctx *Globals) error {
	b, err := ctx.Bridge()
	if err != nil {
		return err
	}
	if cmd.Parallel < 1 {
		return toolbridge.ErrBadParameter.Withf("invalid parallel %d", cmd.Parallel)
	}

	// Read the calls
	var r io.Reader = os.Stdin
	if cmd.File != "-" {
		f, err := os.Open(cmd.File)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	calls, err := readBatch(r)
	if err != nil {
		return err
	}

	// Make the calls, at most cmd.Parallel at once. A failed call does
	// not cancel the others.
	results := make([]batchResult, len(calls))
	group, groupctx := errgroup.WithContext(ctx.ctx)
	group.SetLimit(cmd.Parallel)
	for i, call := range calls {
		group.Go(func() error {
			result, err := b.InvokeJSON(groupctx, call.Tool, call.Arguments)
			results[i] = batchResult{Line: call.line, Tool: call.Tool, Result: result}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	// Write the results in input order
	var failed int
	enc := json.NewEncoder(os.Stdout)
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d calls failed", failed, len(results))
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// arguments merges the JSON object and the name=value pairs. Values from
// the command line are strings, which are coerced to the parameter type.
func (cmd *CallToolCommand) arguments() (map[string]any, error) {
	args := make(map[string]any)
	if cmd.JSON != "" {
		dec := json.NewDecoder(strings.NewReader(cmd.JSON))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return nil, toolbridge.ErrBadParameter.Withf("--json: %v", err)
		}
	}
	for _, arg := range cmd.Args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, toolbridge.ErrBadParameter.Withf("expected name=value, got %q", arg)
		}
		args[name] = value
	}
	return args, nil
}

type numberedCall struct {
	batchCall
	line int
}

// readBatch reads one call per line, skipping blank lines. A line can be
// up to maxBatchLine bytes.
func readBatch(r io.Reader) ([]numberedCall, error) {
	var calls []numberedCall
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxBatchLine)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var call batchCall
		if err := json.Unmarshal([]byte(text), &call); err != nil {
			return nil, toolbridge.ErrBadParameter.Withf("line %d: %v", line, err)
		} else if call.Tool == "" {
			return nil, toolbridge.ErrBadParameter.Withf("line %d: missing tool", line)
		}
		calls = append(calls, numberedCall{batchCall: call, line: line})
	}
	return calls, scanner.Err()
}

///////////////////////////////////////////////////////////////////////////////
// TABLES

func (t tools) Header() []string {
	return []string{"Name", "Result", "Method", "URL", "Description"}
}

func (t tools) Len() int {
	return len(t)
}

func (t tools) Row(i int) []any {
	tool := t[i]
	return []any{
		table.Bold{Value: tool.Name},
		tool.Result,
		tool.Method,
		tool.URL,
		table.Truncate(tool.Description, 60),
	}
}

// newProperties returns the properties of an input schema, with the
// required properties first
func newProperties(s *jsonschema.Schema) properties {
	if s == nil {
		return nil
	}
	result := make(properties, 0, len(s.Properties))
	for _, name := range s.Required {
		if p, exists := s.Properties[name]; exists {
			result = append(result, property{name: name, required: true, schema: p})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(s.Properties)) {
		if !slices.Contains(s.Required, name) {
			result = append(result, property{name: name, schema: s.Properties[name]})
		}
	}
	return result
}

func (p properties) Header() []string {
	return []string{"Name", "Type", "Format", "Required", "Default", "Description"}
}

func (p properties) Len() int {
	return len(p)
}

func (p properties) Row(i int) []any {
	prop := p[i]
	if prop.schema == nil {
		return []any{table.Bold{Value: prop.name}}
	}
	return []any{
		table.Bold{Value: prop.name},
		prop.schema.Type,
		prop.schema.Format,
		prop.required,
		string(prop.schema.Default),
		table.Truncate(prop.schema.Description, 60),
	}
}
