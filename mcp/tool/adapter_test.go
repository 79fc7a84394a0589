package tool

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/cwl"
	"github.com/coala-info/coala/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeqAdapter(t *testing.T, fake *fakeEngine, opts ...Option) *Adapter {
	t.Helper()
	dir := t.TempDir()
	source := writeFile(t, dir, "seqstat.cwl", seqTool)
	registry := NewRegistry(fake, opts...)
	_, err := registry.Register(context.Background(), source, "", true)
	require.NoError(t, err)
	adapter, err := registry.Adapter("seqstat")
	require.NoError(t, err)
	return adapter
}

func TestAdapter_Call(t *testing.T) {
	var testCases = []struct {
		description string
		arguments   map[string]interface{}
		expect      map[string]interface{}
		expectErr   string
	}{
		{
			description: "required only",
			arguments:   map[string]interface{}{"seq": "missing.fa"},
			expect:      map[string]interface{}{"seq": "missing.fa"},
		},
		{
			description: "optional value",
			arguments:   map[string]interface{}{"seq": "missing.fa", "min_len": 5},
			expect:      map[string]interface{}{"seq": "missing.fa", "min_len": float64(5)},
		},
		{
			description: "null optional dropped",
			arguments:   map[string]interface{}{"seq": "missing.fa", "min_len": nil},
			expect:      map[string]interface{}{"seq": "missing.fa"},
		},
		{
			description: "undeclared key dropped",
			arguments:   map[string]interface{}{"seq": "missing.fa", "verbose": true},
			expect:      map[string]interface{}{"seq": "missing.fa"},
		},
		{
			description: "legacy data wrapper",
			arguments:   map[string]interface{}{"data": []interface{}{map[string]interface{}{"seq": "missing.fa"}}},
			expect:      map[string]interface{}{"seq": "missing.fa"},
		},
		{
			description: "missing required",
			arguments:   map[string]interface{}{"min_len": 5},
			expectErr:   "seq",
		},
		{
			description: "wrong type",
			arguments:   map[string]interface{}{"seq": "missing.fa", "min_len": "five"},
			expectErr:   "min_len",
		},
		{
			description: "required null",
			arguments:   map[string]interface{}{"seq": nil},
			expectErr:   "seq",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			fake := &fakeEngine{}
			adapter := newSeqAdapter(t, fake)
			result, err := adapter.Call(context.Background(), testCase.arguments)
			if testCase.expectErr != "" {
				var invalid *InvalidInputError
				require.True(t, errors.As(err, &invalid), testCase.description)
				assert.Contains(t, err.Error(), testCase.expectErr, testCase.description)
				assert.Empty(t, fake.calls, testCase.description)
				return
			}
			require.NoError(t, err, testCase.description)
			assert.EqualValues(t, "seqstat", result.ToolName, testCase.description)
			assert.EqualValues(t, testCase.expect, fake.lastCall().params, testCase.description)
		})
	}
}

func TestAdapter_CallEngineError(t *testing.T) {
	failure := &engine.ExecutionError{Tool: "seqstat", ExitCode: 2, Stderr: "no such file"}
	fake := &fakeEngine{execute: func(map[string]interface{}) (map[string]interface{}, error) {
		return nil, failure
	}}
	adapter := newSeqAdapter(t, fake)
	_, err := adapter.Call(context.Background(), map[string]interface{}{"seq": "missing.fa"})
	assert.Same(t, failure, err)
}

func TestAdapter_CallRunner(t *testing.T) {
	fake := &fakeEngine{}
	adapter := newSeqAdapter(t, fake, WithExecDefaults(engine.ExecOptions{Runner: engine.RunnerDocker}))
	_, err := adapter.Call(context.Background(), map[string]interface{}{"seq": "missing.fa"}, engine.WithRunner(engine.RunnerUdocker))
	require.NoError(t, err)
	assert.EqualValues(t, engine.RunnerUdocker, fake.lastCall().options.Runner)
	assert.EqualValues(t, "seqstat", adapter.Record().Name)
}

func TestAdapter_CallMissingOutput(t *testing.T) {
	fake := &fakeEngine{execute: func(map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"log": "done"}, nil
	}}
	adapter := newSeqAdapter(t, fake)
	result, err := adapter.Call(context.Background(), map[string]interface{}{"seq": "missing.fa"})
	require.NoError(t, err)
	assert.EqualValues(t, map[string]interface{}{"result.txt": nil, "log": "done"}, result.Outputs)
}

const catTool = `cwlVersion: v1.2
class: CommandLineTool
id: catter
baseCommand: cat
stdout: out.txt
inputs:
  seq:
    type: stdin
  threads:
    type: int
    default: 4
outputs:
  result:
    type: stdout
`

func TestAdapter_CallDefaultedInput(t *testing.T) {
	fake := &fakeEngine{}
	registry := NewRegistry(fake)
	source := writeFile(t, t.TempDir(), "catter.cwl", catTool)
	_, err := registry.Register(context.Background(), source, "", true)
	require.NoError(t, err)
	adapter, err := registry.Adapter("catter")
	require.NoError(t, err)

	_, err = adapter.Call(context.Background(), map[string]interface{}{"seq": "missing.fa"})
	require.NoError(t, err)
	assert.NotContains(t, fake.lastCall().params, "threads")

	_, err = adapter.Call(context.Background(), map[string]interface{}{"seq": "missing.fa", "threads": nil})
	require.NoError(t, err)
	assert.NotContains(t, fake.lastCall().params, "threads")

	_, err = adapter.Call(context.Background(), map[string]interface{}{"seq": "missing.fa", "threads": 8})
	require.NoError(t, err)
	assert.EqualValues(t, float64(8), fake.lastCall().params["threads"])
}

func TestAdapter_CallStreamFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	t.Chdir(dir)
	source := writeFile(t, dir, "catter.cwl", catTool)
	writeFile(t, dir, "reads.fa", ">seq1\n")
	abs, err := filepath.Abs("reads.fa")
	require.NoError(t, err)
	out := writeFile(t, t.TempDir(), "out.txt", "ACGT\n")

	fake := &fakeEngine{execute: func(map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"result": map[string]interface{}{"class": "File", "location": "file://" + out}}, nil
	}}
	registry := NewRegistry(fake)
	record, err := registry.Register(ctx, source, "", true)
	require.NoError(t, err)
	assert.EqualValues(t, cwl.File, record.Inputs[0].Type.Kind)
	assert.EqualValues(t, cwl.File, record.Outputs[0].Type.Kind)

	adapter, err := registry.Adapter("catter")
	require.NoError(t, err)
	result, err := adapter.Call(ctx, map[string]interface{}{"seq": "reads.fa"})
	require.NoError(t, err)
	assert.EqualValues(t, map[string]interface{}{"class": "File", "location": "file://" + abs}, fake.lastCall().params["seq"])
	assert.EqualValues(t, "ACGT", result.Outputs["result"])
}
