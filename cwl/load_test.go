package cwl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const md5sumTool = `#!/usr/bin/env cwl-runner
cwlVersion: v1.0
class: CommandLineTool
id: Md5sum
label: Simple md5sum tool
doc:
  - Computes the md5sum of a file.
  - Writes the checksum to md5sum.txt.
requirements:
  - class: DockerRequirement
    dockerPull: quay.io/briandoconnor/dockstore-tool-md5sum:1.0.4
  - class: InlineJavascriptRequirement
hints:
  - class: DockerRequirement
    dockerPull: ubuntu:latest
inputs:
  - id: input_file
    type: File
    doc: input file
    inputBinding:
      position: 1
  - id: "#md5sum/label"
    type: string?
outputs:
  - id: output_file
    type: File
    outputBinding:
      glob: md5sum.txt
    doc: A text file that contains a single line that is the md5sum of the input file.
baseCommand: [/bin/my_md5sum]
`

func TestParse(t *testing.T) {
	descriptor, err := Parse([]byte(md5sumTool))
	require.NoError(t, err)

	assert.EqualValues(t, "Md5sum", descriptor.ID)
	assert.EqualValues(t, "CommandLineTool", descriptor.Class)
	assert.EqualValues(t, "v1.0", descriptor.Version)
	assert.EqualValues(t, "Simple md5sum tool", descriptor.Label)
	assert.EqualValues(t, "Computes the md5sum of a file.\nWrites the checksum to md5sum.txt.", descriptor.Doc)
	assert.EqualValues(t, "quay.io/briandoconnor/dockstore-tool-md5sum:1.0.4", descriptor.DockerImage())
	assert.NotZero(t, descriptor.Digest)

	inputs := Fields(descriptor.Inputs)
	require.Len(t, inputs, 2)
	assert.EqualValues(t, Field{Name: "input_file", Type: FieldType{Kind: File, Declared: "File"}, Doc: "input file"}, inputs[0])
	assert.EqualValues(t, Field{Name: "label", Type: FieldType{Kind: String, Optional: true, Declared: "string"}}, inputs[1])

	outputs := Fields(descriptor.Outputs)
	require.Len(t, outputs, 1)
	assert.EqualValues(t, "output_file", outputs[0].Name)
	assert.EqualValues(t, File, outputs[0].Type.Kind)
}

func TestParse_MapForms(t *testing.T) {
	doc := `
cwlVersion: v1.2
class: CommandLineTool
hints:
  DockerRequirement:
    dockerPull: biocontainers/samtools:1.9
inputs:
  threads: int
  reads:
    type: File[]
    label: sequencing reads
  mode:
    type: enum
    symbols: [fast, slow]
  region:
    type: array
    items: string
outputs:
  stats:
    type: File
`
	descriptor, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.EqualValues(t, "biocontainers/samtools:1.9", descriptor.DockerImage())

	inputs := Fields(descriptor.Inputs)
	require.Len(t, inputs, 4)
	var names []string
	for _, input := range inputs {
		names = append(names, input.Name)
	}
	assert.EqualValues(t, []string{"threads", "reads", "mode", "region"}, names)
	byName := map[string]Field{}
	for _, input := range inputs {
		byName[input.Name] = input
	}
	assert.EqualValues(t, FieldType{Kind: Int, Declared: "int"}, byName["threads"].Type)
	assert.EqualValues(t, FieldType{Kind: File, Array: true, Declared: "File"}, byName["reads"].Type)
	assert.EqualValues(t, "sequencing reads", byName["reads"].Doc)
	assert.EqualValues(t, []string{"fast", "slow"}, byName["mode"].Type.Symbols)
	assert.EqualValues(t, FieldType{Kind: String, Array: true, Declared: "string"}, byName["region"].Type)
}

func TestParse_StreamTypes(t *testing.T) {
	doc := `
cwlVersion: v1.2
class: CommandLineTool
baseCommand: seqkit
stdout: out.txt
inputs:
  seq:
    type: stdin
  extra: stdin?
outputs:
  result:
    type: stdout
  log: stderr
`
	descriptor, err := Parse([]byte(doc))
	require.NoError(t, err)

	inputs := Fields(descriptor.Inputs)
	require.Len(t, inputs, 2)
	assert.EqualValues(t, FieldType{Kind: File, Declared: "File"}, inputs[0].Type)
	assert.EqualValues(t, FieldType{Kind: File, Optional: true, Declared: "File"}, inputs[1].Type)

	outputs := Fields(descriptor.Outputs)
	require.Len(t, outputs, 2)
	assert.EqualValues(t, "result", outputs[0].Name)
	assert.EqualValues(t, FieldType{Kind: File, Declared: "File"}, outputs[0].Type)
	assert.EqualValues(t, "log", outputs[1].Name)
	assert.EqualValues(t, FieldType{Kind: File, Declared: "File"}, outputs[1].Type)
}

func TestParse_GraphMapOrder(t *testing.T) {
	doc := `
cwlVersion: v1.2
$graph:
  - class: CommandLineTool
    id: "#main"
    inputs:
      zeta: string
      alpha: int
    outputs: {}
`
	descriptor, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, descriptor.Inputs, 2)
	assert.EqualValues(t, "zeta", descriptor.Inputs[0].ID)
	assert.EqualValues(t, "alpha", descriptor.Inputs[1].ID)
}

func TestParse_Graph(t *testing.T) {
	doc := `
cwlVersion: v1.2
$graph:
  - class: CommandLineTool
    id: "#helper"
    inputs: []
    outputs: []
  - class: CommandLineTool
    id: "#main"
    label: packed
    inputs:
      - id: "#main/name"
        type: string
    outputs: []
`
	descriptor, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.EqualValues(t, "#main", descriptor.ID)
	assert.EqualValues(t, "packed", descriptor.Label)
	assert.EqualValues(t, "v1.2", descriptor.Version)
	require.Len(t, descriptor.Inputs, 1)
	assert.EqualValues(t, "name", descriptor.Inputs[0].ID)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		description string
		doc         string
	}{
		{description: "empty", doc: ""},
		{description: "invalid yaml", doc: "inputs: [unclosed"},
		{description: "entry without id", doc: "inputs:\n  - type: File\n"},
		{description: "scalar inputs", doc: "inputs: 12\n"},
		{description: "empty graph", doc: "$graph: []\n"},
	}
	for _, testCase := range testCases {
		_, err := Parse([]byte(testCase.doc))
		assert.Error(t, err, testCase.description)
	}
}

func TestLoad(t *testing.T) {
	location := filepath.Join(t.TempDir(), "md5sum.cwl")
	require.NoError(t, os.WriteFile(location, []byte(md5sumTool), 0o644))

	descriptor, err := Load(context.Background(), location)
	require.NoError(t, err)
	assert.EqualValues(t, "Md5sum", descriptor.ID)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.cwl"))
	assert.Error(t, err)
}

func TestFragment(t *testing.T) {
	testCases := map[string]string{
		"Md5sum":                      "Md5sum",
		"#main":                       "main",
		"#main/input_file":            "input_file",
		"file:///tools/tool.cwl#bwa":  "bwa",
		"https://example.org/tools/x": "x",
	}
	for id, expect := range testCases {
		assert.EqualValues(t, expect, Fragment(id), id)
	}
}
