package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	location := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	return location
}

func TestLoad(t *testing.T) {
	location := writeConfig(t, "coala.yaml", `
engine:
  runner: podman
  outDir: /tmp/coala
tools:
  strict: true
  items:
    - path: tools/md5sum.cwl
      name: md5sum
    - path: tools/seqstat.cwl
      readOutputs: false
log:
  pretty: true
`)
	cfg, err := Load(location)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.EqualValues(t, DefaultBinary, cfg.Engine.Binary)
	assert.EqualValues(t, DefaultConcurrency, cfg.Engine.Concurrency)
	assert.EqualValues(t, "podman", cfg.Engine.Runner)
	assert.EqualValues(t, DefaultLogLevel, cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.True(t, cfg.Tools.Strict)

	items, err := cfg.ToolItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, "md5sum", items[0].Name)
	assert.True(t, items[0].ReadsOutputs())
	assert.False(t, items[1].ReadsOutputs())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "broken.yaml", "engine: ["))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		config      string
		expectErr   bool
	}{
		{description: "empty", config: "{}"},
		{description: "runner", config: "engine: {runner: singularity}"},
		{description: "unknown runner", config: "engine: {runner: lxc}", expectErr: true},
		{description: "negative concurrency", config: "engine: {concurrency: -1}", expectErr: true},
		{description: "tool without path", config: "tools: {items: [{name: x}]}", expectErr: true},
		{description: "log level", config: "log: {level: verbose}", expectErr: true},
	}
	for _, testCase := range testCases {
		cfg, err := Load(writeConfig(t, "coala.yaml", testCase.config))
		require.NoError(t, err, testCase.description)
		err = cfg.Validate()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}

func TestConfig_ToolItemsURL(t *testing.T) {
	ctx := context.Background()
	list := writeConfig(t, "tools.yaml", "- path: a.cwl\n- path: b.cwl\n  name: bee\n")
	cfg := &Config{Tools: &Tools{Group: Group[*Tool]{URL: list}}}
	items, err := cfg.ToolItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, "bee", items[1].Name)

	grouped := writeConfig(t, "tools.yaml", "items:\n  - path: c.cwl\n")
	cfg.Tools.URL = grouped
	items, err = cfg.ToolItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, "c.cwl", items[0].Path)

	invalid := writeConfig(t, "tools.yaml", "- name: nameless\n")
	cfg.Tools.URL = invalid
	_, err = cfg.ToolItems(ctx)
	assert.Error(t, err)

	cfg.Tools.URL = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.ToolItems(ctx)
	assert.Error(t, err)

	items, err = (&Config{}).ToolItems(ctx)
	assert.NoError(t, err)
	assert.Empty(t, items)
}
