package engine

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRunner(t *testing.T) {
	for _, name := range []string{"", "docker", "podman", "singularity", "udocker", "none"} {
		runner, err := ParseRunner(name)
		require.NoError(t, err, name)
		assert.EqualValues(t, name, runner)
	}
	_, err := ParseRunner("kubernetes")
	assert.Error(t, err)
}

func TestNewExecOptions(t *testing.T) {
	defaults := ExecOptions{Runner: RunnerDocker, OutDir: "/tmp/out"}
	options := NewExecOptions(defaults, WithRunner(RunnerPodman))
	assert.EqualValues(t, RunnerPodman, options.Runner)
	assert.EqualValues(t, "/tmp/out", options.OutDir)
	assert.EqualValues(t, RunnerDocker, defaults.Runner)

	options = NewExecOptions(defaults, WithOutDir("/data"))
	assert.EqualValues(t, RunnerDocker, options.Runner)
	assert.EqualValues(t, "/data", options.OutDir)
}

func TestExecutionError(t *testing.T) {
	err := &ExecutionError{
		Tool:     "md5sum",
		ExitCode: 2,
		Stderr:   "line1\nline2\nline3\nline4\nline5\nline6\n",
		Err:      io.ErrUnexpectedEOF,
	}
	assert.EqualValues(t, "execute md5sum: exit code 2: unexpected EOF\nline2\nline3\nline4\nline5\nline6", err.Error())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	var target *ExecutionError
	wrapped := errors.Wrap(err, "invoke")
	require.True(t, errors.As(wrapped, &target))
	assert.EqualValues(t, 2, target.ExitCode)
}
