package engine

import "github.com/cockroachdb/errors"

// Runner selects the container runtime used for one execution.
type Runner string

const (
	// RunnerDefault leaves the choice to the engine.
	RunnerDefault     Runner = ""
	RunnerDocker      Runner = "docker"
	RunnerPodman      Runner = "podman"
	RunnerSingularity Runner = "singularity"
	RunnerUdocker     Runner = "udocker"
	// RunnerNone runs the tool without a container.
	RunnerNone Runner = "none"
)

// ParseRunner validates a runner name.
func ParseRunner(name string) (Runner, error) {
	switch runner := Runner(name); runner {
	case RunnerDefault, RunnerDocker, RunnerPodman, RunnerSingularity, RunnerUdocker, RunnerNone:
		return runner, nil
	}
	return "", errors.Newf("unsupported container runner %q", name)
}

// ExecOptions carries per call execution settings.
type ExecOptions struct {
	Runner Runner
	// OutDir overrides the base directory for tool outputs.
	OutDir string
}

// ExecOption modifies ExecOptions.
type ExecOption func(*ExecOptions)

// WithRunner selects the container runner for a single call.
func WithRunner(runner Runner) ExecOption {
	return func(o *ExecOptions) {
		o.Runner = runner
	}
}

// WithOutDir sets the output base directory for a single call.
func WithOutDir(dir string) ExecOption {
	return func(o *ExecOptions) {
		o.OutDir = dir
	}
}

// NewExecOptions applies opts over defaults.
func NewExecOptions(defaults ExecOptions, opts ...ExecOption) *ExecOptions {
	ret := defaults
	for _, opt := range opts {
		opt(&ret)
	}
	return &ret
}
