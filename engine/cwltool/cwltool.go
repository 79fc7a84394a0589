package cwltool

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/cwl"
	"github.com/coala-info/coala/engine"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBinary is the reference runner executable.
const DefaultBinary = "cwltool"

// Engine runs descriptors with the cwltool command line runner.
type Engine struct {
	binary   string
	args     []string
	outDir   string
	validate bool
	logger   zerolog.Logger
}

type handle struct {
	source     string
	descriptor *cwl.Descriptor
}

func (h *handle) Source() string              { return h.source }
func (h *handle) Descriptor() *cwl.Descriptor { return h.descriptor }

// Make parses the descriptor and optionally validates it with cwltool.
func (e *Engine) Make(ctx context.Context, source string) (engine.Handle, error) {
	location, err := filepath.Abs(source)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %q", source)
	}
	descriptor, err := cwl.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	if e.validate {
		if _, err := e.run(ctx, cwl.Fragment(location), "--validate", location); err != nil {
			return nil, err
		}
	}
	return &handle{source: location, descriptor: descriptor}, nil
}

// Execute writes params into a job file, runs cwltool in a fresh output
// directory and decodes the output object it prints on stdout.
func (e *Engine) Execute(ctx context.Context, h engine.Handle, params map[string]interface{}, options *engine.ExecOptions) (map[string]interface{}, error) {
	if options == nil {
		options = &engine.ExecOptions{}
	}
	baseDir := options.OutDir
	if baseDir == "" {
		baseDir = e.outDir
	}
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	outDir := filepath.Join(baseDir, uuid.NewString())
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output dir %q", outDir)
	}

	jobFile, err := writeJob(params)
	if err != nil {
		return nil, err
	}
	defer os.Remove(jobFile)

	args := e.Args(options.Runner, outDir)
	args = append(args, h.Source(), jobFile)
	name := cwl.Fragment(h.Source())
	stdout, err := e.run(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	var ret map[string]interface{}
	if err := json.Unmarshal(stdout, &ret); err != nil {
		return nil, &engine.ExecutionError{Tool: name, Err: errors.Wrap(err, "decode output object")}
	}
	return ret, nil
}

// Args returns the runner flags placed before the tool and job file.
func (e *Engine) Args(runner engine.Runner, outDir string) []string {
	args := append([]string{}, e.args...)
	switch runner {
	case engine.RunnerPodman:
		args = append(args, "--podman")
	case engine.RunnerSingularity:
		args = append(args, "--singularity")
	case engine.RunnerUdocker:
		args = append(args, "--user-space-docker-cmd=udocker")
	case engine.RunnerNone:
		args = append(args, "--no-container")
	}
	if outDir != "" {
		args = append(args, "--outdir", outDir)
	}
	return args
}

func (e *Engine) run(ctx context.Context, tool string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	e.logger.Debug().Str("tool", tool).Strs("args", args).Msg("running cwltool")
	err := cmd.Run()
	elapsed := time.Since(started)
	if err != nil {
		ret := &engine.ExecutionError{Tool: tool, Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ret.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			ret.Err = ctxErr
		}
		e.logger.Warn().Str("tool", tool).Int("exitCode", ret.ExitCode).Dur("elapsed", elapsed).Msg("cwltool failed")
		return nil, ret
	}
	e.logger.Debug().Str("tool", tool).Dur("elapsed", elapsed).Msg("cwltool finished")
	return stdout.Bytes(), nil
}

func writeJob(params map[string]interface{}) (string, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "", errors.Wrap(err, "encode job")
	}
	file, err := os.CreateTemp("", "coala-job-*.json")
	if err != nil {
		return "", errors.Wrap(err, "create job file")
	}
	defer file.Close()
	if _, err := file.Write(data); err != nil {
		return "", errors.Wrap(err, "write job file")
	}
	return file.Name(), nil
}

// New creates a cwltool engine.
func New(opts ...Option) *Engine {
	ret := &Engine{binary: DefaultBinary, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
