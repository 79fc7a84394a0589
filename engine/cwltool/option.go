package cwltool

import "github.com/rs/zerolog"

// Option customises the engine.
type Option func(e *Engine)

// WithBinary overrides the cwltool executable.
func WithBinary(binary string) Option {
	return func(e *Engine) {
		if binary != "" {
			e.binary = binary
		}
	}
}

// WithArgs adds extra arguments passed to every cwltool run.
func WithArgs(args ...string) Option {
	return func(e *Engine) {
		e.args = append(e.args, args...)
	}
}

// WithOutDir sets the default base directory for tool outputs.
func WithOutDir(dir string) Option {
	return func(e *Engine) {
		e.outDir = dir
	}
}

// WithValidation makes Make run cwltool --validate.
func WithValidation(validate bool) Option {
	return func(e *Engine) {
		e.validate = validate
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}
