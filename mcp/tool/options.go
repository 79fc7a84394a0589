package tool

import (
	"github.com/coala-info/coala/engine"
	"github.com/rs/zerolog"
)

// Option customises a Registry.
type Option func(r *Registry)

// WithLogger sets the logger shared by the registry components.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithObserver sets the invocation observer.
func WithObserver(observer *Observer) Option {
	return func(r *Registry) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// WithExecDefaults sets execution options applied to every invocation
// unless overridden per call.
func WithExecDefaults(defaults engine.ExecOptions) Option {
	return func(r *Registry) {
		r.execDefaults = defaults
	}
}
