package mcp

import (
	"context"

	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/mcp/config"
	"github.com/coala-info/coala/mcp/tool"
	"github.com/rs/zerolog"
)

// Service bundles configuration, the execution engine and the tool registry
// required by the Server adapter. All heavy lifting during instantiation lives
// in bootstrap.go to keep this file focused on the public surface.
type Service struct {
	config   *config.Config
	engine   engine.Engine
	runner   *engine.Runner
	observer *tool.Observer
	logger   zerolog.Logger

	registry *tool.Registry
	toolset  *tool.Toolset
}

// Config returns the effective configuration instance passed to the service at
// construction time. Callers must treat the returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Logger returns the service logger.
func (s *Service) Logger() zerolog.Logger { return s.logger }

// Registry returns the tool registry.
func (s *Service) Registry() *tool.Registry { return s.registry }

// Toolset returns registered tools as a Fluxor action service.
func (s *Service) Toolset() *tool.Toolset { return s.toolset }

// ToolNames returns all registered tool names in sorted order.
func (s *Service) ToolNames() []string {
	records := s.registry.Records()
	names := make([]string, len(records))
	for i, record := range records {
		names[i] = record.Name
	}
	return names
}

// Option modifies a service instance before it is initialised. Users can pass
// an arbitrary number of options to New.
type Option func(*Service)

// WithConfig sets a custom configuration instance. When omitted a zero value
// config is assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithEngine overrides the cwltool engine built from the configuration.
func WithEngine(eng engine.Engine) Option {
	return func(s *Service) {
		s.engine = eng
	}
}

// WithRunner overrides the configured default container runner.
func WithRunner(runner engine.Runner) Option {
	return func(s *Service) {
		s.runner = &runner
	}
}

// WithLogger sets the logger passed to the engine and the registry.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithObserver sets the invocation observer.
func WithObserver(observer *tool.Observer) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

// New constructs a new service instance and registers the configured tools.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// NewWithConfig is New with the configuration passed explicitly. Additional
// options may be supplied after the configuration instance.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	return New(ctx, append([]Option{WithConfig(cfg)}, opts...)...)
}
