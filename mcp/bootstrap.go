package mcp

import (
	"context"
	"fmt"

	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/engine/cwltool"
	"github.com/coala-info/coala/mcp/config"
	"github.com/coala-info/coala/mcp/tool"
	"github.com/sourcegraph/conc/pool"
)

// init is the main bootstrap routine invoked by New once all options have
// been applied. It orchestrates the individual preparation steps.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}

	runner, err := s.defaultRunner()
	if err != nil {
		return err
	}
	s.initEngine()
	s.registry = tool.NewRegistry(s.engine,
		tool.WithLogger(s.logger),
		tool.WithObserver(s.observer),
		tool.WithExecDefaults(engine.ExecOptions{Runner: runner}),
	)
	s.toolset = tool.NewToolset(s.registry)

	if err := s.registerTools(ctx); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}
	return nil
}

// initDefaults applies fall-back values for optional dependencies that were
// not supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	s.config.Init()
}

func (s *Service) defaultRunner() (engine.Runner, error) {
	if s.runner != nil {
		return engine.ParseRunner(string(*s.runner))
	}
	return engine.ParseRunner(s.config.Engine.Runner)
}

func (s *Service) initEngine() {
	if s.engine != nil {
		return
	}
	cfg := s.config.Engine
	s.engine = cwltool.New(
		cwltool.WithBinary(cfg.Binary),
		cwltool.WithArgs(cfg.Args...),
		cwltool.WithOutDir(cfg.OutDir),
		cwltool.WithValidation(cfg.Validate),
		cwltool.WithLogger(s.logger),
	)
}

// registerTools parses the configured descriptors concurrently and adds them
// in configuration order so that the last entry of a duplicated name wins.
// Failures are logged and skipped unless the tool list is strict.
func (s *Service) registerTools(ctx context.Context) error {
	items, err := s.config.ToolItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	records := make([]*tool.Record, len(items))
	strict := s.config.Tools.Strict
	p := pool.New().WithMaxGoroutines(s.config.Engine.Concurrency).WithContext(ctx)
	for i, item := range items {
		p.Go(func(ctx context.Context) error {
			record, err := s.registry.Build(ctx, item.Path, item.Name, item.ReadsOutputs())
			if err != nil {
				if strict {
					return fmt.Errorf("register %v: %w", item.Path, err)
				}
				s.logger.Error().Err(err).Str("source", item.Path).Msg("skipping tool")
				return nil
			}
			records[i] = record
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}
	for _, record := range records {
		if record != nil {
			s.registry.Add(record)
		}
	}
	return nil
}
