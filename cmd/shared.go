package cmd

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/mcp"
	mcpconfig "github.com/coala-info/coala/mcp/config"
	"github.com/rs/zerolog"
)

var (
	rootOptions *Options

	svcOnce sync.Once
	svcInst *mcp.Service
	svcErr  error
)

// setOptions remembers the global flags so that the service singleton can be
// created lazily by whichever sub-command is executed.
func setOptions(opts *Options) { rootOptions = opts }

// serviceSingleton initialises an mcp.Service only once and reuses the instance
// across sub-commands within the same CLI invocation.
func serviceSingleton() (*mcp.Service, error) {
	svcOnce.Do(func() {
		ctx := context.Background()
		opts := rootOptions
		if opts == nil {
			opts = &Options{}
		}
		cfg, err := opts.loadConfig(ctx)
		if err != nil {
			svcErr = err
			return
		}
		// Pretty-print the effective config if the user asked for it via env for debug.
		if debug := os.Getenv("COALA_DEBUG_CONFIG"); debug == "1" {
			_ = json.NewEncoder(os.Stderr).Encode(cfg)
		}
		logger, err := newLogger(cfg.Log)
		if err != nil {
			svcErr = err
			return
		}
		svcOpts := []mcp.Option{mcp.WithConfig(cfg), mcp.WithLogger(logger)}
		if opts.Runner != "" {
			svcOpts = append(svcOpts, mcp.WithRunner(engine.Runner(opts.Runner)))
		}
		svcInst, svcErr = mcp.New(ctx, svcOpts...)
	})
	return svcInst, svcErr
}

// loadConfig reads the configuration file, if any, and merges the global
// flags into it. Tools listed by URL are resolved so that -t/--tool entries
// extend rather than replace them.
func (o *Options) loadConfig(ctx context.Context) (*mcpconfig.Config, error) {
	cfg := &mcpconfig.Config{}
	if o.Config != "" {
		var err error
		if cfg, err = mcpconfig.Load(o.Config); err != nil {
			return nil, err
		}
	}
	cfg.Init()
	items, err := cfg.ToolItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, value := range o.Tools {
		path, name := parseToolFlag(value)
		if path == "" {
			return nil, errors.Newf("invalid --tool value %q", value)
		}
		items = append(items, &mcpconfig.Tool{Path: path, Name: name})
	}
	if o.NoRead {
		for _, item := range items {
			read := false
			item.ReadOutputs = &read
		}
	}
	cfg.Tools.Items = items
	cfg.Tools.URL = ""
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	return cfg, nil
}

// newLogger builds the root logger. It writes to stderr so that stdout stays
// clean for command output.
func newLogger(cfg *mcpconfig.Log) (zerolog.Logger, error) {
	if cfg == nil {
		cfg = &mcpconfig.Log{Level: mcpconfig.DefaultLogLevel}
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "parse log level %q", cfg.Level)
	}
	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
