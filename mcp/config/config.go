package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"
)

const (
	DefaultBinary      = "cwltool"
	DefaultConcurrency = 4
	DefaultLogLevel    = "info"
)

type Group[T any] struct {
	URL   string `yaml:"url,omitempty" json:"url,omitempty" short:"u" long:"url" description:"url"`
	Items []T    `yaml:"items,omitempty" json:"items,omitempty" short:"i" long:"items" description:"items" validate:"omitempty,dive"`
}

type Config struct {
	Server *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty" validate:"-"`
	Engine *Engine            `yaml:"engine,omitempty" json:"engine,omitempty"`
	Tools  *Tools             `yaml:"tools,omitempty" json:"tools,omitempty"`
	Log    *Log               `yaml:"log,omitempty" json:"log,omitempty"`
}

// Engine configures the cwltool execution engine.
type Engine struct {
	Binary string   `yaml:"binary,omitempty" json:"binary,omitempty"`
	Args   []string `yaml:"args,omitempty" json:"args,omitempty"`
	// Runner is the default container runner, overridable per call.
	Runner      string `yaml:"runner,omitempty" json:"runner,omitempty" validate:"omitempty,oneof=docker podman singularity udocker none"`
	OutDir      string `yaml:"outDir,omitempty" json:"outDir,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty" json:"concurrency,omitempty" validate:"gte=0"`
	Validate    bool   `yaml:"validate,omitempty" json:"validate,omitempty"`
}

// Tools lists descriptors registered at startup, inline or via URL.
type Tools struct {
	Group[*Tool] `yaml:",inline" json:",inline"`
	// Strict makes any registration failure abort startup.
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty"`
}

// Tool is one descriptor registration.
type Tool struct {
	Path        string `yaml:"path" json:"path" validate:"required"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	ReadOutputs *bool  `yaml:"readOutputs,omitempty" json:"readOutputs,omitempty"`
}

// ReadsOutputs reports whether File outputs are returned as content. It
// defaults to true.
func (t *Tool) ReadsOutputs() bool {
	return t.ReadOutputs == nil || *t.ReadOutputs
}

type Log struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `yaml:"pretty,omitempty" json:"pretty,omitempty"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	cfg.Init()
	return &cfg, nil
}

// Init fills unset sections with defaults.
func (c *Config) Init() {
	if c.Engine == nil {
		c.Engine = &Engine{}
	}
	if c.Engine.Binary == "" {
		c.Engine.Binary = DefaultBinary
	}
	if c.Engine.Concurrency == 0 {
		c.Engine.Concurrency = DefaultConcurrency
	}
	if c.Tools == nil {
		c.Tools = &Tools{}
	}
	if c.Log == nil {
		c.Log = &Log{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ToolItems returns tools declared inline, or downloaded from Tools.URL when
// none are inlined. The remote document is either a list of tools or a
// mapping with an items key.
func (c *Config) ToolItems(ctx context.Context) ([]*Tool, error) {
	if c.Tools == nil {
		return nil, nil
	}
	if len(c.Tools.Items) > 0 {
		return c.Tools.Items, nil
	}
	if c.Tools.URL == "" {
		return nil, nil
	}
	data, err := afs.New().DownloadWithURL(ctx, c.Tools.URL)
	if err != nil {
		return nil, fmt.Errorf("download tools config %q: %w", c.Tools.URL, err)
	}
	var out []*Tool
	if err := yaml.Unmarshal(data, &out); err != nil {
		var group Group[*Tool]
		if gErr := yaml.Unmarshal(data, &group); gErr != nil {
			return nil, fmt.Errorf("parse tools config %q: %w", c.Tools.URL, err)
		}
		out = group.Items
	}
	for i, item := range out {
		if item == nil {
			return nil, fmt.Errorf("tools config %q: entry %d is empty", c.Tools.URL, i)
		}
		if err := validator.New().Struct(item); err != nil {
			return nil, fmt.Errorf("tools config %q: entry %d: %w", c.Tools.URL, i, err)
		}
	}
	return out, nil
}
