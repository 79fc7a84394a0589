package tool

import (
	"context"
	"io/fs"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/cwl"
	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/internal/syncmap"
	"github.com/coala-info/coala/mcp/tool/conversion"
	"github.com/rs/zerolog"
)

// Registry holds registered tools by name.
type Registry struct {
	engine       engine.Engine
	records      *syncmap.Map[*Record]
	coercer      *Coercer
	reader       *OutputReader
	observer     *Observer
	execDefaults engine.ExecOptions
	logger       zerolog.Logger
}

// Register builds a record for the descriptor at source and adds it. A
// record registered earlier under the same name is replaced.
func (r *Registry) Register(ctx context.Context, source, name string, readOutputs bool) (*Record, error) {
	record, err := r.Build(ctx, source, name, readOutputs)
	if err != nil {
		return nil, err
	}
	r.Add(record)
	return record, nil
}

// Build parses the descriptor and synthesizes the tool schema without
// registering it.
func (r *Registry) Build(ctx context.Context, source, name string, readOutputs bool) (*Record, error) {
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Source: source}
		}
		return nil, &LoadError{Source: source, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &InvalidInputError{Source: source, Reason: "path is not a file"}
	}

	handle, err := r.engine.Make(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	descriptor := handle.Descriptor()
	record := &Record{
		Name:        ResolveName(name, descriptor.ID, source),
		Source:      source,
		Handle:      handle,
		Label:       descriptor.Label,
		Doc:         descriptor.Doc,
		Inputs:      cwl.Fields(descriptor.Inputs),
		Outputs:     cwl.Fields(descriptor.Outputs),
		Image:       descriptor.DockerImage(),
		ReadOutputs: readOutputs,
		Digest:      descriptor.Digest,
	}
	meta := conversion.Metadata{Name: record.Name, Label: record.Label, Doc: record.Doc, Image: record.Image}
	if record.Schema, err = conversion.Synthesize(meta, record.Inputs, record.Outputs); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return record, nil
}

// Add stores record under its name, replacing any previous entry.
func (r *Registry) Add(record *Record) {
	if previous, ok := r.records.Lookup(record.Name); ok {
		r.logger.Warn().Str("tool", record.Name).Str("previous", previous.Source).Str("source", record.Source).
			Bool("changed", previous.Digest != record.Digest).Msg("replacing registered tool")
	}
	r.records.Set(record.Name, record)
	r.logger.Info().Str("tool", record.Name).Str("source", record.Source).Str("image", record.Image).
		Int("inputs", len(record.Inputs)).Int("outputs", len(record.Outputs)).Msg("registered tool")
}

// Lookup returns the record registered under name.
func (r *Registry) Lookup(name string) (*Record, bool) {
	return r.records.Lookup(name)
}

// Records returns all records sorted by name.
func (r *Registry) Records() []*Record {
	ret := r.records.List()
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Adapter returns the callable adapter of a registered tool.
func (r *Registry) Adapter(name string) (*Adapter, error) {
	record, ok := r.records.Lookup(name)
	if !ok {
		return nil, &NotFoundError{Tool: name}
	}
	return &Adapter{record: record, registry: r}, nil
}

// Invoke runs a registered tool with request values. Engine errors are
// returned unchanged.
func (r *Registry) Invoke(ctx context.Context, name string, request map[string]interface{}, opts ...engine.ExecOption) (*Result, error) {
	adapter, err := r.Adapter(name)
	if err != nil {
		return nil, err
	}
	return adapter.Execute(ctx, request, opts...)
}

// NewRegistry creates a registry executing tools with eng.
func NewRegistry(eng engine.Engine, opts ...Option) *Registry {
	ret := &Registry{
		engine:  eng,
		records: syncmap.New[*Record](),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.observer == nil {
		ret.observer = nopObserver()
	}
	ret.coercer = NewCoercer(ret.logger)
	ret.reader = NewOutputReader(ret.logger)
	return ret
}
