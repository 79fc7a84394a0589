package tool

import (
	"context"

	"github.com/coala-info/coala/engine"
)

// legacyDataKey wraps requests as {"data": [{...}]} in older clients.
const legacyDataKey = "data"

// Adapter is the per tool callable exposed to the calling protocol.
type Adapter struct {
	record   *Record
	registry *Registry
}

// Record returns the adapted tool record.
func (a *Adapter) Record() *Record {
	return a.record
}

// Call decodes protocol arguments, validates them against the synthesized
// schema and executes the tool.
func (a *Adapter) Call(ctx context.Context, arguments map[string]interface{}, opts ...engine.ExecOption) (*Result, error) {
	request := a.unwrap(arguments)
	if err := a.record.Schema.Validate(request); err != nil {
		return nil, &InvalidInputError{Source: a.record.Name, Reason: err.Error()}
	}
	decoded, err := a.record.Schema.Decode(request)
	if err != nil {
		return nil, &InvalidInputError{Source: a.record.Name, Reason: err.Error()}
	}
	return a.Execute(ctx, decoded, opts...)
}

// unwrap accepts the legacy data wrapper and drops null values of fields that
// are optional or defaulted.
func (a *Adapter) unwrap(arguments map[string]interface{}) map[string]interface{} {
	if len(arguments) == 1 {
		if items, ok := arguments[legacyDataKey].([]interface{}); ok && len(items) == 1 && !a.declares(legacyDataKey) {
			if inner, ok := items[0].(map[string]interface{}); ok {
				arguments = inner
			}
		}
	}
	ret := make(map[string]interface{}, len(arguments))
	for _, field := range a.record.Inputs {
		value, ok := arguments[field.Name]
		if !ok || value == nil && !field.Required() {
			continue
		}
		ret[field.Name] = value
	}
	return ret
}

func (a *Adapter) declares(name string) bool {
	for _, field := range a.record.Inputs {
		if field.Name == name {
			return true
		}
	}
	return false
}

// Execute coerces request values, runs the engine and reads the outputs.
func (a *Adapter) Execute(ctx context.Context, request map[string]interface{}, opts ...engine.ExecOption) (result *Result, err error) {
	registry := a.registry
	options := engine.NewExecOptions(registry.execDefaults, opts...)
	ctx, done := registry.observer.Start(ctx, a.record.Name, string(options.Runner))
	defer func() { done(err) }()

	params := registry.coercer.CoerceAll(request, a.record.Inputs)
	registry.logger.Debug().Str("tool", a.record.Name).Interface("params", params).Msg("executing tool")
	raw, err := registry.engine.Execute(ctx, a.record.Handle, params, options)
	if err != nil {
		return nil, err
	}
	outputs := registry.reader.Read(raw, a.record.Outputs, a.record.ReadOutputs)
	return newResult(a.record, outputs), nil
}
