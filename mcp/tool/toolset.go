package tool

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/internal/conv"
	"github.com/viant/fluxor/model/types"
)

// ToolsetName is the action service name of registered tools.
const ToolsetName = "coala"

var resultType = reflect.TypeOf(&Result{})

// Toolset implements types.Service over a Registry, one method per
// registered tool. Methods reflect the registry at call time.
type Toolset struct {
	registry *Registry
	opts     []engine.ExecOption
}

// NewToolset creates a toolset; opts apply to every execution.
func NewToolset(registry *Registry, opts ...engine.ExecOption) *Toolset {
	return &Toolset{registry: registry, opts: opts}
}

func (t *Toolset) Name() string {
	return ToolsetName
}

func (t *Toolset) Methods() types.Signatures {
	records := t.registry.Records()
	ret := make(types.Signatures, 0, len(records))
	for _, record := range records {
		ret = append(ret, types.Signature{
			Name:        record.Name,
			Description: record.Description(),
			Input:       record.Schema.Type,
			Output:      resultType,
		})
	}
	return ret
}

func (t *Toolset) Method(name string) (types.Executable, error) {
	adapter, err := t.registry.Adapter(name)
	if err != nil {
		return nil, types.NewMethodNotFoundError(name)
	}
	exec := func(ctx context.Context, input, output interface{}) error {
		args, err := conv.ToMap(input)
		if err != nil {
			return err
		}
		result, err := adapter.Call(ctx, args, t.opts...)
		if err != nil {
			return err
		}
		if output == nil {
			return nil
		}
		switch v := output.(type) {
		case **Result:
			*v = result
		case *Result:
			*v = *result
		case *string:
			data, err := json.Marshal(result)
			if err != nil {
				return err
			}
			*v = string(data)
		case *map[string]interface{}:
			*v = result.Map()
		default:
			return conv.Convert(result.Map(), v)
		}
		return nil
	}
	return exec, nil
}
