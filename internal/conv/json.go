package conv

import (
	"encoding/json"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Convert copies in into the value outPtr points to. Assignable values are
// set directly, anything else goes through a JSON round-trip. A nil input
// leaves the destination untouched.
func Convert(in any, outPtr any) error {
	if outPtr == nil {
		return errors.New("conv.Convert: outPtr cannot be nil")
	}
	v := reflect.ValueOf(outPtr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.Newf("conv.Convert: outPtr must be a non-nil pointer, got %T", outPtr)
	}
	if in == nil {
		return nil
	}

	inVal := reflect.ValueOf(in)
	if inVal.Type().AssignableTo(v.Elem().Type()) {
		v.Elem().Set(inVal)
		return nil
	}

	data, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "conv.Convert: marshal %T", in)
	}
	if err := json.Unmarshal(data, outPtr); err != nil {
		return errors.Wrapf(err, "conv.Convert: unmarshal into %T", outPtr)
	}
	return nil
}

// ToMap converts a struct or map into a generic map. Tool adapters use it to
// turn decoded request records back into engine parameters.
func ToMap(in any) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := Convert(in, &m); err != nil {
		return nil, err
	}
	return m, nil
}
