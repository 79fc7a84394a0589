package conversion

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/internal/conv"
	"github.com/xeipuuv/gojsonschema"
)

// Validate checks args against the request schema and returns an error
// listing every violation.
func (s *Schema) Validate(args map[string]interface{}) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	result, err := s.validator.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return errors.Wrap(err, "validate request")
	}
	if result.Valid() {
		return nil
	}
	messages := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		messages = append(messages, violation.String())
	}
	return errors.New(strings.Join(messages, "; "))
}

// Decode populates the dynamic request record from args and returns its
// map form. Undeclared keys and absent optional or defaulted fields are
// dropped.
func (s *Schema) Decode(args map[string]interface{}) (map[string]interface{}, error) {
	record := reflect.New(s.Type)
	if err := conv.Convert(args, record.Interface()); err != nil {
		return nil, errors.Wrap(err, "decode request")
	}
	ret, err := conv.ToMap(record.Interface())
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}
	return ret, nil
}
