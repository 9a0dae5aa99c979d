package enrich

import (
	"fmt"

	"github.com/vitalvas/oasamples/errors"
)

// MissingPropertyError reports a required top-level property that the
// document does not have. The document is left untouched.
type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("document is missing required property %q", e.Property)
}

// InvalidFieldError reports an operation field with a shape samples cannot
// be merged into.
type InvalidFieldError struct {
	Path   string
	Method string
	Field  string
	Err    error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s %s: invalid %s: %v", e.Method, e.Path, e.Field, e.Err)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

func missingProperty(name string) error {
	err := errors.Mark(&MissingPropertyError{Property: name}, errors.ErrStructure)
	return errors.WithHintf(err, "the input must be an OpenAPI document with a %q object", name)
}

func invalidField(path, method, field string, cause error) error {
	return errors.Mark(&InvalidFieldError{Path: path, Method: method, Field: field, Err: cause}, errors.ErrStructure)
}
