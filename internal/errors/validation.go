package errors

import (
	"fmt"
	"strings"
)

// FieldError describes a single failed constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed field of a request. It blocks the
// operation entirely; nothing is persisted when one is returned.
type ValidationError struct {
	Fields []FieldError
}

func (ve *ValidationError) Error() string {
	msgs := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (ve *ValidationError) Add(field, message string) {
	ve.Fields = append(ve.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error only if at least one field failed, so validators
// can build up errors unconditionally and return v.OrNil() at the end.
func (ve *ValidationError) OrNil() *ValidationError {
	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}
