package service

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrMissingIdentity = errors.New("missing user id")
)

// Validation error codes.
const (
	CodeInvalidBody  = "invalid_body"
	CodeMissingField = "missing_field"
	CodeInvalidField = "invalid_field"
)

// ValidationError is a client-side precondition failure detected before
// the store is touched.
type ValidationError struct {
	Code   string
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	return e.Msg + ": " + strings.Join(e.Fields, ", ")
}

func missingFields(names []string) error {
	return &ValidationError{Code: CodeMissingField, Fields: names, Msg: "Campo obrigatório ausente"}
}

func invalidField(name, msg string) error {
	return &ValidationError{Code: CodeInvalidField, Fields: []string{name}, Msg: msg}
}

// InvalidBody reports a request body that is not a JSON object.
func InvalidBody(msg string) error {
	return &ValidationError{Code: CodeInvalidBody, Msg: msg}
}
