package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentials covers both unknown email and wrong password so that
// login responses do not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidRefresh is returned for unknown, rotated-out, or expired refresh
// tokens.
var ErrInvalidRefresh = errors.New("invalid refresh token")

// FieldError is one per-field validation message.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationError aggregates the field errors of one create/update request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Msg))
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Msg: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
