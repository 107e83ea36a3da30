package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("validation failure")
	ErrStorage    = errors.New("storage failure")
	ErrParse      = errors.New("parse failure")
	ErrDecryption = errors.New("decryption failure")
	ErrExport     = errors.New("export failure")
)

// Error carries one of the failure kinds above plus the operation, path and
// underlying cause. errors.Is matches both the kind and the cause.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	msg := strings.Join(parts, ": ")
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func validationError(op, msg string) error {
	return &Error{Kind: ErrValidation, Op: op, Err: errors.New(msg)}
}

func storageError(op, path string, err error) error {
	return &Error{Kind: ErrStorage, Op: op, Path: path, Err: err}
}
