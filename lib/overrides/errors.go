// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"errors"
	"strings"
)

var (
	ErrMissingName       = errors.New("missing name")
	ErrDuplicateMethod   = errors.New("duplicate method")
	ErrMalformedParam    = errors.New("malformed parameter")
	ErrOverlappingScope  = errors.New("overlapping version scope")
	ErrUnresolvedType    = errors.New("unresolved type")
	ErrCyclicAlias       = errors.New("cyclic alias")
	ErrMalformedDocument = errors.New("malformed document")
	ErrMalformedType     = errors.New("malformed type")
	ErrMalformedMethod   = errors.New("malformed method")
	ErrInvalidScope      = errors.New("invalid version scope")
	ErrDuplicateType     = errors.New("duplicate type")

	ErrChainRegistered = errors.New("chain already registered")
	ErrChainNotFound   = errors.New("chain not found")
	ErrEmptyChainName  = errors.New("chain name is empty")
)

// SchemaError is returned when a chain definition document fails validation.
// Err is always one of the sentinel errors of this package.
type SchemaError struct {
	Err    error
	Path   string
	Detail string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }

func schemaError(err error, path, detail string) *SchemaError {
	return &SchemaError{Err: err, Path: path, Detail: detail}
}

// Reason returns the sentinel name of a schema error, for example
// "duplicate method". It returns "unknown" for errors from other packages.
func Reason(err error) string {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Err.Error()
	}
	return "unknown"
}
