package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown manifest or container format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Relinking Errors.

	// ErrFormat indicates the container could not be decoded or encoded.
	ErrFormat = errors.New("format error")

	// ErrValidation indicates the rewritten document failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrIO indicates a read or write failure at the container boundary.
	ErrIO = errors.New("i/o error")

	// ErrCancelled indicates the run was cancelled before its commit point.
	ErrCancelled = errors.New("cancelled")
)

// FormatErrorKind says which part of the container transform failed.
type FormatErrorKind string

// Format error kinds.
const (
	FormatDecompress  FormatErrorKind = "decompress failed"
	FormatEncoding    FormatErrorKind = "invalid text encoding"
	FormatParseFailed FormatErrorKind = "parse failed"
	FormatSerialize   FormatErrorKind = "serialize failed"
)

// FormatError is returned by container codecs. It matches ErrFormat.
type FormatError struct {
	Kind   FormatErrorKind
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ValidationError collects every problem found in a document.
// It matches ErrValidation.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StageError attributes an error to the pipeline stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
