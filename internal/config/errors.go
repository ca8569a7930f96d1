package config

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingNotFound is returned by the typed getters for unset paths.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch is matched by *TypeError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidPath is returned by Set for empty path segments.
	ErrInvalidPath = errors.New("invalid setting path")
)

// Code classifies a validation failure.
type Code uint8

const (
	CodeType     Code = iota // wrong value type
	CodeRange                // number out of range
	CodeEnum                 // value outside the allowed set
	CodeSelector             // CSS selector that does not compile
)

// ValidationError reports one rejected setting. Load joins all of them.
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    Code
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s = %v: %s", e.Path, e.Value, e.Message)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// TypeError is returned by a typed getter when the stored value has a
// different type.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("config %s: want %s, have %s", e.Path, e.Expected, e.Actual)
}

// Is matches ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
