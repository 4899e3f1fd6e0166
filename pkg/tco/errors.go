package tco

import (
	"errors"
	"fmt"
)

// Sentinel kinds for errors.Is matching against the typed errors below.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrArithmetic    = errors.New("arithmetic error")
)

// ValidationError reports an input value outside its allowed domain, such as
// a non-positive useful life or an unrecognized category.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigurationError reports a required parameter absent from the project
// configuration.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing required parameter %s", e.Key)
	}
	return fmt.Sprintf("parameter %s: %s", e.Key, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ArithmeticError reports a computation that would divide by zero.
type ArithmeticError struct {
	Operation string
	Reason    string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

// Is makes errors.Is(err, ErrArithmetic) succeed.
func (e *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

func invalid(field string, value interface{}, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
