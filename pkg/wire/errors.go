// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

import (
	"errors"
	"fmt"
)

var (
	ErrSizeMismatch     = errors.New("wire: size mismatch")
	ErrUnknownEnumValue = errors.New("wire: unknown enum value")
	ErrValueOutOfRange  = errors.New("wire: value out of range")
	ErrBodyTooLarge     = errors.New("wire: body too large")
)

// DecodeError describes why a buffer could not be decoded.
// Err is one of the sentinel errors above.
type DecodeError struct {
	Kind     MessageKind
	Field    string
	Expected int
	Actual   int
	Value    byte
	Err      error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	name := "header"
	if e.Kind != 0 {
		name = FormatKind(e.Kind)
	}
	switch {
	case errors.Is(e.Err, ErrSizeMismatch):
		return fmt.Sprintf("%s: %s: expected %d bytes, got %d", name, e.Err, e.Expected, e.Actual)
	case errors.Is(e.Err, ErrUnknownEnumValue), errors.Is(e.Err, ErrValueOutOfRange):
		return fmt.Sprintf("%s: %s: %s=0x%02X", name, e.Err, e.Field, e.Value)
	default:
		return fmt.Sprintf("%s: %v", name, e.Err)
	}
}

// Unwrap returns the sentinel error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RangeError is returned by constructors and setters that reject a value
// before it can reach an encoder.
// Reason, when set, replaces the bounds in the message.
type RangeError struct {
	Field  string
	Value  int
	Min    int
	Max    int
	Reason string
}

// Error implements the error interface
func (e *RangeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s=%d: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s=%d outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap lets callers match ErrValueOutOfRange with errors.Is
func (e *RangeError) Unwrap() error {
	return ErrValueOutOfRange
}

func sizeError(kind MessageKind, expected, actual int) error {
	return &DecodeError{Kind: kind, Expected: expected, Actual: actual, Err: ErrSizeMismatch}
}

func enumError(kind MessageKind, field string, v byte) error {
	return &DecodeError{Kind: kind, Field: field, Value: v, Err: ErrUnknownEnumValue}
}
