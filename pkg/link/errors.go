// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"errors"
	"fmt"
)

var (
	ErrCRCMismatch   = errors.New("link: CRC mismatch")
	ErrCaptureFormat = errors.New("link: not a capture file")
)

// CRCError reports a frame whose trailing checksum does not match its contents.
type CRCError struct {
	Expected uint16
	Actual   uint16
}

// Error implements the error interface
func (e *CRCError) Error() string {
	return fmt.Sprintf("CRC mismatch: expected 0x%04X, got 0x%04X", e.Expected, e.Actual)
}

// Unwrap lets callers match ErrCRCMismatch with errors.Is
func (e *CRCError) Unwrap() error {
	return ErrCRCMismatch
}
