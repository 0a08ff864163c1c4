// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Capture file format
const (
	CaptureMagic   = "skyhook-capture"
	CaptureVersion = 1
)

// CaptureHeader is the first CBOR item of a capture file
type CaptureHeader struct {
	Magic   string `cbor:"1,keyasint"`
	Version int    `cbor:"2,keyasint"`
	Session string `cbor:"3,keyasint"`
	Started int64  `cbor:"4,keyasint"` // unix microseconds
	Source  string `cbor:"5,keyasint,omitempty"`
}

// StartTime returns the capture start time
func (h CaptureHeader) StartTime() time.Time {
	return time.UnixMicro(h.Started)
}

// CaptureRecord is one captured frame: header+body without framing or CRC
type CaptureRecord struct {
	At    int64  `cbor:"1,keyasint"` // unix microseconds
	Frame []byte `cbor:"2,keyasint"`
}

// Time returns the time the frame was received
func (r CaptureRecord) Time() time.Time {
	return time.UnixMicro(r.At)
}

// CaptureWriter appends frames to a capture file
type CaptureWriter struct {
	enc     *cbor.Encoder
	session uuid.UUID
	count   int
}

// NewCaptureWriter writes the capture header and returns a writer for records.
// source names where the frames came from (a port or URL).
func NewCaptureWriter(w io.Writer, source string) (*CaptureWriter, error) {
	session, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to create session id: %w", err)
	}
	enc := cbor.NewEncoder(w)
	header := CaptureHeader{
		Magic:   CaptureMagic,
		Version: CaptureVersion,
		Session: session.String(),
		Started: time.Now().UnixMicro(),
		Source:  source,
	}
	if err := enc.Encode(header); err != nil {
		return nil, fmt.Errorf("failed to write capture header: %w", err)
	}
	return &CaptureWriter{enc: enc, session: session}, nil
}

// Session returns the capture's session id
func (c *CaptureWriter) Session() uuid.UUID {
	return c.session
}

// Count returns the number of records written
func (c *CaptureWriter) Count() int {
	return c.count
}

// Write appends one header+body frame received at ts
func (c *CaptureWriter) Write(ts time.Time, frame []byte) error {
	if err := c.enc.Encode(CaptureRecord{At: ts.UnixMicro(), Frame: frame}); err != nil {
		return fmt.Errorf("failed to write capture record: %w", err)
	}
	c.count++
	return nil
}

// CaptureReader reads records back from a capture file
type CaptureReader struct {
	dec     *cbor.Decoder
	header  CaptureHeader
	session uuid.UUID
}

// NewCaptureReader reads and checks the capture header
func NewCaptureReader(r io.Reader) (*CaptureReader, error) {
	dec := cbor.NewDecoder(r)
	var header CaptureHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFormat, err)
	}
	if header.Magic != CaptureMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCaptureFormat, header.Magic)
	}
	if header.Version != CaptureVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCaptureFormat, header.Version)
	}
	session, err := uuid.Parse(header.Session)
	if err != nil {
		return nil, fmt.Errorf("%w: bad session id: %v", ErrCaptureFormat, err)
	}
	return &CaptureReader{dec: dec, header: header, session: session}, nil
}

// Header returns the capture header
func (c *CaptureReader) Header() CaptureHeader {
	return c.header
}

// Session returns the capture's session id
func (c *CaptureReader) Session() uuid.UUID {
	return c.session
}

// Next returns the next record, or io.EOF at the end of the file
func (c *CaptureReader) Next() (CaptureRecord, error) {
	var rec CaptureRecord
	if err := c.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return CaptureRecord{}, io.EOF
		}
		return CaptureRecord{}, fmt.Errorf("failed to read capture record: %w", err)
	}
	return rec, nil
}
