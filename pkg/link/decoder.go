// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"time"

	"github.com/Thermoquad/skyhook/pkg/wire"
)

// Decoder states
const (
	stateIdle = iota
	stateStart2
	stateKind
	stateLength
	stateBody
	stateCRC1
	stateCRC2
)

// Frame is one CRC-checked frame taken off the stream. The body has not been
// decoded; see Dispatcher.
type Frame struct {
	Header    wire.Header
	Body      []byte
	CRC       uint16
	Timestamp time.Time
}

// Bytes returns header+body, the unit pkg/wire decodes.
func (f *Frame) Bytes() []byte {
	out := make([]byte, 0, wire.HeaderSize+len(f.Body))
	out = append(out, byte(f.Header.Kind), f.Header.Length)
	return append(out, f.Body...)
}

// Decoder implements the link framing state machine
type Decoder struct {
	state     int
	buffer    []byte
	bodyLen   int
	crc       uint16
	rawBuffer []byte // Accumulate raw bytes including framing
	done      bool
	now       func() time.Time
}

// NewDecoder creates a new frame decoder
func NewDecoder() *Decoder {
	return &Decoder{
		state:     stateIdle,
		buffer:    make([]byte, 0, wire.HeaderSize+wire.MaxBodyLength),
		rawBuffer: make([]byte, 0, MaxFrameSize*2),
		now:       time.Now,
	}
}

// Reset resets the decoder state to idle and drops the raw buffer
func (d *Decoder) Reset() {
	d.restart()
	d.rawBuffer = d.rawBuffer[:0]
	d.done = false
}

func (d *Decoder) restart() {
	d.state = stateIdle
	d.buffer = d.buffer[:0]
	d.bodyLen = 0
	d.crc = 0
}

// RawBytes returns the bytes of the frame in progress, or of the last frame,
// from its first start byte. Noise between frames is not kept.
func (d *Decoder) RawBytes() []byte {
	return d.rawBuffer
}

// DecodeByte processes a single byte through the decoder state machine
// Returns a completed frame, or nil if the frame is incomplete
// Returns an error if the frame fails its CRC check
func (d *Decoder) DecodeByte(b byte) (*Frame, error) {
	if d.done {
		d.rawBuffer = d.rawBuffer[:0]
		d.done = false
	}

	switch d.state {
	case stateIdle:
		if b == StartByte1 {
			d.rawBuffer = append(d.rawBuffer[:0], b)
			d.state = stateStart2
		}
		return nil, nil

	case stateStart2:
		switch b {
		case StartByte2:
			d.rawBuffer = append(d.rawBuffer, b)
			d.state = stateKind
		case StartByte1:
			// 0x0A 0x0A 0x55 still starts a frame
			d.rawBuffer = append(d.rawBuffer[:0], b)
		default:
			d.restart()
			d.rawBuffer = d.rawBuffer[:0]
		}
		return nil, nil
	}

	d.rawBuffer = append(d.rawBuffer, b)

	switch d.state {
	case stateKind:
		d.buffer = append(d.buffer, b)
		d.state = stateLength
		return nil, nil

	case stateLength:
		d.buffer = append(d.buffer, b)
		d.bodyLen = int(b)
		if d.bodyLen == 0 {
			d.state = stateCRC1
		} else {
			d.state = stateBody
		}
		return nil, nil

	case stateBody:
		d.buffer = append(d.buffer, b)
		if len(d.buffer) >= wire.HeaderSize+d.bodyLen {
			d.state = stateCRC1
		}
		return nil, nil

	case stateCRC1:
		d.crc = uint16(b)
		d.state = stateCRC2
		return nil, nil

	case stateCRC2:
		d.crc |= uint16(b) << 8
		return d.finish()
	}

	d.restart()
	return nil, nil
}

// finish validates the CRC and hands out the completed frame
func (d *Decoder) finish() (*Frame, error) {
	defer func() {
		d.restart()
		d.done = true
	}()

	calculated := CalculateCRC(d.buffer)
	if calculated != d.crc {
		return nil, &CRCError{Expected: calculated, Actual: d.crc}
	}

	body := make([]byte, d.bodyLen)
	copy(body, d.buffer[wire.HeaderSize:])
	return &Frame{
		Header:    wire.Header{Kind: wire.MessageKind(d.buffer[0]), Length: d.buffer[1]},
		Body:      body,
		CRC:       d.crc,
		Timestamp: d.now(),
	}, nil
}

// Decode feeds every byte of data through the decoder and returns the frames
// and CRC errors it produced, in stream order
func (d *Decoder) Decode(data []byte) ([]*Frame, []error) {
	var frames []*Frame
	var errs []error
	for _, b := range data {
		f, err := d.DecodeByte(b)
		if err != nil {
			errs = append(errs, err)
		}
		if f != nil {
			frames = append(frames, f)
		}
	}
	return frames, errs
}
