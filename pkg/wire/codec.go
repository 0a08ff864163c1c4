// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

import "encoding/binary"

// Payload is one typed frame body.
//
// Encode never fails: values that could not be encoded are rejected when they
// are constructed. Decode replaces the receiver only when the whole buffer
// decodes; on error the receiver is left untouched.
type Payload interface {
	Kind() MessageKind
	Size() int
	Encode() []byte
	Decode(b []byte) error
}

// part is the subset of Payload needed to slice composite bodies.
type part interface {
	Size() int
	Encode() []byte
	Decode(b []byte) error
}

// encodeParts concatenates the encodings of each part in order.
func encodeParts(parts ...part) []byte {
	n := 0
	for _, p := range parts {
		n += p.Size()
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p.Encode()...)
	}
	return out
}

// decodeParts slices b into contiguous sub-ranges sized by each part and decodes
// them in order. The ranges must cover b exactly.
func decodeParts(kind MessageKind, b []byte, parts ...part) error {
	total := 0
	for _, p := range parts {
		total += p.Size()
	}
	if len(b) != total {
		return sizeError(kind, total, len(b))
	}
	offset := 0
	for _, p := range parts {
		end := offset + p.Size()
		if err := p.Decode(b[offset:end]); err != nil {
			return err
		}
		offset = end
	}
	return nil
}

// writer appends little-endian fields to a fixed-capacity buffer.
type writer struct {
	buf []byte
}

func newWriter(size int) *writer {
	return &writer{buf: make([]byte, 0, size)}
}

func (w *writer) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *writer) i8(v int8)    { w.buf = append(w.buf, byte(v)) }
func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *writer) i16(v int16)  { w.u16(uint16(v)) }
func (w *writer) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *writer) i32(v int32)  { w.u32(uint32(v)) }
func (w *writer) u64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }
func (w *writer) raw(b []byte) { w.buf = append(w.buf, b...) }
func (w *writer) bytes() []byte {
	return w.buf
}

// reader walks a buffer whose length was already checked against the payload size.
type reader struct {
	buf []byte
	off int
}

func newReader(b []byte) *reader {
	return &reader{buf: b}
}

func (r *reader) u8() uint8 {
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *reader) i8() int8 { return int8(r.u8()) }

func (r *reader) u16() uint16 {
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *reader) i16() int16 { return int16(r.u16()) }

func (r *reader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) i32() int32 { return int32(r.u32()) }

func (r *reader) u64() uint64 {
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *reader) raw(dst []byte) {
	r.off += copy(dst, r.buf[r.off:])
}

func checkSize(kind MessageKind, b []byte, size int) error {
	if len(b) != size {
		return sizeError(kind, size, len(b))
	}
	return nil
}
