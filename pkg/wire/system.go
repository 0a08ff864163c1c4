// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

import (
	"strings"
	"unicode/utf8"
)

// Payload sizes - System
const (
	PingSize     = 8
	AckSize      = 11
	RequestSize  = 1
	PasscodeSize = 4
	AddressSize  = 6
)

// Ping carries the sender's system time in milliseconds.
type Ping struct {
	SystemTime uint64
}

func (Ping) Kind() MessageKind { return KindPing }
func (Ping) Size() int         { return PingSize }

func (p Ping) Encode() []byte {
	w := newWriter(PingSize)
	w.u64(p.SystemTime)
	return w.bytes()
}

func (p *Ping) Decode(b []byte) error {
	if err := checkSize(KindPing, b, PingSize); err != nil {
		return err
	}
	p.SystemTime = newReader(b).u64()
	return nil
}

// Ack acknowledges a received frame by kind and CRC.
type Ack struct {
	SystemTime uint64
	DataKind   MessageKind
	CRC        uint16
}

func (Ack) Kind() MessageKind { return KindAck }
func (Ack) Size() int         { return AckSize }

func (a Ack) Encode() []byte {
	w := newWriter(AckSize)
	w.u64(a.SystemTime)
	w.u8(uint8(a.DataKind))
	w.u16(a.CRC)
	return w.bytes()
}

func (a *Ack) Decode(b []byte) error {
	if err := checkSize(KindAck, b, AckSize); err != nil {
		return err
	}
	r := newReader(b)
	v := Ack{SystemTime: r.u64()}
	kind := r.u8()
	if !MessageKind(kind).Valid() {
		return enumError(KindAck, "kind", kind)
	}
	v.DataKind = MessageKind(kind)
	v.CRC = r.u16()
	*a = v
	return nil
}

// Request asks the vehicle to send one frame of the given kind.
type Request struct {
	Target MessageKind
}

func (Request) Kind() MessageKind { return KindRequest }
func (Request) Size() int         { return RequestSize }

func (q Request) Encode() []byte {
	return []byte{uint8(q.Target)}
}

func (q *Request) Decode(b []byte) error {
	if err := checkSize(KindRequest, b, RequestSize); err != nil {
		return err
	}
	if !MessageKind(b[0]).Valid() {
		return enumError(KindRequest, "target", b[0])
	}
	q.Target = MessageKind(b[0])
	return nil
}

// Passcode is the pairing passcode.
type Passcode struct {
	Passcode uint32
}

func (Passcode) Kind() MessageKind { return KindPasscode }
func (Passcode) Size() int         { return PasscodeSize }

func (p Passcode) Encode() []byte {
	w := newWriter(PasscodeSize)
	w.u32(p.Passcode)
	return w.bytes()
}

func (p *Passcode) Decode(b []byte) error {
	if err := checkSize(KindPasscode, b, PasscodeSize); err != nil {
		return err
	}
	p.Passcode = newReader(b).u32()
	return nil
}

// Address is the vehicle's 6-byte radio address, sent as raw bytes.
type Address struct {
	Address [AddressSize]byte
}

func (Address) Kind() MessageKind { return KindAddress }
func (Address) Size() int         { return AddressSize }

func (a Address) Encode() []byte {
	out := make([]byte, AddressSize)
	copy(out, a.Address[:])
	return out
}

func (a *Address) Decode(b []byte) error {
	if err := checkSize(KindAddress, b, AddressSize); err != nil {
		return err
	}
	copy(a.Address[:], b)
	return nil
}

// Message is free text from the vehicle. It is the only payload whose size is
// measured from the value instead of fixed by its kind.
type Message struct {
	Text string
}

func (Message) Kind() MessageKind { return KindMessage }

// Size is the encoded byte length of the text.
func (m Message) Size() int { return len(m.Text) }

func (m Message) Encode() []byte {
	return []byte(m.Text)
}

// Decode accepts any length. An empty buffer yields an empty message and
// invalid UTF-8 is replaced rather than rejected.
func (m *Message) Decode(b []byte) error {
	if len(b) == 0 {
		m.Text = ""
		return nil
	}
	if utf8.Valid(b) {
		m.Text = string(b)
		return nil
	}
	m.Text = strings.ToValidUTF8(string(b), string(utf8.RuneError))
	return nil
}
