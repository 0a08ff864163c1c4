// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Payload sizes - Link module
const (
	LinkStateSize            = 2
	LinkEventSize            = 2
	LinkEventAddressSize     = 2 + AddressSize
	LinkRssiSize             = 1
	LinkDeviceNameSize       = 20
	LinkDiscoveredDeviceSize = 1 + AddressSize + LinkDeviceNameSize + 1
	LinkPasscodeSize         = 4
)

// LinkState is the link module's mode and broadcast setting.
type LinkState struct {
	Mode      LinkMode
	Broadcast LinkBroadcast
}

func (LinkState) Kind() MessageKind { return KindLinkState }
func (LinkState) Size() int         { return LinkStateSize }
func (s LinkState) Encode() []byte  { return []byte{uint8(s.Mode), uint8(s.Broadcast)} }

func (s *LinkState) Decode(b []byte) error {
	if err := checkSize(KindLinkState, b, LinkStateSize); err != nil {
		return err
	}
	if !LinkMode(b[0]).Valid() {
		return enumError(KindLinkState, "mode", b[0])
	}
	if !LinkBroadcast(b[1]).Valid() {
		return enumError(KindLinkState, "broadcast", b[1])
	}
	*s = LinkState{Mode: LinkMode(b[0]), Broadcast: LinkBroadcast(b[1])}
	return nil
}

// LinkEvent is an event from the link module with its result code.
type LinkEvent struct {
	Event  LinkEventType
	Result uint8
}

func (LinkEvent) Kind() MessageKind { return KindLinkEvent }
func (LinkEvent) Size() int         { return LinkEventSize }
func (e LinkEvent) Encode() []byte  { return []byte{uint8(e.Event), e.Result} }

func (e *LinkEvent) Decode(b []byte) error {
	if err := checkSize(KindLinkEvent, b, LinkEventSize); err != nil {
		return err
	}
	if !LinkEventType(b[0]).Valid() {
		return enumError(KindLinkEvent, "event", b[0])
	}
	*e = LinkEvent{Event: LinkEventType(b[0]), Result: b[1]}
	return nil
}

// LinkEventAddress is a link event about a specific peer.
type LinkEventAddress struct {
	Event   LinkEventType
	Result  uint8
	Address [AddressSize]byte
}

func (LinkEventAddress) Kind() MessageKind { return KindLinkEventAddress }
func (LinkEventAddress) Size() int         { return LinkEventAddressSize }

func (e LinkEventAddress) Encode() []byte {
	w := newWriter(LinkEventAddressSize)
	w.u8(uint8(e.Event))
	w.u8(e.Result)
	w.raw(e.Address[:])
	return w.bytes()
}

func (e *LinkEventAddress) Decode(b []byte) error {
	if err := checkSize(KindLinkEventAddress, b, LinkEventAddressSize); err != nil {
		return err
	}
	if !LinkEventType(b[0]).Valid() {
		return enumError(KindLinkEventAddress, "event", b[0])
	}
	v := LinkEventAddress{Event: LinkEventType(b[0]), Result: b[1]}
	copy(v.Address[:], b[2:])
	*e = v
	return nil
}

// LinkRssi is the signal strength of the current connection in dBm.
type LinkRssi struct {
	Rssi int8
}

func (LinkRssi) Kind() MessageKind { return KindLinkRssi }
func (LinkRssi) Size() int         { return LinkRssiSize }
func (l LinkRssi) Encode() []byte  { return []byte{byte(l.Rssi)} }

func (l *LinkRssi) Decode(b []byte) error {
	if err := checkSize(KindLinkRssi, b, LinkRssiSize); err != nil {
		return err
	}
	l.Rssi = int8(b[0])
	return nil
}

// LinkDiscoveredDevice is one scan result. Name holds the NUL padded wire
// field as received; use SetName to fill it and NameString to read it.
type LinkDiscoveredDevice struct {
	Index   uint8
	Address [AddressSize]byte
	Name    [LinkDeviceNameSize]byte
	Rssi    int8
}

// NewLinkDiscoveredDevice builds a scan result. It fails when name does not
// fit the name field (see SetName).
func NewLinkDiscoveredDevice(index uint8, address [AddressSize]byte, name string, rssi int8) (LinkDiscoveredDevice, error) {
	d := LinkDiscoveredDevice{Index: index, Address: address, Rssi: rssi}
	if err := d.SetName(name); err != nil {
		return LinkDiscoveredDevice{}, err
	}
	return d, nil
}

// SetName stores name NUL padded. Names longer than LinkDeviceNameSize bytes,
// containing NUL, or not valid UTF-8 are rejected and leave d unchanged.
func (d *LinkDiscoveredDevice) SetName(name string) error {
	if len(name) > LinkDeviceNameSize {
		return &RangeError{Field: "name length", Value: len(name), Min: 0, Max: LinkDeviceNameSize}
	}
	if i := strings.IndexByte(name, 0); i >= 0 {
		return &RangeError{Field: fmt.Sprintf("name[%d]", i), Value: 0, Reason: "NUL not allowed"}
	}
	if !utf8.ValidString(name) {
		i := invalidUTF8Offset(name)
		return &RangeError{Field: fmt.Sprintf("name[%d]", i), Value: int(name[i]), Reason: "invalid UTF-8"}
	}
	var field [LinkDeviceNameSize]byte
	copy(field[:], name)
	d.Name = field
	return nil
}

// NameString returns the name up to the first NUL. Bytes that are not valid
// UTF-8 are shown as U+FFFD.
func (d LinkDiscoveredDevice) NameString() string {
	name := d.Name[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return strings.ToValidUTF8(string(name), string(utf8.RuneError))
}

func invalidUTF8Offset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(s)
}

func (LinkDiscoveredDevice) Kind() MessageKind { return KindLinkDiscoveredDevice }
func (LinkDiscoveredDevice) Size() int         { return LinkDiscoveredDeviceSize }

func (d LinkDiscoveredDevice) Encode() []byte {
	w := newWriter(LinkDiscoveredDeviceSize)
	w.u8(d.Index)
	w.raw(d.Address[:])
	w.raw(d.Name[:])
	w.i8(d.Rssi)
	return w.bytes()
}

func (d *LinkDiscoveredDevice) Decode(b []byte) error {
	if err := checkSize(KindLinkDiscoveredDevice, b, LinkDiscoveredDeviceSize); err != nil {
		return err
	}
	r := newReader(b)
	var v LinkDiscoveredDevice
	v.Index = r.u8()
	r.raw(v.Address[:])
	r.raw(v.Name[:])
	v.Rssi = r.i8()
	*d = v
	return nil
}

// LinkPasscode is the passcode the link module pairs with.
type LinkPasscode struct {
	Passcode uint32
}

func (LinkPasscode) Kind() MessageKind { return KindLinkPasscode }
func (LinkPasscode) Size() int         { return LinkPasscodeSize }

func (p LinkPasscode) Encode() []byte {
	w := newWriter(LinkPasscodeSize)
	w.u32(p.Passcode)
	return w.bytes()
}

func (p *LinkPasscode) Decode(b []byte) error {
	if err := checkSize(KindLinkPasscode, b, LinkPasscodeSize); err != nil {
		return err
	}
	p.Passcode = newReader(b).u32()
	return nil
}
