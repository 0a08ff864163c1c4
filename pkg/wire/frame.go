// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

// Header precedes every body: the payload kind and the body length in bytes.
type Header struct {
	Kind   MessageKind
	Length uint8
}

// NewHeader builds the header for p, failing if the body exceeds 255 bytes.
func NewHeader(p Payload) (Header, error) {
	n := p.Size()
	if n > MaxBodyLength {
		return Header{}, &DecodeError{Kind: p.Kind(), Expected: MaxBodyLength, Actual: n, Err: ErrBodyTooLarge}
	}
	return Header{Kind: p.Kind(), Length: uint8(n)}, nil
}

func (h Header) Encode() []byte {
	return []byte{uint8(h.Kind), h.Length}
}

// DecodeHeader decodes exactly two bytes; the kind must be known.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, &DecodeError{Field: "header", Expected: HeaderSize, Actual: len(b), Err: ErrSizeMismatch}
	}
	kind, err := ParseMessageKind(b[0])
	if err != nil {
		return Header{}, err
	}
	return Header{Kind: kind, Length: b[1]}, nil
}

// CheckBody verifies that body is exactly as long as the header declares.
func (h Header) CheckBody(body []byte) error {
	if len(body) != int(h.Length) {
		return sizeError(h.Kind, int(h.Length), len(body))
	}
	return nil
}

// New returns an empty payload for kind, ready to Decode into.
func New(kind MessageKind) (Payload, error) {
	switch kind {
	case KindPing:
		return &Ping{}, nil
	case KindAck:
		return &Ack{}, nil
	case KindRequest:
		return &Request{}, nil
	case KindPasscode:
		return &Passcode{}, nil
	case KindControl:
		return &Control{}, nil
	case KindCommand:
		return &Command{}, nil
	case KindCommand2:
		return &Command2{}, nil
	case KindCommand3:
		return &Command3{}, nil
	case KindLightMode:
		return &LightMode{}, nil
	case KindLightMode2:
		return &LightMode2{}, nil
	case KindLightModeCommand:
		return &LightModeCommand{}, nil
	case KindLightModeCommandIr:
		return &LightModeCommandIr{}, nil
	case KindLightModeColor:
		return &LightModeColor{}, nil
	case KindLightModeColor2:
		return &LightModeColor2{}, nil
	case KindLightEvent:
		return &LightEvent{}, nil
	case KindLightEvent2:
		return &LightEvent2{}, nil
	case KindLightEventCommand:
		return &LightEventCommand{}, nil
	case KindLightEventCommandIr:
		return &LightEventCommandIr{}, nil
	case KindLightEventColor:
		return &LightEventColor{}, nil
	case KindLightEventColor2:
		return &LightEventColor2{}, nil
	case KindLightModeDefaultColor:
		return &LightModeDefaultColor{}, nil
	case KindLightModeDefaultColor2:
		return &LightModeDefaultColor2{}, nil
	case KindAddress:
		return &Address{}, nil
	case KindState:
		return &State{}, nil
	case KindAttitude:
		return &Attitude{}, nil
	case KindGyroBias:
		return &GyroBias{}, nil
	case KindTrimAll:
		return &TrimAll{}, nil
	case KindTrimFlight:
		return &TrimFlight{}, nil
	case KindTrimDrive:
		return &TrimDrive{}, nil
	case KindCountFlight:
		return &CountFlight{}, nil
	case KindCountDrive:
		return &CountDrive{}, nil
	case KindIrMessage:
		return &IrMessage{}, nil
	case KindImu:
		return &Imu{}, nil
	case KindPressure:
		return &Pressure{}, nil
	case KindImageFlow:
		return &ImageFlow{}, nil
	case KindButton:
		return &Button{}, nil
	case KindBattery:
		return &Battery{}, nil
	case KindMotor:
		return &Motor{}, nil
	case KindTemperature:
		return &Temperature{}, nil
	case KindRange:
		return &Range{}, nil
	case KindUpdateLookupTarget:
		return &UpdateLookupTarget{}, nil
	case KindUpdateInformation:
		return &UpdateInformation{}, nil
	case KindUpdate:
		return &Update{}, nil
	case KindUpdateLocationCorrect:
		return &UpdateLocationCorrect{}, nil
	case KindLinkState:
		return &LinkState{}, nil
	case KindLinkEvent:
		return &LinkEvent{}, nil
	case KindLinkEventAddress:
		return &LinkEventAddress{}, nil
	case KindLinkRssi:
		return &LinkRssi{}, nil
	case KindLinkDiscoveredDevice:
		return &LinkDiscoveredDevice{}, nil
	case KindLinkPasscode:
		return &LinkPasscode{}, nil
	case KindMessage:
		return &Message{}, nil
	}
	return nil, &DecodeError{Field: "kind", Value: uint8(kind), Err: ErrUnknownEnumValue}
}

// DecodeBody decodes body as the payload for kind.
func DecodeBody(kind MessageKind, body []byte) (Payload, error) {
	p, err := New(kind)
	if err != nil {
		return nil, err
	}
	if err := p.Decode(body); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeFrame decodes a complete header+body unit. The body must be exactly as
// long as the header declares.
func DecodeFrame(frame []byte) (Header, Payload, error) {
	if len(frame) < HeaderSize {
		return Header{}, nil, &DecodeError{Field: "header", Expected: HeaderSize, Actual: len(frame), Err: ErrSizeMismatch}
	}
	h, err := DecodeHeader(frame[:HeaderSize])
	if err != nil {
		return Header{}, nil, err
	}
	body := frame[HeaderSize:]
	if err := h.CheckBody(body); err != nil {
		return h, nil, err
	}
	p, err := DecodeBody(h.Kind, body)
	if err != nil {
		return h, nil, err
	}
	return h, p, nil
}

// EncodeFrame returns header+body for p.
func EncodeFrame(p Payload) ([]byte, error) {
	h, err := NewHeader(p)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, HeaderSize+int(h.Length))
	out = append(out, h.Encode()...)
	out = append(out, p.Encode()...)
	return out, nil
}
