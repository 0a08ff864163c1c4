// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

// Payload sizes - Lights
const (
	ColorSize           = 3
	IrDataSize          = 4
	LightModeSize       = 3
	LightModeColorSize  = 5
	LightEventSize      = 4
	LightEventColorSize = 6
)

// Color is a raw RGB triple.
type Color struct {
	R, G, B uint8
}

func (Color) Size() int { return ColorSize }

func (c Color) Encode() []byte {
	return []byte{c.R, c.G, c.B}
}

func (c *Color) Decode(b []byte) error {
	if len(b) != ColorSize {
		return &DecodeError{Field: "color", Expected: ColorSize, Actual: len(b), Err: ErrSizeMismatch}
	}
	*c = Color{R: b[0], G: b[1], B: b[2]}
	return nil
}

// irData is the 32-bit IR code trailing the *CommandIr payloads.
type irData uint32

func (irData) Size() int { return IrDataSize }

func (d irData) Encode() []byte {
	w := newWriter(IrDataSize)
	w.u32(uint32(d))
	return w.bytes()
}

func (d *irData) Decode(b []byte) error {
	if len(b) != IrDataSize {
		return &DecodeError{Field: "ir", Expected: IrDataSize, Actual: len(b), Err: ErrSizeMismatch}
	}
	*d = irData(newReader(b).u32())
	return nil
}

// LightMode sets a persistent LED pattern using a palette color.
type LightMode struct {
	Mode     LightModeType
	Colors   Colors
	Interval uint8
}

func (LightMode) Kind() MessageKind { return KindLightMode }
func (LightMode) Size() int         { return LightModeSize }

func (l LightMode) Encode() []byte {
	return []byte{uint8(l.Mode), uint8(l.Colors), l.Interval}
}

func (l *LightMode) Decode(b []byte) error {
	if err := checkSize(KindLightMode, b, LightModeSize); err != nil {
		return err
	}
	if !LightModeType(b[0]).Valid() {
		return enumError(KindLightMode, "mode", b[0])
	}
	if !Colors(b[1]).Valid() {
		return enumError(KindLightMode, "colors", b[1])
	}
	*l = LightMode{Mode: LightModeType(b[0]), Colors: Colors(b[1]), Interval: b[2]}
	return nil
}

// LightModeColor sets a persistent LED pattern using an explicit RGB color.
type LightModeColor struct {
	Mode     LightModeType
	Color    Color
	Interval uint8
}

func (LightModeColor) Kind() MessageKind { return KindLightModeColor }
func (LightModeColor) Size() int         { return LightModeColorSize }

func (l LightModeColor) Encode() []byte {
	w := newWriter(LightModeColorSize)
	w.u8(uint8(l.Mode))
	w.raw(l.Color.Encode())
	w.u8(l.Interval)
	return w.bytes()
}

func (l *LightModeColor) Decode(b []byte) error {
	if err := checkSize(KindLightModeColor, b, LightModeColorSize); err != nil {
		return err
	}
	if !LightModeType(b[0]).Valid() {
		return enumError(KindLightModeColor, "mode", b[0])
	}
	*l = LightModeColor{
		Mode:     LightModeType(b[0]),
		Color:    Color{R: b[1], G: b[2], B: b[3]},
		Interval: b[4],
	}
	return nil
}

// LightEvent plays a transient LED pattern using a palette color.
type LightEvent struct {
	Event    LightEventType
	Colors   Colors
	Interval uint8
	Repeat   uint8
}

func (LightEvent) Kind() MessageKind { return KindLightEvent }
func (LightEvent) Size() int         { return LightEventSize }

func (l LightEvent) Encode() []byte {
	return []byte{uint8(l.Event), uint8(l.Colors), l.Interval, l.Repeat}
}

func (l *LightEvent) Decode(b []byte) error {
	if err := checkSize(KindLightEvent, b, LightEventSize); err != nil {
		return err
	}
	if !LightEventType(b[0]).Valid() {
		return enumError(KindLightEvent, "event", b[0])
	}
	if !Colors(b[1]).Valid() {
		return enumError(KindLightEvent, "colors", b[1])
	}
	*l = LightEvent{Event: LightEventType(b[0]), Colors: Colors(b[1]), Interval: b[2], Repeat: b[3]}
	return nil
}

// LightEventColor plays a transient LED pattern using an explicit RGB color.
type LightEventColor struct {
	Event    LightEventType
	Color    Color
	Interval uint8
	Repeat   uint8
}

func (LightEventColor) Kind() MessageKind { return KindLightEventColor }
func (LightEventColor) Size() int         { return LightEventColorSize }

func (l LightEventColor) Encode() []byte {
	w := newWriter(LightEventColorSize)
	w.u8(uint8(l.Event))
	w.raw(l.Color.Encode())
	w.u8(l.Interval)
	w.u8(l.Repeat)
	return w.bytes()
}

func (l *LightEventColor) Decode(b []byte) error {
	if err := checkSize(KindLightEventColor, b, LightEventColorSize); err != nil {
		return err
	}
	if !LightEventType(b[0]).Valid() {
		return enumError(KindLightEventColor, "event", b[0])
	}
	*l = LightEventColor{
		Event:    LightEventType(b[0]),
		Color:    Color{R: b[1], G: b[2], B: b[3]},
		Interval: b[4],
		Repeat:   b[5],
	}
	return nil
}

// LightMode2 sets the eye and arm LED patterns together.
type LightMode2 struct {
	First  LightMode
	Second LightMode
}

func (LightMode2) Kind() MessageKind { return KindLightMode2 }
func (LightMode2) Size() int         { return 2 * LightModeSize }
func (l LightMode2) Encode() []byte  { return encodeParts(&l.First, &l.Second) }

func (l *LightMode2) Decode(b []byte) error {
	var v LightMode2
	if err := decodeParts(KindLightMode2, b, &v.First, &v.Second); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightModeColor2 sets two RGB LED patterns together.
type LightModeColor2 struct {
	First  LightModeColor
	Second LightModeColor
}

func (LightModeColor2) Kind() MessageKind { return KindLightModeColor2 }
func (LightModeColor2) Size() int         { return 2 * LightModeColorSize }
func (l LightModeColor2) Encode() []byte  { return encodeParts(&l.First, &l.Second) }

func (l *LightModeColor2) Decode(b []byte) error {
	var v LightModeColor2
	if err := decodeParts(KindLightModeColor2, b, &v.First, &v.Second); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightEvent2 plays two transient LED patterns together.
type LightEvent2 struct {
	First  LightEvent
	Second LightEvent
}

func (LightEvent2) Kind() MessageKind { return KindLightEvent2 }
func (LightEvent2) Size() int         { return 2 * LightEventSize }
func (l LightEvent2) Encode() []byte  { return encodeParts(&l.First, &l.Second) }

func (l *LightEvent2) Decode(b []byte) error {
	var v LightEvent2
	if err := decodeParts(KindLightEvent2, b, &v.First, &v.Second); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightEventColor2 plays two transient RGB LED patterns together.
type LightEventColor2 struct {
	First  LightEventColor
	Second LightEventColor
}

func (LightEventColor2) Kind() MessageKind { return KindLightEventColor2 }
func (LightEventColor2) Size() int         { return 2 * LightEventColorSize }
func (l LightEventColor2) Encode() []byte  { return encodeParts(&l.First, &l.Second) }

func (l *LightEventColor2) Decode(b []byte) error {
	var v LightEventColor2
	if err := decodeParts(KindLightEventColor2, b, &v.First, &v.Second); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightModeCommand sets an LED pattern and runs a command.
type LightModeCommand struct {
	Mode    LightMode
	Command Command
}

func (LightModeCommand) Kind() MessageKind { return KindLightModeCommand }
func (LightModeCommand) Size() int         { return LightModeSize + CommandSize }
func (l LightModeCommand) Encode() []byte  { return encodeParts(&l.Mode, &l.Command) }

func (l *LightModeCommand) Decode(b []byte) error {
	var v LightModeCommand
	if err := decodeParts(KindLightModeCommand, b, &v.Mode, &v.Command); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightModeCommandIr sets an LED pattern, runs a command and sends an IR code.
type LightModeCommandIr struct {
	Mode    LightMode
	Command Command
	IrData  uint32
}

func (LightModeCommandIr) Kind() MessageKind { return KindLightModeCommandIr }
func (LightModeCommandIr) Size() int         { return LightModeSize + CommandSize + IrDataSize }

func (l LightModeCommandIr) Encode() []byte {
	return encodeParts(&l.Mode, &l.Command, (*irData)(&l.IrData))
}

func (l *LightModeCommandIr) Decode(b []byte) error {
	var v LightModeCommandIr
	if err := decodeParts(KindLightModeCommandIr, b, &v.Mode, &v.Command, (*irData)(&v.IrData)); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightEventCommand plays an LED event and runs a command.
type LightEventCommand struct {
	Event   LightEvent
	Command Command
}

func (LightEventCommand) Kind() MessageKind { return KindLightEventCommand }
func (LightEventCommand) Size() int         { return LightEventSize + CommandSize }
func (l LightEventCommand) Encode() []byte  { return encodeParts(&l.Event, &l.Command) }

func (l *LightEventCommand) Decode(b []byte) error {
	var v LightEventCommand
	if err := decodeParts(KindLightEventCommand, b, &v.Event, &v.Command); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightEventCommandIr plays an LED event, runs a command and sends an IR code.
type LightEventCommandIr struct {
	Event   LightEvent
	Command Command
	IrData  uint32
}

func (LightEventCommandIr) Kind() MessageKind { return KindLightEventCommandIr }
func (LightEventCommandIr) Size() int         { return LightEventSize + CommandSize + IrDataSize }

func (l LightEventCommandIr) Encode() []byte {
	return encodeParts(&l.Event, &l.Command, (*irData)(&l.IrData))
}

func (l *LightEventCommandIr) Decode(b []byte) error {
	var v LightEventCommandIr
	if err := decodeParts(KindLightEventCommandIr, b, &v.Event, &v.Command, (*irData)(&v.IrData)); err != nil {
		return err
	}
	*l = v
	return nil
}

// LightModeDefaultColor stores the power-on LED pattern. Same layout as LightModeColor.
type LightModeDefaultColor struct {
	LightModeColor
}

func (LightModeDefaultColor) Kind() MessageKind { return KindLightModeDefaultColor }

// LightModeDefaultColor2 stores both power-on LED patterns. Same layout as LightModeColor2.
type LightModeDefaultColor2 struct {
	LightModeColor2
}

func (LightModeDefaultColor2) Kind() MessageKind { return KindLightModeDefaultColor2 }
