// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

// Payload sizes - Control and commands
const (
	ControlSize  = 4
	CommandSize  = 2
	Command2Size = 2 * CommandSize
	Command3Size = 3 * CommandSize
)

// Control input limits
const (
	ControlMin = -100
	ControlMax = 100
)

// Control is one joystick sample. Each axis is a percentage in [-100, 100].
//
// The axes are unexported so that every Control in existence has passed the
// range check in NewControl or a setter.
type Control struct {
	roll     int8
	pitch    int8
	yaw      int8
	throttle int8
}

// NewControl builds a Control, rejecting any axis outside [-100, 100].
func NewControl(roll, pitch, yaw, throttle int) (Control, error) {
	var c Control
	for _, set := range []func() error{
		func() error { return c.SetRoll(roll) },
		func() error { return c.SetPitch(pitch) },
		func() error { return c.SetYaw(yaw) },
		func() error { return c.SetThrottle(throttle) },
	} {
		if err := set(); err != nil {
			return Control{}, err
		}
	}
	return c, nil
}

func controlAxis(field string, v int) (int8, error) {
	if v < ControlMin || v > ControlMax {
		return 0, &RangeError{Field: field, Value: v, Min: ControlMin, Max: ControlMax}
	}
	return int8(v), nil
}

// SetRoll sets the roll axis
func (c *Control) SetRoll(v int) error {
	a, err := controlAxis("roll", v)
	if err != nil {
		return err
	}
	c.roll = a
	return nil
}

// SetPitch sets the pitch axis
func (c *Control) SetPitch(v int) error {
	a, err := controlAxis("pitch", v)
	if err != nil {
		return err
	}
	c.pitch = a
	return nil
}

// SetYaw sets the yaw axis
func (c *Control) SetYaw(v int) error {
	a, err := controlAxis("yaw", v)
	if err != nil {
		return err
	}
	c.yaw = a
	return nil
}

// SetThrottle sets the throttle axis
func (c *Control) SetThrottle(v int) error {
	a, err := controlAxis("throttle", v)
	if err != nil {
		return err
	}
	c.throttle = a
	return nil
}

func (c Control) Roll() int     { return int(c.roll) }
func (c Control) Pitch() int    { return int(c.pitch) }
func (c Control) Yaw() int      { return int(c.yaw) }
func (c Control) Throttle() int { return int(c.throttle) }

func (Control) Kind() MessageKind { return KindControl }
func (Control) Size() int         { return ControlSize }

func (c Control) Encode() []byte {
	w := newWriter(ControlSize)
	w.i8(c.roll)
	w.i8(c.pitch)
	w.i8(c.yaw)
	w.i8(c.throttle)
	return w.bytes()
}

// Decode rejects axes outside [-100, 100] with ErrValueOutOfRange.
func (c *Control) Decode(b []byte) error {
	if err := checkSize(KindControl, b, ControlSize); err != nil {
		return err
	}
	fields := [...]string{"roll", "pitch", "yaw", "throttle"}
	for i, raw := range b {
		if v := int8(raw); v < ControlMin || v > ControlMax {
			return &DecodeError{Kind: KindControl, Field: fields[i], Value: raw, Err: ErrValueOutOfRange}
		}
	}
	*c = Control{roll: int8(b[0]), pitch: int8(b[1]), yaw: int8(b[2]), throttle: int8(b[3])}
	return nil
}

// Command asks the vehicle to perform an action. Option is interpreted by Type
// (a FlightMode for CommandFlightEvent, a Coordinate for CommandCoordinate, a
// MessageKind for CommandRequest, and so on).
type Command struct {
	Type   CommandType
	Option uint8
}

func (Command) Kind() MessageKind { return KindCommand }
func (Command) Size() int         { return CommandSize }

func (c Command) Encode() []byte {
	return []byte{uint8(c.Type), c.Option}
}

func (c *Command) Decode(b []byte) error {
	if err := checkSize(KindCommand, b, CommandSize); err != nil {
		return err
	}
	if !CommandType(b[0]).Valid() {
		return enumError(KindCommand, "type", b[0])
	}
	*c = Command{Type: CommandType(b[0]), Option: b[1]}
	return nil
}

// Command2 carries two commands executed in order.
type Command2 struct {
	First  Command
	Second Command
}

func (Command2) Kind() MessageKind { return KindCommand2 }
func (Command2) Size() int         { return Command2Size }

func (c Command2) Encode() []byte {
	return encodeParts(&c.First, &c.Second)
}

func (c *Command2) Decode(b []byte) error {
	var v Command2
	if err := decodeParts(KindCommand2, b, &v.First, &v.Second); err != nil {
		return err
	}
	*c = v
	return nil
}

// Command3 carries three commands executed in order.
type Command3 struct {
	First  Command
	Second Command
	Third  Command
}

func (Command3) Kind() MessageKind { return KindCommand3 }
func (Command3) Size() int         { return Command3Size }

func (c Command3) Encode() []byte {
	return encodeParts(&c.First, &c.Second, &c.Third)
}

func (c *Command3) Decode(b []byte) error {
	var v Command3
	if err := decodeParts(KindCommand3, b, &v.First, &v.Second, &v.Third); err != nil {
		return err
	}
	*c = v
	return nil
}
