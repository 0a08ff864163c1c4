// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

// Payload sizes - Sensors
const (
	IrMessageSize   = 5
	ImuSize         = 18
	PressureSize    = 16
	ImageFlowSize   = 8
	ButtonSize      = 1
	BatterySize     = 16
	MotorSize       = 16
	MotorCount      = 4
	TemperatureSize = 8
	RangeSize       = 12
)

// IrMessage is an IR code received on one transceiver.
type IrMessage struct {
	Direction Direction
	IrData    uint32
}

func (IrMessage) Kind() MessageKind { return KindIrMessage }
func (IrMessage) Size() int         { return IrMessageSize }

func (m IrMessage) Encode() []byte {
	w := newWriter(IrMessageSize)
	w.u8(uint8(m.Direction))
	w.u32(m.IrData)
	return w.bytes()
}

func (m *IrMessage) Decode(b []byte) error {
	if err := checkSize(KindIrMessage, b, IrMessageSize); err != nil {
		return err
	}
	if !Direction(b[0]).Valid() {
		return enumError(KindIrMessage, "direction", b[0])
	}
	r := newReader(b)
	*m = IrMessage{Direction: Direction(r.u8()), IrData: r.u32()}
	return nil
}

// Vector3 is a signed three-axis raw sensor sample.
type Vector3 struct {
	X, Y, Z int16
}

// Imu is the raw accelerometer and gyro sample plus the fused angle.
type Imu struct {
	Accel Vector3
	Gyro  Vector3 // roll, pitch, yaw rates
	Angle Vector3 // roll, pitch, yaw
}

func (Imu) Kind() MessageKind { return KindImu }
func (Imu) Size() int         { return ImuSize }

func (m Imu) Encode() []byte {
	w := newWriter(ImuSize)
	for _, v := range []Vector3{m.Accel, m.Gyro, m.Angle} {
		w.i16(v.X)
		w.i16(v.Y)
		w.i16(v.Z)
	}
	return w.bytes()
}

func (m *Imu) Decode(b []byte) error {
	if err := checkSize(KindImu, b, ImuSize); err != nil {
		return err
	}
	r := newReader(b)
	var v Imu
	for _, dst := range []*Vector3{&v.Accel, &v.Gyro, &v.Angle} {
		*dst = Vector3{X: r.i16(), Y: r.i16(), Z: r.i16()}
	}
	*m = v
	return nil
}

// Pressure is the barometer reading with its raw conversion values.
type Pressure struct {
	D1          int32
	D2          int32
	Temperature int32
	Pressure    int32
}

func (Pressure) Kind() MessageKind { return KindPressure }
func (Pressure) Size() int         { return PressureSize }

func (p Pressure) Encode() []byte {
	w := newWriter(PressureSize)
	w.i32(p.D1)
	w.i32(p.D2)
	w.i32(p.Temperature)
	w.i32(p.Pressure)
	return w.bytes()
}

func (p *Pressure) Decode(b []byte) error {
	if err := checkSize(KindPressure, b, PressureSize); err != nil {
		return err
	}
	r := newReader(b)
	*p = Pressure{D1: r.i32(), D2: r.i32(), Temperature: r.i32(), Pressure: r.i32()}
	return nil
}

// ImageFlow is the optical flow velocity sum.
type ImageFlow struct {
	VelocitySumX int32
	VelocitySumY int32
}

func (ImageFlow) Kind() MessageKind { return KindImageFlow }
func (ImageFlow) Size() int         { return ImageFlowSize }

func (f ImageFlow) Encode() []byte {
	w := newWriter(ImageFlowSize)
	w.i32(f.VelocitySumX)
	w.i32(f.VelocitySumY)
	return w.bytes()
}

func (f *ImageFlow) Decode(b []byte) error {
	if err := checkSize(KindImageFlow, b, ImageFlowSize); err != nil {
		return err
	}
	r := newReader(b)
	*f = ImageFlow{VelocitySumX: r.i32(), VelocitySumY: r.i32()}
	return nil
}

// Button is the bitmask of pressed buttons.
type Button struct {
	Button uint8
}

func (Button) Kind() MessageKind { return KindButton }
func (Button) Size() int         { return ButtonSize }
func (b Button) Encode() []byte  { return []byte{b.Button} }

func (b *Button) Decode(buf []byte) error {
	if err := checkSize(KindButton, buf, ButtonSize); err != nil {
		return err
	}
	b.Button = buf[0]
	return nil
}

// Battery is the battery gauge reading and its calibration.
type Battery struct {
	V30        int16
	V33        int16
	Gradient   int16
	YIntercept int16
	Calibrated uint8
	Raw        int32
	Percent    int8
	Voltage    int16 // millivolts
}

func (Battery) Kind() MessageKind { return KindBattery }
func (Battery) Size() int         { return BatterySize }

func (b Battery) Encode() []byte {
	w := newWriter(BatterySize)
	w.i16(b.V30)
	w.i16(b.V33)
	w.i16(b.Gradient)
	w.i16(b.YIntercept)
	w.u8(b.Calibrated)
	w.i32(b.Raw)
	w.i8(b.Percent)
	w.i16(b.Voltage)
	return w.bytes()
}

func (b *Battery) Decode(buf []byte) error {
	if err := checkSize(KindBattery, buf, BatterySize); err != nil {
		return err
	}
	r := newReader(buf)
	*b = Battery{
		V30:        r.i16(),
		V33:        r.i16(),
		Gradient:   r.i16(),
		YIntercept: r.i16(),
		Calibrated: r.u8(),
		Raw:        r.i32(),
		Percent:    r.i8(),
		Voltage:    r.i16(),
	}
	return nil
}

// MotorOutput is one motor's forward and reverse PWM.
type MotorOutput struct {
	Forward int16
	Reverse int16
}

// Motor is the PWM output of all four motors.
type Motor struct {
	Motors [MotorCount]MotorOutput
}

func (Motor) Kind() MessageKind { return KindMotor }
func (Motor) Size() int         { return MotorSize }

func (m Motor) Encode() []byte {
	w := newWriter(MotorSize)
	for _, o := range m.Motors {
		w.i16(o.Forward)
		w.i16(o.Reverse)
	}
	return w.bytes()
}

func (m *Motor) Decode(b []byte) error {
	if err := checkSize(KindMotor, b, MotorSize); err != nil {
		return err
	}
	r := newReader(b)
	var v Motor
	for i := range v.Motors {
		v.Motors[i] = MotorOutput{Forward: r.i16(), Reverse: r.i16()}
	}
	*m = v
	return nil
}

// Temperature is the IMU and barometer die temperature.
type Temperature struct {
	Imu      int32
	Pressure int32
}

func (Temperature) Kind() MessageKind { return KindTemperature }
func (Temperature) Size() int         { return TemperatureSize }

func (t Temperature) Encode() []byte {
	w := newWriter(TemperatureSize)
	w.i32(t.Imu)
	w.i32(t.Pressure)
	return w.bytes()
}

func (t *Temperature) Decode(b []byte) error {
	if err := checkSize(KindTemperature, b, TemperatureSize); err != nil {
		return err
	}
	r := newReader(b)
	*t = Temperature{Imu: r.i32(), Pressure: r.i32()}
	return nil
}

// Range is the distance from each range sensor in millimeters.
type Range struct {
	Left   uint16
	Front  uint16
	Right  uint16
	Rear   uint16
	Top    uint16
	Bottom uint16
}

func (Range) Kind() MessageKind { return KindRange }
func (Range) Size() int         { return RangeSize }

func (g Range) Encode() []byte {
	w := newWriter(RangeSize)
	for _, v := range []uint16{g.Left, g.Front, g.Right, g.Rear, g.Top, g.Bottom} {
		w.u16(v)
	}
	return w.bytes()
}

func (g *Range) Decode(b []byte) error {
	if err := checkSize(KindRange, b, RangeSize); err != nil {
		return err
	}
	r := newReader(b)
	*g = Range{Left: r.u16(), Front: r.u16(), Right: r.u16(), Rear: r.u16(), Top: r.u16(), Bottom: r.u16()}
	return nil
}
