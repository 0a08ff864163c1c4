// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

// Payload sizes - Vehicle state
const (
	StateSize       = 7
	AttitudeSize    = 6
	GyroBiasSize    = 6
	TrimFlightSize  = 8
	TrimDriveSize   = 2
	TrimAllSize     = TrimFlightSize + TrimDriveSize
	CountFlightSize = 14
	CountDriveSize  = 10
)

// State is the vehicle's mode summary, sent periodically.
type State struct {
	System      ModeSystem
	Vehicle     ModeVehicle
	Flight      FlightMode
	Drive       DriveMode
	Orientation SensorOrientation
	Coordinate  Coordinate
	Battery     uint8 // percent
}

func (State) Kind() MessageKind { return KindState }
func (State) Size() int         { return StateSize }

func (s State) Encode() []byte {
	return []byte{
		uint8(s.System), uint8(s.Vehicle), uint8(s.Flight), uint8(s.Drive),
		uint8(s.Orientation), uint8(s.Coordinate), s.Battery,
	}
}

func (s *State) Decode(b []byte) error {
	if err := checkSize(KindState, b, StateSize); err != nil {
		return err
	}
	checks := []struct {
		field string
		ok    bool
	}{
		{"system", ModeSystem(b[0]).Valid()},
		{"vehicle", ModeVehicle(b[1]).Valid()},
		{"flight", FlightMode(b[2]).Valid()},
		{"drive", DriveMode(b[3]).Valid()},
		{"orientation", SensorOrientation(b[4]).Valid()},
		{"coordinate", Coordinate(b[5]).Valid()},
	}
	for i, c := range checks {
		if !c.ok {
			return enumError(KindState, c.field, b[i])
		}
	}
	*s = State{
		System:      ModeSystem(b[0]),
		Vehicle:     ModeVehicle(b[1]),
		Flight:      FlightMode(b[2]),
		Drive:       DriveMode(b[3]),
		Orientation: SensorOrientation(b[4]),
		Coordinate:  Coordinate(b[5]),
		Battery:     b[6],
	}
	return nil
}

// Attitude is the vehicle's orientation in degrees.
type Attitude struct {
	Roll  int16
	Pitch int16
	Yaw   int16
}

func (Attitude) Kind() MessageKind { return KindAttitude }
func (Attitude) Size() int         { return AttitudeSize }

func (a Attitude) Encode() []byte {
	w := newWriter(AttitudeSize)
	w.i16(a.Roll)
	w.i16(a.Pitch)
	w.i16(a.Yaw)
	return w.bytes()
}

func (a *Attitude) Decode(b []byte) error {
	if err := checkSize(KindAttitude, b, AttitudeSize); err != nil {
		return err
	}
	r := newReader(b)
	*a = Attitude{Roll: r.i16(), Pitch: r.i16(), Yaw: r.i16()}
	return nil
}

// GyroBias is the gyro zero offset per axis.
type GyroBias struct {
	Roll  int16
	Pitch int16
	Yaw   int16
}

func (GyroBias) Kind() MessageKind { return KindGyroBias }
func (GyroBias) Size() int         { return GyroBiasSize }

func (g GyroBias) Encode() []byte {
	w := newWriter(GyroBiasSize)
	w.i16(g.Roll)
	w.i16(g.Pitch)
	w.i16(g.Yaw)
	return w.bytes()
}

func (g *GyroBias) Decode(b []byte) error {
	if err := checkSize(KindGyroBias, b, GyroBiasSize); err != nil {
		return err
	}
	r := newReader(b)
	*g = GyroBias{Roll: r.i16(), Pitch: r.i16(), Yaw: r.i16()}
	return nil
}

// TrimFlight is the flight trim per axis.
type TrimFlight struct {
	Roll     int16
	Pitch    int16
	Yaw      int16
	Throttle int16
}

func (TrimFlight) Kind() MessageKind { return KindTrimFlight }
func (TrimFlight) Size() int         { return TrimFlightSize }

func (t TrimFlight) Encode() []byte {
	w := newWriter(TrimFlightSize)
	w.i16(t.Roll)
	w.i16(t.Pitch)
	w.i16(t.Yaw)
	w.i16(t.Throttle)
	return w.bytes()
}

func (t *TrimFlight) Decode(b []byte) error {
	if err := checkSize(KindTrimFlight, b, TrimFlightSize); err != nil {
		return err
	}
	r := newReader(b)
	*t = TrimFlight{Roll: r.i16(), Pitch: r.i16(), Yaw: r.i16(), Throttle: r.i16()}
	return nil
}

// TrimDrive is the wheel trim used in drive mode.
type TrimDrive struct {
	Wheel int16
}

func (TrimDrive) Kind() MessageKind { return KindTrimDrive }
func (TrimDrive) Size() int         { return TrimDriveSize }

func (t TrimDrive) Encode() []byte {
	w := newWriter(TrimDriveSize)
	w.i16(t.Wheel)
	return w.bytes()
}

func (t *TrimDrive) Decode(b []byte) error {
	if err := checkSize(KindTrimDrive, b, TrimDriveSize); err != nil {
		return err
	}
	t.Wheel = newReader(b).i16()
	return nil
}

// TrimAll carries flight and drive trim together.
type TrimAll struct {
	Flight TrimFlight
	Drive  TrimDrive
}

func (TrimAll) Kind() MessageKind { return KindTrimAll }
func (TrimAll) Size() int         { return TrimAllSize }
func (t TrimAll) Encode() []byte  { return encodeParts(&t.Flight, &t.Drive) }

func (t *TrimAll) Decode(b []byte) error {
	var v TrimAll
	if err := decodeParts(KindTrimAll, b, &v.Flight, &v.Drive); err != nil {
		return err
	}
	*t = v
	return nil
}

// CountFlight is the lifetime flight counter.
type CountFlight struct {
	FlightTime    uint64 // seconds
	TakeOffCount  uint16
	LandingCount  uint16
	AccidentCount uint16
}

func (CountFlight) Kind() MessageKind { return KindCountFlight }
func (CountFlight) Size() int         { return CountFlightSize }

func (c CountFlight) Encode() []byte {
	w := newWriter(CountFlightSize)
	w.u64(c.FlightTime)
	w.u16(c.TakeOffCount)
	w.u16(c.LandingCount)
	w.u16(c.AccidentCount)
	return w.bytes()
}

func (c *CountFlight) Decode(b []byte) error {
	if err := checkSize(KindCountFlight, b, CountFlightSize); err != nil {
		return err
	}
	r := newReader(b)
	*c = CountFlight{FlightTime: r.u64(), TakeOffCount: r.u16(), LandingCount: r.u16(), AccidentCount: r.u16()}
	return nil
}

// CountDrive is the lifetime drive counter.
type CountDrive struct {
	DriveTime     uint64 // seconds
	AccidentCount uint16
}

func (CountDrive) Kind() MessageKind { return KindCountDrive }
func (CountDrive) Size() int         { return CountDriveSize }

func (c CountDrive) Encode() []byte {
	w := newWriter(CountDriveSize)
	w.u64(c.DriveTime)
	w.u16(c.AccidentCount)
	return w.bytes()
}

func (c *CountDrive) Decode(b []byte) error {
	if err := checkSize(KindCountDrive, b, CountDriveSize); err != nil {
		return err
	}
	r := newReader(b)
	*c = CountDrive{DriveTime: r.u64(), AccidentCount: r.u16()}
	return nil
}
