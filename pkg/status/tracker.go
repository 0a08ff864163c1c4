// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package status

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/Thermoquad/skyhook/pkg/wire"
)

// Callback is run when its event fires.
type Callback func()

// Tracker holds a LiveStatus and fires event callbacks from it.
type Tracker struct {
	status   LiveStatus
	cfg      EventTimerConfig
	timers   [eventKindCount]EventTimer
	handlers [eventKindCount]Callback
	seen     lastSeen

	now func() time.Time
	log zerolog.Logger
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock replaces time.Now. Replay drives the tracker with recorded times.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger used for fired events
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// NewTracker creates a tracker with its own copy of cfg
func NewTracker(cfg EventTimerConfig, opts ...Option) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tracker{
		status: NewLiveStatus(),
		cfg:    cfg,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, k := range EventKinds {
		t.timers[k].MinInterval = cfg.Interval(k)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// On registers cb for kind, replacing any previous handler. A nil cb disables
// the event: it never fires and never takes a priority slot.
func (t *Tracker) On(kind EventKind, cb Callback) {
	if kind < 0 || kind >= eventKindCount {
		return
	}
	t.handlers[kind] = cb
}

// Handler returns the callback registered for kind
func (t *Tracker) Handler(kind EventKind) Callback {
	if kind < 0 || kind >= eventKindCount {
		return nil
	}
	return t.handlers[kind]
}

// Config returns the tracker's timer configuration
func (t *Tracker) Config() EventTimerConfig {
	return t.cfg
}

// Status returns a copy of the current status
func (t *Tracker) Status() LiveStatus {
	return t.status
}

// Timer returns the timer for kind
func (t *Tracker) Timer(kind EventKind) EventTimer {
	if kind < 0 || kind >= eventKindCount {
		return EventTimer{}
	}
	return t.timers[kind]
}

// LastSeen returns when field was last updated, or the zero time
func (t *Tracker) LastSeen(f Field) time.Time {
	if f < 0 || f >= fieldCount {
		return time.Time{}
	}
	return t.seen[f]
}

// Stale reports whether field has not been updated within maxAge. A field
// that was never updated is stale.
func (t *Tracker) Stale(f Field, maxAge time.Duration) bool {
	seen := t.LastSeen(f)
	if seen.IsZero() {
		return true
	}
	return t.now().Sub(seen) > maxAge
}

// RequestTakeoff sets the one-shot takeoff flag
func (t *Tracker) RequestTakeoff() {
	t.status.TakeoffRequested = true
}

// RequestEmergencyStop sets the one-shot emergency stop flag
func (t *Tracker) RequestEmergencyStop() {
	t.status.EmergencyStopRequested = true
}

// UpdateAttitude stores the vehicle attitude
func (t *Tracker) UpdateAttitude(a wire.Attitude) {
	t.status.Attitude = a
	t.seen.stamp(FieldAttitude, t.now())
}

// UpdateBattery stores the battery gauge reading
func (t *Tracker) UpdateBattery(b wire.Battery) {
	t.status.BatteryPercent = int(b.Percent)
	t.status.BatteryVoltage = int(b.Voltage)
	t.seen.stamp(FieldBattery, t.now())
}

// UpdateImu stores accelerometer, gyro and angle readings
func (t *Tracker) UpdateImu(m wire.Imu) {
	t.status.Accel = m.Accel
	t.status.Gyro = m.Gyro
	t.status.Angle = m.Angle
	t.seen.stamp(FieldImu, t.now())
}

// UpdatePressure stores the barometer reading
func (t *Tracker) UpdatePressure(p wire.Pressure) {
	t.status.Pressure = p.Pressure
	t.seen.stamp(FieldPressure, t.now())
}

// UpdateRange stores the range sensor distances
func (t *Tracker) UpdateRange(r wire.Range) {
	t.status.Range = r
	t.seen.stamp(FieldRange, t.now())
}

// UpdateTrim stores the flight trim
func (t *Tracker) UpdateTrim(tr wire.TrimFlight) {
	t.status.Trim = tr
	t.seen.stamp(FieldTrim, t.now())
}

// UpdateTrimAll stores flight and drive trim
func (t *Tracker) UpdateTrimAll(tr wire.TrimAll) {
	t.status.Trim = tr.Flight
	t.status.TrimDrive = tr.Drive
	t.seen.stamp(FieldTrim, t.now())
}

// UpdateImageFlow stores the optical flow sums
func (t *Tracker) UpdateImageFlow(f wire.ImageFlow) {
	t.status.ImageFlow = f
	t.seen.stamp(FieldImageFlow, t.now())
}

// UpdateAck stores the last acknowledgement
func (t *Tracker) UpdateAck(a wire.Ack) {
	t.status.Ack = a
	t.seen.stamp(FieldAck, t.now())
}

// UpdateMotor stores the motor outputs
func (t *Tracker) UpdateMotor(m wire.Motor) {
	t.status.MotorPWM = m.Motors
	t.seen.stamp(FieldMotor, t.now())
}

// UpdateAddress stores the vehicle's radio address
func (t *Tracker) UpdateAddress(a wire.Address) {
	t.status.Address = a.Address
	t.seen.stamp(FieldAddress, t.now())
}

// UpdateTemperature stores the sensor die temperatures
func (t *Tracker) UpdateTemperature(tm wire.Temperature) {
	t.status.Temperature = tm
	t.seen.stamp(FieldTemperature, t.now())
}

// UpdateState stores the mode summary and evaluates events. It returns the
// events that fired.
func (t *Tracker) UpdateState(s wire.State) []EventKind {
	t.status.System = s.System
	t.status.Vehicle = s.Vehicle
	t.status.FlightMode = s.Flight
	t.status.DriveMode = s.Drive
	t.status.SensorOrientation = s.Orientation
	t.status.Coordinate = s.Coordinate
	t.status.BatteryPercent = int(s.Battery)
	t.seen.stamp(FieldState, t.now())
	return t.Evaluate()
}

// Apply routes a decoded payload to its update method. It reports false for
// kinds the tracker does not keep.
func (t *Tracker) Apply(p wire.Payload) bool {
	switch v := p.(type) {
	case *wire.Attitude:
		t.UpdateAttitude(*v)
	case *wire.Battery:
		t.UpdateBattery(*v)
	case *wire.Imu:
		t.UpdateImu(*v)
	case *wire.Pressure:
		t.UpdatePressure(*v)
	case *wire.Range:
		t.UpdateRange(*v)
	case *wire.State:
		t.UpdateState(*v)
	case *wire.TrimFlight:
		t.UpdateTrim(*v)
	case *wire.TrimAll:
		t.UpdateTrimAll(*v)
	case *wire.ImageFlow:
		t.UpdateImageFlow(*v)
	case *wire.Ack:
		t.UpdateAck(*v)
	case *wire.Motor:
		t.UpdateMotor(*v)
	case *wire.Address:
		t.UpdateAddress(*v)
	case *wire.Temperature:
		t.UpdateTemperature(*v)
	default:
		return false
	}
	return true
}

// armed reports whether kind has a handler and its cooldown has passed
func (t *Tracker) armed(kind EventKind, now time.Time) bool {
	return t.handlers[kind] != nil && t.timers[kind].Elapsed(now)
}

// Evaluate checks the current status and fires callbacks. UpsideDown and
// LowBattery are checked independently; then at most one of Ready, Flying,
// Landing, Takeoff and EmergencyStop fires, in that order. Takeoff and
// EmergencyStop follow their one-shot flags and ignore cooldown.
//
// Fired events are returned in firing order. A panicking callback propagates
// with its timer already reset.
func (t *Tracker) Evaluate() []EventKind {
	now := t.now()
	s := &t.status
	var fired []EventKind

	fire := func(kind EventKind) {
		t.timers[kind].reset(now)
		fired = append(fired, kind)
		t.log.Debug().Stringer("event", kind).Time("at", now).Msg("event fired")
		t.handlers[kind]()
	}

	if s.SensorOrientation != wire.OrientationNormal && t.armed(EventUpsideDown, now) {
		fire(EventUpsideDown)
	}
	if s.BatteryPercent < t.cfg.LowBatteryThreshold && t.armed(EventLowBattery, now) {
		fire(EventLowBattery)
	}

	switch {
	case s.FlightMode == wire.FlightReady && t.armed(EventReady, now):
		fire(EventReady)
	case s.FlightMode == wire.FlightFlight && t.armed(EventFlying, now):
		fire(EventFlying)
	case s.FlightMode == wire.FlightLanding && t.armed(EventLanding, now):
		fire(EventLanding)
	case s.TakeoffRequested && t.handlers[EventTakeoff] != nil:
		s.TakeoffRequested = false
		fire(EventTakeoff)
	case s.EmergencyStopRequested && t.handlers[EventEmergencyStop] != nil:
		s.EmergencyStopRequested = false
		fire(EventEmergencyStop)
	}

	return fired
}
