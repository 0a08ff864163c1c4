// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package status

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Thermoquad/skyhook/pkg/wire"
)

// fakeClock is a settable time source
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time                       { return c.t }
func (c *fakeClock) Advance(d time.Duration)              { c.t = c.t.Add(d) }
func (c *fakeClock) Set(at time.Duration, base time.Time) { c.t = base.Add(at) }

// newTestTracker returns a tracker with every handler counting into counts
func newTestTracker(t *testing.T, clock *fakeClock) (*Tracker, map[EventKind]int) {
	t.Helper()
	tr, err := NewTracker(DefaultEventTimerConfig(), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTracker() error = %v", err)
	}
	counts := make(map[EventKind]int)
	for _, k := range EventKinds {
		k := k
		tr.On(k, func() { counts[k]++ })
	}
	return tr, counts
}

func TestNewLiveStatus(t *testing.T) {
	s := NewLiveStatus()
	if s.BatteryPercent != 100 || s.SensorOrientation != wire.OrientationNormal {
		t.Errorf("NewLiveStatus() = %+v", s)
	}
}

func TestTracker_FreshStatusFiresNothing(t *testing.T) {
	clock := newFakeClock()
	tr, counts := newTestTracker(t, clock)
	if fired := tr.Evaluate(); len(fired) != 0 {
		t.Errorf("Evaluate() fired %v on a fresh tracker", fired)
	}
	if len(counts) != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestTracker_EventPriority(t *testing.T) {
	clock := newFakeClock()
	tr, counts := newTestTracker(t, clock)

	fired := tr.UpdateState(wire.State{
		Flight:      wire.FlightFlight,
		Orientation: wire.OrientationReversed,
		Battery:     10,
	})

	want := []EventKind{EventUpsideDown, EventLowBattery, EventFlying}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, want %v", fired, want)
	}
	if counts[EventUpsideDown] != 1 || counts[EventLowBattery] != 1 || counts[EventFlying] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if len(counts) != 3 {
		t.Errorf("unexpected events fired: %v", counts)
	}
}

func TestTracker_ChainFiresAtMostOne(t *testing.T) {
	clock := newFakeClock()
	tr, counts := newTestTracker(t, clock)
	tr.RequestTakeoff()
	tr.RequestEmergencyStop()

	fired := tr.UpdateState(wire.State{Flight: wire.FlightReady, Orientation: wire.OrientationNormal, Battery: 90})
	if !reflect.DeepEqual(fired, []EventKind{EventReady}) {
		t.Fatalf("fired = %v, want [ready]", fired)
	}

	// Ready is cooling down, so the takeoff flag gets the slot next.
	fired = tr.Evaluate()
	if !reflect.DeepEqual(fired, []EventKind{EventTakeoff}) {
		t.Fatalf("second pass fired = %v, want [takeoff]", fired)
	}
	fired = tr.Evaluate()
	if !reflect.DeepEqual(fired, []EventKind{EventEmergencyStop}) {
		t.Fatalf("third pass fired = %v, want [emergency_stop]", fired)
	}
	if fired = tr.Evaluate(); len(fired) != 0 {
		t.Errorf("fourth pass fired = %v", fired)
	}
	if counts[EventReady] != 1 || counts[EventTakeoff] != 1 || counts[EventEmergencyStop] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestTracker_Cooldown(t *testing.T) {
	clock := newFakeClock()
	base := clock.Now()
	tr, counts := newTestTracker(t, clock)
	ready := wire.State{Flight: wire.FlightReady, Orientation: wire.OrientationNormal, Battery: 90}

	tests := []struct {
		at        time.Duration
		wantCount int
	}{
		{0, 1},
		{5 * time.Second, 1},
		{10 * time.Second, 1}, // exactly the interval is still cooling down
		{11 * time.Second, 2},
		{15 * time.Second, 2},
		{22 * time.Second, 3},
	}
	for _, tt := range tests {
		clock.Set(tt.at, base)
		tr.UpdateState(ready)
		if counts[EventReady] != tt.wantCount {
			t.Errorf("t=%s: ready fired %d times, want %d", tt.at, counts[EventReady], tt.wantCount)
		}
	}
	if got := tr.Timer(EventReady).LastFiredAt; !got.Equal(base.Add(22 * time.Second)) {
		t.Errorf("LastFiredAt = %v", got)
	}
}

func TestTracker_OneShotTakeoff(t *testing.T) {
	clock := newFakeClock()
	tr, counts := newTestTracker(t, clock)

	tr.RequestTakeoff()
	if !tr.Status().TakeoffRequested {
		t.Fatal("TakeoffRequested not set")
	}
	tr.Evaluate()
	if counts[EventTakeoff] != 1 {
		t.Fatalf("takeoff fired %d times, want 1", counts[EventTakeoff])
	}
	if tr.Status().TakeoffRequested {
		t.Error("TakeoffRequested still set after firing")
	}
	tr.Evaluate()
	if counts[EventTakeoff] != 1 {
		t.Errorf("takeoff re-fired without a new request")
	}

	// Takeoff is not cooldown gated.
	tr.RequestTakeoff()
	tr.Evaluate()
	if counts[EventTakeoff] != 2 {
		t.Errorf("takeoff fired %d times after second request, want 2", counts[EventTakeoff])
	}
	if tr.Timer(EventTakeoff).LastFiredAt.IsZero() {
		t.Error("takeoff timer not stamped")
	}
}

func TestTracker_AbsentHandler(t *testing.T) {
	clock := newFakeClock()
	tr, counts := newTestTracker(t, clock)
	tr.On(EventReady, nil)
	tr.RequestTakeoff()

	// Ready holds but has no handler, so it must not consume the slot.
	fired := tr.UpdateState(wire.State{Flight: wire.FlightReady, Orientation: wire.OrientationNormal, Battery: 90})
	if !reflect.DeepEqual(fired, []EventKind{EventTakeoff}) {
		t.Errorf("fired = %v, want [takeoff]", fired)
	}
	if !tr.Timer(EventReady).LastFiredAt.IsZero() {
		t.Error("ready timer reset without a handler")
	}
	if counts[EventReady] != 0 {
		t.Errorf("ready fired %d times", counts[EventReady])
	}
}

func TestTracker_AbsentHandlerKeepsFlag(t *testing.T) {
	clock := newFakeClock()
	tr, _ := newTestTracker(t, clock)
	tr.On(EventEmergencyStop, nil)
	tr.RequestEmergencyStop()

	if fired := tr.Evaluate(); len(fired) != 0 {
		t.Errorf("fired = %v", fired)
	}
	if !tr.Status().EmergencyStopRequested {
		t.Error("flag cleared with no handler registered")
	}

	var stopped bool
	tr.On(EventEmergencyStop, func() { stopped = true })
	tr.Evaluate()
	if !stopped || tr.Status().EmergencyStopRequested {
		t.Errorf("stopped = %v, flag = %v", stopped, tr.Status().EmergencyStopRequested)
	}
}

func TestTracker_PanickingCallbackResetsTimer(t *testing.T) {
	clock := newFakeClock()
	tr, err := NewTracker(DefaultEventTimerConfig(), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTracker() error = %v", err)
	}
	calls := 0
	tr.On(EventUpsideDown, func() {
		calls++
		panic("callback bug")
	})
	upside := wire.State{Orientation: wire.OrientationReversed, Battery: 90}

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("panic was swallowed")
			}
		}()
		tr.UpdateState(upside)
	}()

	if !tr.Timer(EventUpsideDown).LastFiredAt.Equal(clock.Now()) {
		t.Error("timer not reset before callback")
	}

	clock.Advance(time.Second)
	tr.UpdateState(upside) // cooling down, must not panic
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestTracker_ReRegisterOverwrites(t *testing.T) {
	clock := newFakeClock()
	tr, counts := newTestTracker(t, clock)
	var replaced int
	tr.On(EventLowBattery, func() { replaced++ })

	tr.UpdateState(wire.State{Orientation: wire.OrientationNormal, Battery: 20})
	if replaced != 1 || counts[EventLowBattery] != 0 {
		t.Errorf("replaced = %d, old = %d", replaced, counts[EventLowBattery])
	}
	if tr.Handler(EventLowBattery) == nil {
		t.Error("Handler() = nil")
	}
}

func TestTracker_LowBatteryThreshold(t *testing.T) {
	clock := newFakeClock()
	tr, counts := newTestTracker(t, clock)

	tr.UpdateState(wire.State{Orientation: wire.OrientationNormal, Battery: 50})
	if counts[EventLowBattery] != 0 {
		t.Error("low battery fired at the threshold")
	}
	clock.Advance(time.Second)
	tr.UpdateState(wire.State{Orientation: wire.OrientationNormal, Battery: 49})
	if counts[EventLowBattery] != 1 {
		t.Error("low battery did not fire below the threshold")
	}
}

func TestTracker_Apply(t *testing.T) {
	clock := newFakeClock()
	tr, _ := newTestTracker(t, clock)

	tests := []struct {
		payload wire.Payload
		field   Field
	}{
		{&wire.Attitude{Roll: 1, Pitch: 2, Yaw: 3}, FieldAttitude},
		{&wire.Battery{Percent: 77, Voltage: 3900}, FieldBattery},
		{&wire.Imu{Accel: wire.Vector3{X: 1}, Gyro: wire.Vector3{Y: 2}}, FieldImu},
		{&wire.Pressure{Pressure: 101325}, FieldPressure},
		{&wire.Range{Bottom: 300}, FieldRange},
		{&wire.TrimFlight{Roll: 4}, FieldTrim},
		{&wire.TrimAll{Drive: wire.TrimDrive{Wheel: -2}}, FieldTrim},
		{&wire.ImageFlow{VelocitySumX: 9}, FieldImageFlow},
		{&wire.Ack{DataKind: wire.KindControl, CRC: 0x1234}, FieldAck},
		{&wire.Motor{Motors: [wire.MotorCount]wire.MotorOutput{{Forward: 100}}}, FieldMotor},
		{&wire.Address{Address: [wire.AddressSize]byte{1, 2, 3, 4, 5, 6}}, FieldAddress},
		{&wire.Temperature{Imu: 30}, FieldTemperature},
		{&wire.State{Orientation: wire.OrientationNormal, Battery: 80}, FieldState},
	}
	for _, tt := range tests {
		clock.Advance(time.Millisecond)
		if !tr.Apply(tt.payload) {
			t.Errorf("Apply(%s) = false", tt.payload.Kind())
		}
		if !tr.LastSeen(tt.field).Equal(clock.Now()) {
			t.Errorf("Apply(%s): %s not stamped", tt.payload.Kind(), tt.field)
		}
	}

	s := tr.Status()
	if s.Attitude.Yaw != 3 || s.BatteryVoltage != 3900 || s.Pressure != 101325 ||
		s.Range.Bottom != 300 || s.TrimDrive.Wheel != -2 || s.Ack.CRC != 0x1234 ||
		s.MotorPWM[0].Forward != 100 || s.Address[5] != 6 || s.Temperature.Imu != 30 ||
		s.BatteryPercent != 80 {
		t.Errorf("Status() = %+v", s)
	}

	if tr.Apply(&wire.Ping{}) {
		t.Error("Apply(PING) = true")
	}
}

func TestTracker_Stale(t *testing.T) {
	clock := newFakeClock()
	tr, _ := newTestTracker(t, clock)

	if !tr.Stale(FieldAttitude, time.Hour) {
		t.Error("never-seen field is not stale")
	}
	tr.UpdateAttitude(wire.Attitude{})
	clock.Advance(500 * time.Millisecond)
	if tr.Stale(FieldAttitude, time.Second) {
		t.Error("fresh field is stale")
	}
	clock.Advance(time.Second)
	if !tr.Stale(FieldAttitude, time.Second) {
		t.Error("old field is not stale")
	}
}

func TestTracker_ClockNeverMovesTimerBack(t *testing.T) {
	clock := newFakeClock()
	tr, _ := newTestTracker(t, clock)
	tr.RequestTakeoff()
	tr.Evaluate()
	first := tr.Timer(EventTakeoff).LastFiredAt

	clock.Advance(-time.Minute)
	tr.RequestTakeoff()
	tr.Evaluate()
	if !tr.Timer(EventTakeoff).LastFiredAt.Equal(first) {
		t.Error("LastFiredAt moved backwards")
	}
}

func TestEventTimerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EventTimerConfig)
		wantErr bool
	}{
		{"defaults", func(*EventTimerConfig) {}, false},
		{"zero interval", func(c *EventTimerConfig) { c.Ready = 0 }, false},
		{"negative interval", func(c *EventTimerConfig) { c.Landing = -time.Second }, true},
		{"threshold 0", func(c *EventTimerConfig) { c.LowBatteryThreshold = 0 }, false},
		{"threshold 100", func(c *EventTimerConfig) { c.LowBatteryThreshold = 100 }, false},
		{"threshold 101", func(c *EventTimerConfig) { c.LowBatteryThreshold = 101 }, true},
		{"threshold negative", func(c *EventTimerConfig) { c.LowBatteryThreshold = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEventTimerConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			if _, err := NewTracker(cfg); tt.wantErr != (err != nil) {
				t.Errorf("NewTracker() error = %v", err)
			}
		})
	}
}

func TestDefaultEventTimerConfig(t *testing.T) {
	cfg := DefaultEventTimerConfig()
	want := map[EventKind]time.Duration{
		EventUpsideDown:    5 * time.Second,
		EventTakeoff:       5 * time.Second,
		EventFlying:        10 * time.Second,
		EventLanding:       5 * time.Second,
		EventReady:         10 * time.Second,
		EventEmergencyStop: 5 * time.Second,
		EventLowBattery:    10 * time.Second,
	}
	for k, d := range want {
		if cfg.Interval(k) != d {
			t.Errorf("Interval(%s) = %s, want %s", k, cfg.Interval(k), d)
		}
	}
	if cfg.LowBatteryThreshold != 50 {
		t.Errorf("LowBatteryThreshold = %d", cfg.LowBatteryThreshold)
	}
}

func TestEventTimer_Elapsed(t *testing.T) {
	now := time.Unix(100, 0)
	if !(EventTimer{MinInterval: time.Hour}).Elapsed(now) {
		t.Error("never-fired timer not elapsed")
	}
	e := EventTimer{MinInterval: 10 * time.Second, LastFiredAt: now}
	if e.Elapsed(now.Add(10 * time.Second)) {
		t.Error("elapsed at exactly the interval")
	}
	if !e.Elapsed(now.Add(10*time.Second + time.Nanosecond)) {
		t.Error("not elapsed past the interval")
	}
}
