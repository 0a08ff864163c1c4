// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Thermoquad/skyhook/pkg/link"
	"github.com/Thermoquad/skyhook/pkg/status"
	"github.com/Thermoquad/skyhook/pkg/wire"
)

// streamConn replays a fixed byte stream and then reports EOF
type streamConn struct {
	*bytes.Reader
	closed atomic.Bool
}

func newStreamConn(b []byte) *streamConn { return &streamConn{Reader: bytes.NewReader(b)} }

func (s *streamConn) Close() error {
	s.closed.Store(true)
	return nil
}

func mustEncode(t *testing.T, p wire.Payload) []byte {
	t.Helper()
	b, err := link.Encode(p)
	if err != nil {
		t.Fatalf("Encode(%s): %v", p.Kind(), err)
	}
	return b
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		ms   uint64
		want string
	}{
		{0, "0 seconds"},
		{999, "0 seconds"},
		{1000, "1 second"},
		{61_000, "1 minute and 1 second"},
		{3_600_000, "1 hour"},
		{90_061_000, "1 day, 1 hour, 1 minute, and 1 second"},
		{2 * 86_400_000, "2 days"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.ms); got != tt.want {
			t.Errorf("formatUptime(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestReadFrames(t *testing.T) {
	bad := mustEncode(t, &wire.Pressure{Pressure: 1013})
	bad[len(bad)-1] ^= 0xFF

	var stream []byte
	stream = append(stream, 0x00, 0x13, 0x37) // noise
	stream = append(stream, mustEncode(t, &wire.Attitude{Roll: 1, Pitch: 2, Yaw: 3})...)
	stream = append(stream, bad...)
	stream = append(stream, mustEncode(t, &wire.Request{Target: wire.KindBattery})...)

	var kinds []wire.MessageKind
	var errs []error
	conn := newStreamConn(stream)
	err := readFrames(context.Background(), conn, func(f *link.Frame, err error) bool {
		if err != nil {
			errs = append(errs, err)
			return true
		}
		kinds = append(kinds, f.Header.Kind)
		return true
	})
	if err != nil {
		t.Fatalf("readFrames: %v", err)
	}

	want := []wire.MessageKind{wire.KindAttitude, wire.KindRequest}
	if len(kinds) != len(want) || kinds[0] != want[0] || kinds[1] != want[1] {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
	if len(errs) != 1 || !errors.Is(errs[0], link.ErrCRCMismatch) {
		t.Errorf("errs = %v, want one CRC mismatch", errs)
	}
}

func TestReadFrames_StopEarly(t *testing.T) {
	var stream []byte
	for i := 0; i < 3; i++ {
		stream = append(stream, mustEncode(t, &wire.Ping{SystemTime: uint64(i)})...)
	}

	calls := 0
	err := readFrames(context.Background(), newStreamConn(stream), func(f *link.Frame, err error) bool {
		calls++
		return false
	})
	if err != nil {
		t.Fatalf("readFrames: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestReadFrames_CancelClosesConn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn := newStreamConn(nil)
	if err := readFrames(ctx, conn, func(*link.Frame, error) bool { return true }); err != nil {
		t.Fatalf("readFrames: %v", err)
	}
	// AfterFunc runs in its own goroutine
	deadline := time.Now().Add(time.Second)
	for !conn.closed.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !conn.closed.Load() {
		t.Error("connection not closed after cancel")
	}
}

func TestRunMonitorReader(t *testing.T) {
	bad := mustEncode(t, &wire.Battery{Percent: 10})
	bad[len(bad)-2] ^= 0xFF

	var stream []byte
	stream = append(stream, bad...) // before sync: skipped
	stream = append(stream, mustEncode(t, &wire.State{
		Flight:      wire.FlightReady,
		Orientation: wire.OrientationReversed,
		Battery:     30,
	})...)

	rec := &monitorRecorder{}
	if err := runMonitorReader(context.Background(), newStreamConn(stream), rec, nil); err != nil {
		t.Fatalf("runMonitorReader: %v", err)
	}

	if !rec.isSynced || rec.skipped != 1 {
		t.Errorf("synced=%v skipped=%d, want true 1", rec.isSynced, rec.skipped)
	}
	want := []status.EventKind{status.EventUpsideDown, status.EventLowBattery, status.EventReady}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, rec.events[i], want[i])
		}
	}
	if len(rec.snapshots) == 0 || rec.snapshots[0].FlightMode != wire.FlightReady {
		t.Errorf("snapshots = %+v, want a Ready status", rec.snapshots)
	}
}

func TestRunMonitorReader_Requests(t *testing.T) {
	requests := make(chan status.EventKind, 1)
	requests <- status.EventTakeoff

	stream := mustEncode(t, &wire.State{Flight: wire.FlightNone, Orientation: wire.OrientationNormal, Battery: 90})

	rec := &monitorRecorder{}
	if err := runMonitorReader(context.Background(), newStreamConn(stream), rec, requests); err != nil {
		t.Fatalf("runMonitorReader: %v", err)
	}
	if len(rec.events) != 1 || rec.events[0] != status.EventTakeoff {
		t.Errorf("events = %v, want [takeoff]", rec.events)
	}
}

// monitorRecorder implements monitorSink for tests
type monitorRecorder struct {
	isSynced  bool
	skipped   int
	errs      []error
	events    []status.EventKind
	snapshots []status.LiveStatus
}

func (r *monitorRecorder) synced(skipped int) {
	r.isSynced = true
	r.skipped = skipped
}
func (r *monitorRecorder) streamError(err error) { r.errs = append(r.errs, err) }
func (r *monitorRecorder) event(kind status.EventKind, at time.Time) {
	r.events = append(r.events, kind)
}
func (r *monitorRecorder) snapshot(st status.LiveStatus, stats link.Statistics) {
	r.snapshots = append(r.snapshots, st)
}

func TestModel_Update(t *testing.T) {
	requests := make(chan status.EventKind, 1)
	m := initialModel("test", requests)

	next, _ := m.Update(eventMsg{kind: status.EventFlying, at: time.Now()})
	m = next.(model)
	if len(m.eventLog) != 1 || m.eventLog[0].message != "EVENT flying" {
		t.Fatalf("eventLog = %+v", m.eventLog)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = next.(model)
	select {
	case kind := <-requests:
		if kind != status.EventEmergencyStop {
			t.Errorf("request = %s, want emergency_stop", kind)
		}
	default:
		t.Error("no request queued")
	}

	st := status.NewLiveStatus()
	st.BatteryPercent = 42
	next, _ = m.Update(snapshotMsg{status: st})
	m = next.(model)
	if !m.haveStatus || m.status.BatteryPercent != 42 {
		t.Errorf("snapshot not applied: %+v", m.status)
	}

	next, _ = m.Update(connClosedMsg{})
	m = next.(model)
	if !m.closed {
		t.Error("closed not set")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestModel_LogLimit(t *testing.T) {
	m := initialModel("test", nil)
	for i := 0; i < m.maxLogEntries+10; i++ {
		m.addLogEntry("entry", false)
	}
	if len(m.eventLog) != m.maxLogEntries {
		t.Errorf("len(eventLog) = %d, want %d", len(m.eventLog), m.maxLogEntries)
	}
}

func TestIsEndOfDiscovery(t *testing.T) {
	end, err := wire.NewLinkDiscoveredDevice(0, [wire.AddressSize]byte{}, "ignored", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !isEndOfDiscovery(end) {
		t.Error("zero address should end discovery")
	}
	d := wire.LinkDiscoveredDevice{Address: [wire.AddressSize]byte{1}}
	if isEndOfDiscovery(d) {
		t.Error("non-zero address should not end discovery")
	}
}

func TestRunReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.cap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := link.NewCaptureWriter(f, "test")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	frames := []wire.Payload{
		&wire.State{Flight: wire.FlightFlight, Orientation: wire.OrientationNormal, Battery: 80},
		&wire.Attitude{Roll: 5},
		&wire.State{Flight: wire.FlightLanding, Orientation: wire.OrientationNormal, Battery: 75},
	}
	for i, p := range frames {
		body, err := wire.EncodeFrame(p)
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Write(start.Add(time.Duration(i)*time.Second), body); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if err := runReplay(replayCmd, []string{path}); err != nil {
		t.Fatalf("runReplay: %v", err)
	}
}

func TestRunReplay_NotACapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.cap")
	if err := os.WriteFile(path, []byte("not cbor"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := runReplay(replayCmd, []string{path}); err == nil {
		t.Error("expected error for a file that is not a capture")
	}
}
