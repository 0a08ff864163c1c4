// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package status

import (
	"errors"
	"fmt"
	"time"
)

// EventKind is one of the callbacks a Tracker can fire.
type EventKind int

const (
	EventUpsideDown EventKind = iota
	EventTakeoff
	EventFlying
	EventLanding
	EventReady
	EventEmergencyStop
	EventLowBattery
	eventKindCount
)

var eventNames = [eventKindCount]string{
	"upside_down", "takeoff", "flying", "landing", "ready", "emergency_stop", "low_battery",
}

func (k EventKind) String() string {
	if k < 0 || k >= eventKindCount {
		return "unknown"
	}
	return eventNames[k]
}

// EventKinds lists every event kind
var EventKinds = []EventKind{
	EventUpsideDown, EventTakeoff, EventFlying, EventLanding,
	EventReady, EventEmergencyStop, EventLowBattery,
}

var ErrInvalidConfig = errors.New("status: invalid event timer config")

// EventTimerConfig holds the minimum re-fire interval of every event and the
// low battery threshold. Each Tracker owns its own copy.
type EventTimerConfig struct {
	UpsideDown    time.Duration
	Takeoff       time.Duration
	Flying        time.Duration
	Landing       time.Duration
	Ready         time.Duration
	EmergencyStop time.Duration
	LowBattery    time.Duration

	// LowBatteryThreshold fires LowBattery while the battery percent is below it
	LowBatteryThreshold int
}

// DefaultEventTimerConfig returns the stock intervals
func DefaultEventTimerConfig() EventTimerConfig {
	return EventTimerConfig{
		UpsideDown:          5 * time.Second,
		Takeoff:             5 * time.Second,
		Flying:              10 * time.Second,
		Landing:             5 * time.Second,
		Ready:               10 * time.Second,
		EmergencyStop:       5 * time.Second,
		LowBattery:          10 * time.Second,
		LowBatteryThreshold: 50,
	}
}

// Interval returns the configured minimum interval for kind
func (c EventTimerConfig) Interval(kind EventKind) time.Duration {
	switch kind {
	case EventUpsideDown:
		return c.UpsideDown
	case EventTakeoff:
		return c.Takeoff
	case EventFlying:
		return c.Flying
	case EventLanding:
		return c.Landing
	case EventReady:
		return c.Ready
	case EventEmergencyStop:
		return c.EmergencyStop
	case EventLowBattery:
		return c.LowBattery
	}
	return 0
}

// Validate rejects negative intervals and thresholds outside 0-100
func (c EventTimerConfig) Validate() error {
	for _, k := range EventKinds {
		if c.Interval(k) < 0 {
			return fmt.Errorf("%w: %s interval %s is negative", ErrInvalidConfig, k, c.Interval(k))
		}
	}
	if c.LowBatteryThreshold < 0 || c.LowBatteryThreshold > 100 {
		return fmt.Errorf("%w: low battery threshold %d outside 0-100", ErrInvalidConfig, c.LowBatteryThreshold)
	}
	return nil
}

// EventTimer gates how often one event may fire.
type EventTimer struct {
	MinInterval time.Duration
	LastFiredAt time.Time // zero until the first firing
}

// Elapsed reports whether the cooldown has passed at now. A timer that has
// never fired is always elapsed.
func (e EventTimer) Elapsed(now time.Time) bool {
	if e.LastFiredAt.IsZero() {
		return true
	}
	return now.Sub(e.LastFiredAt) > e.MinInterval
}

// reset stamps the timer, never moving it backwards.
func (e *EventTimer) reset(now time.Time) {
	if now.After(e.LastFiredAt) {
		e.LastFiredAt = now
	}
}
