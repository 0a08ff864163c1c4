// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"time"

	"github.com/Thermoquad/skyhook/internal/config"
	"github.com/Thermoquad/skyhook/pkg/status"
)

// newEventTracker builds a tracker from the resolved settings with every event
// routed to onEvent. A nil now uses the wall clock.
func newEventTracker(now func() time.Time, onEvent func(kind status.EventKind, at time.Time)) (*status.Tracker, error) {
	cfg := settings
	if cfg == nil {
		cfg = config.Default()
	}
	tc, err := cfg.TrackerConfig()
	if err != nil {
		return nil, err
	}

	opts := []status.Option{status.WithLogger(logger)}
	if now != nil {
		opts = append(opts, status.WithClock(now))
	} else {
		now = time.Now
	}

	tracker, err := status.NewTracker(tc, opts...)
	if err != nil {
		return nil, err
	}
	for _, kind := range status.EventKinds {
		tracker.On(kind, func() { onEvent(kind, now()) })
	}
	return tracker, nil
}
