// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package config loads skyhook settings from a TOML or YAML file.
//
// Command line flags override file values; the file overrides Default.
package config

import (
	"time"

	"github.com/Thermoquad/skyhook/pkg/status"
)

type Config struct {
	Connection ConnectionConfig `toml:"connection" yaml:"connection"`
	Events     EventsConfig     `toml:"events" yaml:"events"`
	Log        LogConfig        `toml:"log" yaml:"log"`
}

// ---- CONNECTION ----

type ConnectionConfig struct {
	Port        string `toml:"port" yaml:"port"`
	Baud        int    `toml:"baud" yaml:"baud"`
	URL         string `toml:"url" yaml:"url"`
	Username    string `toml:"username" yaml:"username"`
	NoSSLVerify bool   `toml:"no_ssl_verify" yaml:"no_ssl_verify"`
}

// ---- EVENTS ----

// EventsConfig holds event cooldowns in seconds
type EventsConfig struct {
	UpsideDown    float64 `toml:"upside_down" yaml:"upside_down"`
	Takeoff       float64 `toml:"takeoff" yaml:"takeoff"`
	Flying        float64 `toml:"flying" yaml:"flying"`
	Landing       float64 `toml:"landing" yaml:"landing"`
	Ready         float64 `toml:"ready" yaml:"ready"`
	EmergencyStop float64 `toml:"emergency_stop" yaml:"emergency_stop"`
	LowBattery    float64 `toml:"low_battery" yaml:"low_battery"`

	LowBatteryThreshold int `toml:"low_battery_threshold" yaml:"low_battery_threshold"`
}

// ---- LOG ----

type LogConfig struct {
	Level     string `toml:"level" yaml:"level"`
	NoColor   bool   `toml:"no_color" yaml:"no_color"`
	Timestamp bool   `toml:"timestamp" yaml:"timestamp"`
}

const DefaultBaud = 115200

// Default returns the settings used when no file is given
func Default() *Config {
	ev := status.DefaultEventTimerConfig()
	return &Config{
		Connection: ConnectionConfig{
			Baud: DefaultBaud,
		},
		Events: EventsConfig{
			UpsideDown:          ev.UpsideDown.Seconds(),
			Takeoff:             ev.Takeoff.Seconds(),
			Flying:              ev.Flying.Seconds(),
			Landing:             ev.Landing.Seconds(),
			Ready:               ev.Ready.Seconds(),
			EmergencyStop:       ev.EmergencyStop.Seconds(),
			LowBattery:          ev.LowBattery.Seconds(),
			LowBatteryThreshold: ev.LowBatteryThreshold,
		},
		Log: LogConfig{
			Level:     "warn",
			Timestamp: true,
		},
	}
}

// TrackerConfig converts the events section into a validated tracker config
func (c *Config) TrackerConfig() (status.EventTimerConfig, error) {
	e := c.Events
	tc := status.EventTimerConfig{
		UpsideDown:          seconds(e.UpsideDown),
		Takeoff:             seconds(e.Takeoff),
		Flying:              seconds(e.Flying),
		Landing:             seconds(e.Landing),
		Ready:               seconds(e.Ready),
		EmergencyStop:       seconds(e.EmergencyStop),
		LowBattery:          seconds(e.LowBattery),
		LowBatteryThreshold: e.LowBatteryThreshold,
	}
	if err := tc.Validate(); err != nil {
		return status.EventTimerConfig{}, err
	}
	return tc, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
