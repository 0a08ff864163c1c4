// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Thermoquad/skyhook/pkg/status"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault_MatchesTrackerDefaults(t *testing.T) {
	tc, err := Default().TrackerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc != status.DefaultEventTimerConfig() {
		t.Errorf("TrackerConfig() = %+v, want %+v", tc, status.DefaultEventTimerConfig())
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "skyhook.toml", `
[connection]
port = " /dev/ttyUSB0 "
baud = 57600

[events]
flying = 2.5
low_battery_threshold = 20

[log]
level = "DEBUG"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Connection.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q", cfg.Connection.Port)
	}
	if cfg.Connection.Baud != 57600 {
		t.Errorf("Baud = %d", cfg.Connection.Baud)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if !cfg.Log.Timestamp {
		t.Error("Log.Timestamp default lost")
	}

	tc, err := cfg.TrackerConfig()
	if err != nil {
		t.Fatalf("TrackerConfig: %v", err)
	}
	if tc.Flying != 2500*time.Millisecond {
		t.Errorf("Flying = %s, want 2.5s", tc.Flying)
	}
	if tc.Ready != 10*time.Second {
		t.Errorf("Ready = %s, want default 10s", tc.Ready)
	}
	if tc.LowBatteryThreshold != 20 {
		t.Errorf("LowBatteryThreshold = %d", tc.LowBatteryThreshold)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "skyhook.yaml", `
connection:
  url: drone.local/ws
  username: pilot
events:
  upside_down: 1
log:
  no_color: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Connection.URL != "wss://drone.local/ws" {
		t.Errorf("URL = %q", cfg.Connection.URL)
	}
	if cfg.Connection.Baud != DefaultBaud {
		t.Errorf("Baud = %d, want default", cfg.Connection.Baud)
	}
	if !cfg.Log.NoColor {
		t.Error("Log.NoColor not set")
	}
	tc, _ := cfg.TrackerConfig()
	if tc.UpsideDown != time.Second {
		t.Errorf("UpsideDown = %s", tc.UpsideDown)
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Connection.Baud != DefaultBaud {
		t.Errorf("Baud = %d", cfg.Connection.Baud)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want string
	}{
		{"unknown extension", "skyhook.ini", "", "unknown file format"},
		{"unknown toml key", "a.toml", "[connection]\nspeed = 1\n", "unknown keys"},
		{"unknown yaml key", "a.yaml", "connection:\n  speed: 1\n", "speed"},
		{"bad toml", "a.toml", "[connection\n", "load config"},
		{"negative interval", "a.toml", "[events]\nready = -1.0\n", "events"},
		{"threshold range", "a.yaml", "events:\n  low_battery_threshold: 101\n", "events"},
		{"port and url", "a.toml", "[connection]\nport = \"/dev/ttyS0\"\nurl = \"ws://x\"\n", "mutually exclusive"},
		{"bad scheme", "a.toml", "[connection]\nurl = \"http://x\"\n", "scheme"},
		{"bad level", "a.toml", "[log]\nlevel = \"loud\"\n", "unknown level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestValidate_TrackerErrorWraps(t *testing.T) {
	cfg := Default()
	cfg.Events.Landing = -0.5
	if err := Validate(cfg); !errors.Is(err, status.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
