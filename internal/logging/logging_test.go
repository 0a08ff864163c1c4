// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zerolog.Level
		wantOK bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{" Debug ", zerolog.DebugLevel, true},
		{"info", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"ERROR", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "not-a-bool")

	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnv(&cfg)

	if cfg.Level != zerolog.ErrorLevel {
		t.Errorf("Level = %v", cfg.Level)
	}
	if cfg.Timestamp {
		t.Error("Timestamp should be disabled")
	}
	if cfg.NoColor {
		t.Error("unparseable NoColor should keep the default")
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig(ProfileTest)
	cfg.Level = zerolog.InfoLevel
	log := New(&buf, cfg)

	log.Debug().Msg("hidden")
	log.Info().Str("port", "/dev/ttyUSB0").Msg("connected")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "connected") || !strings.Contains(out, "port=/dev/ttyUSB0") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "<nil>") {
		t.Errorf("timestamp placeholder written with timestamps off: %q", out)
	}
}
