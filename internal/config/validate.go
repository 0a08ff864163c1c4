// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/Thermoquad/skyhook/internal/logging"
)

// Validate checks a normalized config
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	c := cfg.Connection
	if c.Port != "" && c.URL != "" {
		return errors.New("connection: port and url are mutually exclusive")
	}
	if c.Baud < 0 {
		return fmt.Errorf("connection: baud %d is negative", c.Baud)
	}
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return fmt.Errorf("connection: url: %w", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("connection: url scheme %q is not ws or wss", u.Scheme)
		}
	}

	if _, err := cfg.TrackerConfig(); err != nil {
		return fmt.Errorf("events: %w", err)
	}

	if cfg.Log.Level != "" {
		if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
			return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
		}
	}
	return nil
}
