// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import "strings"

// Normalize trims and fills derived values. Call before Validate.
func Normalize(cfg *Config) {
	c := &cfg.Connection
	c.Port = strings.TrimSpace(c.Port)
	c.URL = strings.TrimSpace(c.URL)
	c.Username = strings.TrimSpace(c.Username)
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}

	// bare hosts are websocket endpoints
	if c.URL != "" && !strings.Contains(c.URL, "://") {
		c.URL = "wss://" + c.URL
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
}
