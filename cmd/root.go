// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/skyhook/internal/config"
	"github.com/Thermoquad/skyhook/internal/logging"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	configPath string
	logLevel   string

	// Resolved in PersistentPreRunE
	settings *config.Config
	logger   = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "skyhook",
	Short: "Drone link protocol analyzer",
	Long: `Skyhook - A CLI tool for monitoring and analyzing drone link protocol frames.

Decodes the binary message catalog, keeps a live status of the vehicle and
fires rate-limited status events (upside down, low battery, flight mode
changes).

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

Settings may also come from a TOML or YAML file given with --config. Flags
override the file.

For WebSocket authentication, the password is read from the SKYHOOK_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version:           "0.3.0",
	PersistentPreRunE: loadSettings,
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", config.DefaultBaud, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")
}

// loadSettings merges defaults, the config file and flags, then builds the logger
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	conn := &cfg.Connection
	if flags.Changed("port") {
		conn.Port = portName
		if !flags.Changed("url") {
			conn.URL = ""
		}
	}
	if flags.Changed("url") {
		conn.URL = wsURL
		if !flags.Changed("port") {
			conn.Port = ""
		}
	}
	if flags.Changed("baud") {
		conn.Baud = baudRate
	}
	if flags.Changed("username") {
		conn.Username = wsUsername
	}
	if flags.Changed("no-ssl-verify") {
		conn.NoSSLVerify = wsNoSSLVerify
	}

	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	lc := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
		lc.Level = lvl
	}
	lc.NoColor = cfg.Log.NoColor
	lc.Timestamp = cfg.Log.Timestamp
	logging.ApplyEnv(&lc)
	if flags.Changed("log-level") {
		lvl, ok := logging.ParseLevel(logLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		lc.Level = lvl
	}

	settings = cfg
	logger = logging.New(os.Stderr, lc)
	logger.Debug().Str("config", configPath).Msg("settings loaded")
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
