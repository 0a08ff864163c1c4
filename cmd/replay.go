// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/skyhook/pkg/link"
	"github.com/Thermoquad/skyhook/pkg/status"
	"github.com/Thermoquad/skyhook/pkg/wire"
)

var replayFrames bool

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Replay a capture file through the status tracker",
	Long: `Read a capture written by raw_log --record and feed it through the status
tracker using the recorded receive times, so event cooldowns behave as they
did live.

Fired events are printed as they happen, followed by link statistics and the
final vehicle status. Event intervals come from the [events] section of the
config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayFrames, "frames", false, "Print every decoded frame")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	reader, err := link.NewCaptureReader(f)
	if err != nil {
		return err
	}
	header := reader.Header()

	fmt.Printf("Skyhook - Replay\n")
	fmt.Printf("Capture: %s (session %s)\n", args[0], reader.Session())
	fmt.Printf("Source: %s\n", header.Source)
	fmt.Printf("Started: %s\n\n", header.StartTime().Format(time.RFC3339))

	// The tracker's clock follows the record being replayed
	clock := header.StartTime()
	tracker, err := newEventTracker(func() time.Time { return clock }, func(kind status.EventKind, at time.Time) {
		fmt.Printf("[%s] EVENT %s\n", at.Format("15:04:05.000"), kind)
	})
	if err != nil {
		return err
	}

	dispatcher := link.NewDispatcher(tracker, link.WithLogger(logger))
	records := 0

	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("after %d records: %w", records, err)
		}
		records++

		clock = rec.Time()
		h, p, derr := dispatcher.Dispatch(rec.Frame)
		if replayFrames || derr != nil {
			fmt.Print(formatFrame(clock, h, p, derr))
		}
	}

	fmt.Printf("\nReplayed %d records spanning %s\n\n", records, clock.Sub(header.StartTime()).Round(time.Millisecond))
	fmt.Print(dispatcher.Statistics().String())
	fmt.Print(formatStatus(tracker.Status()))
	return nil
}

// formatStatus renders the final LiveStatus as text
func formatStatus(s status.LiveStatus) string {
	out := "=== Vehicle Status ===\n"
	out += fmt.Sprintf("Mode:        %s / %s\n", s.System, s.Vehicle)
	out += fmt.Sprintf("Flight:      %s   Drive: %s\n", s.FlightMode, s.DriveMode)
	out += fmt.Sprintf("Orientation: %s   Coordinate: %s\n", s.SensorOrientation, s.Coordinate)
	out += fmt.Sprintf("Battery:     %d%% (%d mV)\n", s.BatteryPercent, s.BatteryVoltage)
	out += fmt.Sprintf("Attitude:    roll=%d pitch=%d yaw=%d\n", s.Attitude.Roll, s.Attitude.Pitch, s.Attitude.Yaw)
	out += fmt.Sprintf("Pressure:    %d\n", s.Pressure)
	out += fmt.Sprintf("Address:     %s\n", wire.FormatAddress(s.Address))
	out += "======================\n"
	return out
}
