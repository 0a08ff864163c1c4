// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/skyhook/pkg/link"
)

var rawLogRecord string

var rawLogCmd = &cobra.Command{
	Use:   "raw_log",
	Short: "Display raw frame log in human-readable format",
	Long: `Continuously decode and display link frames as they arrive.

Each frame is shown with its timestamp, message kind and decoded payload.
Frames that pass the CRC check but fail to decode are shown with the
decode error. A statistics summary is printed on exit.

With --record, every CRC-valid frame is also written to a CBOR capture file
that the replay command can read back.

Supports both serial and WebSocket connections.`,
	RunE: runRawLog,
}

func init() {
	rootCmd.AddCommand(rawLogCmd)
	rawLogCmd.Flags().StringVar(&rawLogRecord, "record", "", "Write a capture file")
}

func runRawLog(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	var capture *link.CaptureWriter
	if rawLogRecord != "" {
		f, err := os.Create(rawLogRecord)
		if err != nil {
			return fmt.Errorf("create capture: %w", err)
		}
		defer f.Close()

		capture, err = link.NewCaptureWriter(f, connInfo)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Skyhook - Raw Frame Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	if capture != nil {
		fmt.Printf("Recording: %s (session %s)\n", rawLogRecord, capture.Session())
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	dispatcher := link.NewDispatcher(nil, link.WithLogger(logger))

	err = readFrames(ctx, conn, func(f *link.Frame, err error) bool {
		if err != nil {
			dispatcher.RecordError(err)
			fmt.Printf("[ERROR] %v\n", err)
			return true
		}

		if capture != nil {
			if werr := capture.Write(f.Timestamp, f.Bytes()); werr != nil {
				logger.Error().Err(werr).Msg("capture write failed")
				capture = nil
			}
		}

		p, derr := dispatcher.DispatchFrame(f)
		fmt.Print(formatFrame(f.Timestamp, f.Header, p, derr))
		return true
	})

	fmt.Print(dispatcher.Statistics().String())
	if capture != nil {
		fmt.Printf("Recorded %d frames to %s\n", capture.Count(), rawLogRecord)
	}
	return err
}

