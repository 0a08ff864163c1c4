// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/skyhook/pkg/link"
	"github.com/Thermoquad/skyhook/pkg/wire"
)

var (
	packetTestTimeout int
)

var packetTestCmd = &cobra.Command{
	Use:   "packet_test",
	Short: "Test connection by waiting for a valid frame",
	Long: `Wait for a valid link frame on the connection until timeout.

This command connects to a serial port or WebSocket and waits for any valid
frame. It ignores noise and frames that fail the CRC check, and waits for a
complete frame whose payload decodes.

Exit codes:
  0 - Frame received before timeout
  1 - Timeout reached without receiving a valid frame
  2 - Connection error`,
	RunE: runPacketTest,
}

func init() {
	rootCmd.AddCommand(packetTestCmd)
	packetTestCmd.Flags().IntVar(&packetTestTimeout, "timeout", 10, "Timeout in seconds to wait for a frame")
}

type packetTestResult struct {
	frame   *link.Frame
	payload wire.Payload
	skipped int
}

func runPacketTest(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Skyhook - Packet Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", packetTestTimeout)
	fmt.Printf("Waiting for valid frame...\n\n")

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(packetTestTimeout)*time.Second)
	defer cancel()

	resultChan := make(chan packetTestResult, 1)
	errChan := make(chan error, 1)

	go func() {
		skipped := 0
		err := readFrames(ctx, conn, func(f *link.Frame, err error) bool {
			if err != nil {
				skipped++
				return true
			}
			_, p, derr := wire.DecodeFrame(f.Bytes())
			if derr != nil {
				logger.Debug().Err(derr).Msg("frame rejected")
				skipped++
				return true
			}
			resultChan <- packetTestResult{frame: f, payload: p, skipped: skipped}
			return false
		})
		if err != nil {
			errChan <- err
		}
	}()

	select {
	case r := <-resultChan:
		if r.skipped > 0 {
			fmt.Printf("(skipped %d bad frames before sync)\n", r.skipped)
		}
		fmt.Printf("SUCCESS: Received valid frame\n")
		fmt.Printf("  Kind: %s (0x%02X)\n", wire.FormatKind(r.frame.Header.Kind), byte(r.frame.Header.Kind))
		fmt.Printf("  Length: %d bytes\n", r.frame.Header.Length)
		fmt.Printf("  CRC: 0x%04X\n", r.frame.CRC)
		fmt.Print(wire.FormatPayload(r.payload))
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-ctx.Done():
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid frame received within %d seconds\n", packetTestTimeout)
		os.Exit(1)
	}

	return nil
}
