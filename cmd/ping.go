// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/skyhook/pkg/link"
	"github.com/Thermoquad/skyhook/pkg/wire"
)

var (
	pingTimeout int
	pingCount   int
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the link by sending Ping frames and waiting for Ack",
	Long: `Send Ping frames to the vehicle and wait for the matching Ack.

The vehicle answers a Ping with an Ack naming the Ping kind and carrying its
own system time. Other telemetry arriving in between is ignored.

This is useful for verifying:
  - The connection is established
  - HTTP Basic authentication works (WebSocket)
  - Frames flow in both directions

Exit codes:
  0 - All pings successful
  1 - One or more pings failed/timed out
  2 - Connection error`,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().IntVar(&pingTimeout, "timeout", 5, "Timeout in seconds for each ping")
	pingCmd.Flags().IntVar(&pingCount, "count", 3, "Number of pings to send")
}

func runPing(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Skyhook - Ping Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds per ping\n", pingTimeout)
	fmt.Printf("Count: %d pings\n\n", pingCount)

	// One reader for the whole run; acks for the Ping kind are forwarded
	acks := make(chan wire.Ack, 1)
	readErr := make(chan error, 1)
	go func() {
		err := readFrames(cmd.Context(), conn, func(f *link.Frame, err error) bool {
			if err != nil {
				return true
			}
			_, p, derr := wire.DecodeFrame(f.Bytes())
			if derr != nil {
				return true
			}
			if ack, ok := p.(*wire.Ack); ok && ack.DataKind == wire.KindPing {
				select {
				case acks <- *ack:
				default:
					logger.Debug().Msg("late ack dropped")
				}
			}
			return true
		})
		if err == nil {
			err = ErrConnectionClosed
		}
		readErr <- err
	}()

	start := time.Now()
	successCount := 0
	failCount := 0

pings:
	for i := 1; i <= pingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, pingCount)

		// Drop a late ack from the previous round
		select {
		case <-acks:
		default:
		}

		frame, err := link.Encode(&wire.Ping{SystemTime: uint64(time.Since(start).Milliseconds())})
		if err != nil {
			return err
		}

		sent := time.Now()
		if _, err := conn.Write(frame); err != nil {
			fmt.Printf("SEND FAILED: %v\n", err)
			failCount++
			continue
		}

		select {
		case ack := <-acks:
			rtt := time.Since(sent)
			fmt.Printf("ACK from vehicle, uptime=%s, rtt=%v\n", formatUptime(ack.SystemTime), rtt.Round(time.Millisecond))
			successCount++

		case err := <-readErr:
			fmt.Printf("READ FAILED: %v\n", err)
			failCount += pingCount - i + 1
			break pings

		case <-time.After(time.Duration(pingTimeout) * time.Second):
			fmt.Printf("TIMEOUT (no response in %ds)\n", pingTimeout)
			failCount++
		}

		if i < pingCount {
			time.Sleep(100 * time.Millisecond)
		}
	}

	fmt.Printf("\n--- Ping statistics ---\n")
	fmt.Printf("%d pings sent, %d responses received, %.0f%% packet loss\n",
		pingCount, successCount, lossPercent(failCount, pingCount))

	if failCount > 0 {
		os.Exit(1)
	}
	return nil
}

func lossPercent(failed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(failed) / float64(total) * 100
}
