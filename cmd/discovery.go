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
	discoveryTimeout int
)

var discoveryCmd = &cobra.Command{
	Use:   "discovery",
	Short: "List devices the link controller has discovered",
	Long: `Request the link controller's discovered device list.

Sends a Request for LinkDiscoveredDevice and prints every device reported
back (index, address, name and RSSI). The controller ends the list with an
entry whose address is all zeros. Duplicate reports of the same address are
shown once.

Exit codes:
  0 - Discovery successful (at least one device found)
  1 - Discovery failed (no devices or timeout)
  2 - Connection error`,
	RunE: runDiscovery,
}

func init() {
	rootCmd.AddCommand(discoveryCmd)
	discoveryCmd.Flags().IntVar(&discoveryTimeout, "timeout", 5, "Timeout in seconds for discovery")
}

func runDiscovery(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Skyhook - Device Discovery\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n\n", discoveryTimeout)

	request, err := link.Encode(&wire.Request{Target: wire.KindLinkDiscoveredDevice})
	if err != nil {
		return err
	}

	fmt.Printf("Sending Request (%s)...\n", wire.FormatKind(wire.KindLinkDiscoveredDevice))
	if _, err := conn.Write(request); err != nil {
		fmt.Printf("SEND FAILED: %v\n", err)
		os.Exit(2)
	}

	found := make(chan wire.LinkDiscoveredDevice, 8)
	done := make(chan struct{})
	errChan := make(chan error, 1)

	go func() {
		err := readFrames(cmd.Context(), conn, func(f *link.Frame, err error) bool {
			if err != nil || f.Header.Kind != wire.KindLinkDiscoveredDevice {
				return true
			}
			_, p, derr := wire.DecodeFrame(f.Bytes())
			if derr != nil {
				logger.Debug().Err(derr).Msg("bad device report")
				return true
			}
			device := *p.(*wire.LinkDiscoveredDevice)
			if isEndOfDiscovery(device) {
				close(done)
				return false
			}
			found <- device
			return true
		})
		if err != nil {
			errChan <- err
		}
	}()

	seen := make(map[[wire.AddressSize]byte]bool)
	timeout := time.After(time.Duration(discoveryTimeout) * time.Second)

collect:
	for {
		select {
		case device := <-found:
			if seen[device.Address] {
				continue
			}
			seen[device.Address] = true
			fmt.Printf("\nDevice found:\n")
			fmt.Printf("  Index: %d\n", device.Index)
			fmt.Printf("  Address: %s\n", wire.FormatAddress(device.Address))
			fmt.Printf("  Name: %s\n", device.NameString())
			fmt.Printf("  RSSI: %d dBm\n", device.Rssi)

		case <-done:
			fmt.Printf("\nEnd of discovery marker received\n")
			break collect

		case err := <-errChan:
			fmt.Printf("READ FAILED: %v\n", err)
			os.Exit(2)

		case <-timeout:
			fmt.Printf("\nTIMEOUT: No end-of-discovery marker received in %ds\n", discoveryTimeout)
			break collect
		}
	}

	fmt.Printf("\n--- Discovery summary ---\n")
	fmt.Printf("Devices found: %d\n", len(seen))

	if len(seen) == 0 {
		fmt.Printf("No devices discovered. Check connection and device power.\n")
		os.Exit(1)
	}
	return nil
}

// isEndOfDiscovery reports the all-zero address entry that closes the list
func isEndOfDiscovery(d wire.LinkDiscoveredDevice) bool {
	return d.Address == [wire.AddressSize]byte{}
}
