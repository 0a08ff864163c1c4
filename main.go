// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Skyhook - drone link protocol analyzer
//
// A CLI tool for monitoring and decoding drone link frames and tracking the
// vehicle's live status.

package main

import (
	"os"

	"github.com/Thermoquad/skyhook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
