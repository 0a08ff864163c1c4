// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package link frames wire payloads for a serial byte stream.
//
// A frame on the stream is two start bytes, the wire header, the body and a
// little-endian CRC-16-CCITT over header and body:
//
//	0x0A 0x55 | kind | length | body... | crc_lo crc_hi
//
// The package also routes decoded payloads to a Sink, keeps link statistics
// and reads and writes CBOR capture files.
package link

import "github.com/Thermoquad/skyhook/pkg/wire"

// Framing bytes
const (
	StartByte1 = 0x0A
	StartByte2 = 0x55
)

// Frame size limits
const (
	StartSize    = 2
	CRCSize      = 2
	MaxFrameSize = StartSize + wire.HeaderSize + wire.MaxBodyLength + CRCSize
)

// CRC-16-CCITT configuration (XMODEM)
const (
	crcPolynomial = 0x1021
	crcInitial    = 0x0000
)
