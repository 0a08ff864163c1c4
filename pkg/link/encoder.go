// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"fmt"

	"github.com/Thermoquad/skyhook/pkg/wire"
)

// Encode builds a complete framed packet for p, ready to write to a port.
func Encode(p wire.Payload) ([]byte, error) {
	frame, err := wire.EncodeFrame(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", wire.FormatKind(p.Kind()), err)
	}
	return Wrap(frame), nil
}

// Wrap adds start bytes and CRC to an already encoded header+body.
func Wrap(frame []byte) []byte {
	crc := CalculateCRC(frame)
	out := make([]byte, 0, StartSize+len(frame)+CRCSize)
	out = append(out, StartByte1, StartByte2)
	out = append(out, frame...)
	return append(out, byte(crc), byte(crc>>8))
}

// EncodeCRC returns the CRC a receiver will compute for p. Ack frames echo it.
func EncodeCRC(p wire.Payload) (uint16, error) {
	frame, err := wire.EncodeFrame(p)
	if err != nil {
		return 0, err
	}
	return CalculateCRC(frame), nil
}
