// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Thermoquad/skyhook/pkg/link"
	"github.com/Thermoquad/skyhook/pkg/wire"
)

// frameFunc receives each frame or stream error. Returning false stops reading.
type frameFunc func(f *link.Frame, err error) bool

// readFrames feeds conn through a link decoder until fn stops it, ctx is
// cancelled, or the connection closes. Closing is not an error.
func readFrames(ctx context.Context, conn io.ReadCloser, fn frameFunc) error {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	decoder := link.NewDecoder()
	buf := make([]byte, 256)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrConnectionClosed) || errors.Is(err, io.EOF) {
				logger.Debug().Err(err).Msg("connection closed")
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		for i := 0; i < n; i++ {
			frame, err := decoder.DecodeByte(buf[i])
			if err == nil && frame == nil {
				continue
			}
			if !fn(frame, err) {
				return nil
			}
		}
	}
}

// formatFrame renders one decoded frame the way raw_log prints it
func formatFrame(ts time.Time, h wire.Header, p wire.Payload, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s (0x%02X) len=%d\n",
		ts.Format("15:04:05.000"), wire.FormatKind(h.Kind), byte(h.Kind), h.Length)
	if err != nil {
		fmt.Fprintf(&b, "  >>> DECODE FAILED: %v <<<\n", err)
	} else {
		b.WriteString(wire.FormatPayload(p))
	}
	b.WriteString("\n")
	return b.String()
}
