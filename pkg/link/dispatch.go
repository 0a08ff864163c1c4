// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"github.com/rs/zerolog"

	"github.com/Thermoquad/skyhook/pkg/wire"
)

// Sink consumes decoded payloads. Apply reports whether the payload was used.
type Sink interface {
	Apply(p wire.Payload) bool
}

// Dispatcher decodes frames through pkg/wire, counts the outcome and forwards
// valid payloads to its sink. Malformed frames never reach the sink.
type Dispatcher struct {
	sink  Sink
	stats *Statistics
	log   zerolog.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger used for dropped frames
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithStatistics shares an existing statistics tracker
func WithStatistics(s *Statistics) Option {
	return func(d *Dispatcher) { d.stats = s }
}

// NewDispatcher creates a dispatcher. sink may be nil to decode without routing.
func NewDispatcher(sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sink: sink,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.stats == nil {
		d.stats = NewStatistics()
	}
	return d
}

// Statistics returns the dispatcher's statistics tracker
func (d *Dispatcher) Statistics() *Statistics {
	return d.stats
}

// Dispatch decodes a header+body unit and forwards the payload to the sink.
func (d *Dispatcher) Dispatch(frame []byte) (wire.Header, wire.Payload, error) {
	h, p, err := wire.DecodeFrame(frame)
	d.stats.Update(h.Kind, err)
	if err != nil {
		d.log.Debug().Err(err).Hex("frame", frame).Msg("dropped frame")
		return h, nil, err
	}

	if d.sink != nil && !d.sink.Apply(p) {
		d.stats.Ignored++
		d.log.Trace().Str("kind", h.Kind.String()).Msg("frame not consumed")
	}
	return h, p, nil
}

// DispatchFrame dispatches a frame taken off the stream by a Decoder.
func (d *Dispatcher) DispatchFrame(f *Frame) (wire.Payload, error) {
	_, p, err := d.Dispatch(f.Bytes())
	return p, err
}

// RecordError counts a stream-level failure such as a CRC mismatch.
func (d *Dispatcher) RecordError(err error) {
	d.stats.Update(0, err)
	d.log.Debug().Err(err).Msg("stream error")
}
