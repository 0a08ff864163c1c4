// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Thermoquad/skyhook/pkg/wire"
)

// Statistics tracks frame statistics and error rates. It is not safe for
// concurrent use; take a Snapshot to hand the numbers to another goroutine.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalFrames    uint64
	ValidFrames    uint64
	CRCErrors      uint64
	SizeMismatches uint64
	UnknownValues  uint64
	OutOfRange     uint64
	DecodeErrors   uint64
	Ignored        uint64 // valid frames no sink consumed

	PerKind map[wire.MessageKind]uint64

	// Rates (calculated)
	FrameRate float64 // frames/sec
	ErrorRate float64 // errors/sec

	now func() time.Time
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	return newStatistics(time.Now)
}

func newStatistics(now func() time.Time) *Statistics {
	t := now()
	return &Statistics{
		StartTime:      t,
		LastUpdateTime: t,
		PerKind:        make(map[wire.MessageKind]uint64),
		now:            now,
	}
}

// clock falls back to time.Now for a zero Statistics
func (s *Statistics) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Update counts one frame. err classifies failures; a nil err counts the
// frame as valid for kind.
func (s *Statistics) Update(kind wire.MessageKind, err error) {
	s.TotalFrames++
	s.LastUpdateTime = s.clock()

	switch {
	case err == nil:
		s.ValidFrames++
		s.PerKind[kind]++
	case errors.Is(err, ErrCRCMismatch):
		s.CRCErrors++
	case errors.Is(err, wire.ErrSizeMismatch):
		s.SizeMismatches++
	case errors.Is(err, wire.ErrUnknownEnumValue):
		s.UnknownValues++
	case errors.Is(err, wire.ErrValueOutOfRange):
		s.OutOfRange++
	default:
		s.DecodeErrors++
	}
}

// Errors returns the number of frames that failed any check
func (s *Statistics) Errors() uint64 {
	return s.CRCErrors + s.SizeMismatches + s.UnknownValues + s.OutOfRange + s.DecodeErrors
}

// CalculateRates calculates frame and error rates
func (s *Statistics) CalculateRates() {
	elapsed := s.clock().Sub(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.TotalFrames) / elapsed
		s.ErrorRate = float64(s.Errors()) / elapsed
	}
}

// Snapshot returns an independent copy with rates calculated
func (s *Statistics) Snapshot() Statistics {
	s.CalculateRates()
	c := *s
	c.PerKind = make(map[wire.MessageKind]uint64, len(s.PerKind))
	for k, v := range s.PerKind {
		c.PerKind[k] = v
	}
	return c
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	percent := func(n uint64) float64 {
		if s.TotalFrames == 0 {
			return 0
		}
		return float64(n) * 100.0 / float64(s.TotalFrames)
	}

	elapsed := s.clock().Sub(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Frames:    %8d\n", s.TotalFrames)
	result += fmt.Sprintf("Valid Frames:    %8d (%.1f%%)\n", s.ValidFrames, percent(s.ValidFrames))

	if s.CRCErrors > 0 {
		result += fmt.Sprintf("CRC Errors:      %8d (%.1f%%)\n", s.CRCErrors, percent(s.CRCErrors))
	}
	if s.SizeMismatches > 0 {
		result += fmt.Sprintf("Size Mismatch:   %8d (%.1f%%)\n", s.SizeMismatches, percent(s.SizeMismatches))
	}
	if s.UnknownValues > 0 {
		result += fmt.Sprintf("Unknown Values:  %8d (%.1f%%)\n", s.UnknownValues, percent(s.UnknownValues))
	}
	if s.OutOfRange > 0 {
		result += fmt.Sprintf("Out of Range:    %8d (%.1f%%)\n", s.OutOfRange, percent(s.OutOfRange))
	}
	if s.DecodeErrors > 0 {
		result += fmt.Sprintf("Decode Errors:   %8d (%.1f%%)\n", s.DecodeErrors, percent(s.DecodeErrors))
	}
	if s.Ignored > 0 {
		result += fmt.Sprintf("Ignored:         %8d\n", s.Ignored)
	}

	if len(s.PerKind) > 0 {
		kinds := make([]wire.MessageKind, 0, len(s.PerKind))
		for k := range s.PerKind {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			result += fmt.Sprintf("  %-24s %6d\n", wire.FormatKind(k), s.PerKind[k])
		}
	}

	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = *newStatistics(s.clock)
}
