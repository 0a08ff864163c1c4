// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

import (
	"bytes"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// Any buffer that decodes must re-encode to the same bytes. Message normalizes
// invalid UTF-8 and is excluded.
func TestFuzz_DecodeEncodeIdentity(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		kind := Kinds[rng.Intn(len(Kinds))]
		if kind == KindMessage {
			continue
		}
		p, _ := New(kind)
		b := make([]byte, p.Size())
		rng.Read(b)

		if err := p.Decode(b); err != nil {
			continue
		}
		if got := p.Encode(); !bytes.Equal(got, b) {
			t.Fatalf("round %d %s: re-encode = % X, want % X", i, kind, got, b)
		}
	}
}

// Decode must reject or accept arbitrary lengths without panicking.
func TestFuzz_DecodeArbitraryLength(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for i := 0; i < rounds; i++ {
		kind := Kinds[rng.Intn(len(Kinds))]
		b := make([]byte, rng.Intn(40))
		rng.Read(b)

		p, _ := New(kind)
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("round %d %s len=%d: panic: %v", i, kind, len(b), r)
				}
			}()
			_ = p.Decode(b)
		}()
	}
}

// Frames built from random valid payloads survive a full encode/decode cycle.
func TestFuzz_FrameRoundTrip(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()
	samples := samplePayloads(t)

	for i := 0; i < rounds; i++ {
		p := samples[rng.Intn(len(samples))]
		if _, ok := p.(*Message); ok {
			text := make([]byte, rng.Intn(MaxBodyLength+1))
			for j := range text {
				text[j] = byte('a' + rng.Intn(26))
			}
			p = &Message{Text: string(text)}
		}
		frame, err := EncodeFrame(p)
		if err != nil {
			t.Fatalf("round %d: EncodeFrame() error = %v", i, err)
		}
		_, got, err := DecodeFrame(frame)
		if err != nil {
			t.Fatalf("round %d %s: DecodeFrame() error = %v", i, p.Kind(), err)
		}
		if !bytes.Equal(got.Encode(), p.Encode()) {
			t.Fatalf("round %d %s: payload mismatch", i, p.Kind())
		}
	}
}
