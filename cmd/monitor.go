// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/skyhook/pkg/link"
	"github.com/Thermoquad/skyhook/pkg/status"
)

var (
	useTUI        bool
	statsInterval int
)

// snapshotInterval limits how often the reader pushes status to the UI
const snapshotInterval = 100 * time.Millisecond

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Show live vehicle status and status events",
	Long: `Track the vehicle's live status and fire status events from the telemetry.

Events (upside down, low battery, ready, flying, landing, takeoff and
emergency stop) are rate limited by the intervals in the [events] section of
the config file. Only one of ready, flying, landing, takeoff and emergency
stop fires per state update.

In the terminal UI, 't' requests takeoff and 'e' requests an emergency stop;
the request fires with the next state frame.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics interval in seconds (text mode)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if useTUI {
		return runMonitorTUI(ctx, conn, connInfo)
	}
	return runMonitorText(ctx, conn, connInfo)
}

// monitorSink receives everything the reader goroutine produces
type monitorSink interface {
	synced(skipped int)
	streamError(err error)
	event(kind status.EventKind, at time.Time)
	snapshot(st status.LiveStatus, stats link.Statistics)
}

// runMonitorReader owns the tracker and dispatcher. Nothing else touches them.
func runMonitorReader(ctx context.Context, conn io.ReadCloser, out monitorSink, requests <-chan status.EventKind) error {
	tracker, err := newEventTracker(nil, out.event)
	if err != nil {
		return err
	}
	dispatcher := link.NewDispatcher(tracker, link.WithLogger(logger))

	synchronized := false
	skipped := 0
	var lastSnapshot time.Time

	return readFrames(ctx, conn, func(f *link.Frame, err error) bool {
		// Apply queued requests before the next evaluation
		for drained := false; !drained; {
			select {
			case kind := <-requests:
				switch kind {
				case status.EventTakeoff:
					tracker.RequestTakeoff()
				case status.EventEmergencyStop:
					tracker.RequestEmergencyStop()
				}
			default:
				drained = true
			}
		}

		if err != nil {
			if !synchronized {
				skipped++
				return true
			}
			dispatcher.RecordError(err)
			out.streamError(err)
			return true
		}

		if !synchronized {
			synchronized = true
			out.synced(skipped)
		}

		if _, derr := dispatcher.DispatchFrame(f); derr != nil {
			out.streamError(derr)
		}

		if now := time.Now(); now.Sub(lastSnapshot) >= snapshotInterval {
			lastSnapshot = now
			out.snapshot(tracker.Status(), dispatcher.Statistics().Snapshot())
		}
		return true
	})
}

// programSink forwards reader output to the TUI
type programSink struct {
	p *tea.Program
}

func (s programSink) synced(skipped int)    { s.p.Send(syncMsg{skipped: skipped}) }
func (s programSink) streamError(err error) { s.p.Send(streamErrMsg{err: err}) }
func (s programSink) event(kind status.EventKind, at time.Time) {
	s.p.Send(eventMsg{kind: kind, at: at})
}
func (s programSink) snapshot(st status.LiveStatus, stats link.Statistics) {
	s.p.Send(snapshotMsg{status: st, stats: stats})
}

func runMonitorTUI(ctx context.Context, conn io.ReadCloser, connInfo string) error {
	requests := make(chan status.EventKind, 4)
	m := initialModel(connInfo, requests)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		err := runMonitorReader(ctx, conn, programSink{p: p}, requests)
		p.Send(connClosedMsg{err: err})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// textSink prints reader output as plain lines
type textSink struct {
	stats    link.Statistics
	interval time.Duration
	last     time.Time
}

func (s *textSink) synced(skipped int) {
	fmt.Printf("Synchronized (skipped %d bad frames)\n", skipped)
}

func (s *textSink) streamError(err error) {
	fmt.Printf("[%s] ERROR %v\n", time.Now().Format("15:04:05.000"), err)
}

func (s *textSink) event(kind status.EventKind, at time.Time) {
	fmt.Printf("[%s] EVENT %s\n", at.Format("15:04:05.000"), kind)
}

func (s *textSink) snapshot(st status.LiveStatus, stats link.Statistics) {
	s.stats = stats
	if s.interval <= 0 || time.Since(s.last) < s.interval {
		return
	}
	s.last = time.Now()
	fmt.Print(stats.String())
	fmt.Print(formatStatus(st))
}

func runMonitorText(ctx context.Context, conn io.ReadCloser, connInfo string) error {
	fmt.Printf("Skyhook - Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	sink := &textSink{interval: time.Duration(statsInterval) * time.Second, last: time.Now()}
	err := runMonitorReader(ctx, conn, sink, nil)
	if sink.stats.TotalFrames > 0 {
		fmt.Print(sink.stats.String())
	}
	return err
}
