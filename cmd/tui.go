// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thermoquad/skyhook/pkg/link"
	"github.com/Thermoquad/skyhook/pkg/status"
	"github.com/Thermoquad/skyhook/pkg/wire"
)

// Event log entry
type logEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for errors, false for events
}

// TUI model
type model struct {
	connInfo      string
	status        status.LiveStatus
	haveStatus    bool
	stats         link.Statistics
	eventLog      []logEntry
	maxLogEntries int
	synchronized  bool
	skipped       int
	closed        bool
	spinner       spinner.Model
	width         int
	height        int
	quitting      bool
	startTime     time.Time

	// requests forwards one-shot event requests to the reader goroutine
	requests chan<- status.EventKind
}

// Messages
type tickMsg time.Time
type syncMsg struct {
	skipped int
}
type snapshotMsg struct {
	status status.LiveStatus
	stats  link.Statistics
}
type eventMsg struct {
	kind status.EventKind
	at   time.Time
}
type streamErrMsg struct {
	err error
}
type connClosedMsg struct {
	err error
}

// formatUptime formats uptime in milliseconds to human-friendly string
func formatUptime(ms uint64) string {
	if ms == 0 {
		return "0 seconds"
	}

	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	seconds %= 60
	minutes %= 60
	hours %= 24

	plural := func(n uint64, unit string) string {
		if n == 1 {
			return "1 " + unit
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	parts := []string{}
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, plural(seconds, "second"))
	}

	// Join with commas and "and" for last item
	if len(parts) == 1 {
		return parts[0]
	}
	if len(parts) == 2 {
		return parts[0] + " and " + parts[1]
	}
	last := parts[len(parts)-1]
	rest := strings.Join(parts[:len(parts)-1], ", ")
	return rest + ", and " + last
}

func initialModel(connInfo string, requests chan<- status.EventKind) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	return model{
		connInfo:      connInfo,
		status:        status.NewLiveStatus(),
		eventLog:      make([]logEntry, 0),
		maxLogEntries: 100,
		spinner:       sp,
		width:         80,
		height:        24,
		startTime:     time.Now(),
		requests:      requests,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spinner.Tick,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "t":
			m.request(status.EventTakeoff)
		case "e":
			m.request(status.EventEmergencyStop)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		if m.haveStatus {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case syncMsg:
		m.synchronized = true
		m.skipped = msg.skipped
		if msg.skipped > 0 {
			m.addLogEntry(fmt.Sprintf("Synchronized after skipping %d bad frames", msg.skipped), false)
		} else {
			m.addLogEntry("Synchronized", false)
		}

	case snapshotMsg:
		m.status = msg.status
		m.stats = msg.stats
		m.haveStatus = true

	case eventMsg:
		m.addLogEntryAt(msg.at, "EVENT "+msg.kind.String(), false)

	case streamErrMsg:
		m.addLogEntry(msg.err.Error(), true)

	case connClosedMsg:
		m.closed = true
		if msg.err != nil {
			m.addLogEntry("Connection lost: "+msg.err.Error(), true)
		} else {
			m.addLogEntry("Connection closed", true)
		}
	}

	return m, nil
}

// request queues a one-shot event without blocking the UI
func (m *model) request(kind status.EventKind) {
	if m.requests == nil || m.closed {
		return
	}
	select {
	case m.requests <- kind:
		m.addLogEntry(kind.String()+" requested", false)
	default:
		m.addLogEntry(kind.String()+" request dropped", true)
	}
}

func (m *model) addLogEntry(message string, isError bool) {
	m.addLogEntryAt(time.Now(), message, isError)
}

func (m *model) addLogEntryAt(ts time.Time, message string, isError bool) {
	m.eventLog = append(m.eventLog, logEntry{
		timestamp: ts,
		message:   message,
		isError:   isError,
	})

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("SKYHOOK - LIVE STATUS"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Up %s | t: takeoff  e: emergency stop  q: quit",
		m.connInfo, formatUptime(uint64(time.Since(m.startTime).Milliseconds())))))
	s.WriteString("\n\n")

	switch {
	case m.closed:
		s.WriteString(errorStyle.Render("✗ Disconnected"))
	case !m.synchronized:
		s.WriteString(m.spinner.View() + warningStyle.Render(" Waiting for synchronization..."))
	default:
		s.WriteString(valueStyle.Render("✓ Synchronized"))
		if m.skipped > 0 {
			s.WriteString(headerStyle.Render(fmt.Sprintf(" (skipped %d bad frames)", m.skipped)))
		}
	}
	s.WriteString("\n\n")

	if m.haveStatus {
		s.WriteString(boxStyle.Render(m.statusView()))
		s.WriteString("\n")
	}
	s.WriteString(boxStyle.Render(m.statsView()))
	s.WriteString("\n\n")
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")
	s.WriteString(boxStyle.Width(m.width - 4).Render(m.logView()))

	return s.String()
}

func (m model) statusView() string {
	st := m.status
	field := func(label, value string) string {
		return labelStyle.Render(label) + " " + valueStyle.Render(value)
	}

	battery := fmt.Sprintf("%d%% (%d mV)", st.BatteryPercent, st.BatteryVoltage)
	batteryField := field("Battery:", battery)
	if st.BatteryPercent < m.lowBatteryThreshold() {
		batteryField = labelStyle.Render("Battery:") + " " + errorStyle.Render(battery)
	}

	orientation := field("Orientation:", st.SensorOrientation.String())
	if st.SensorOrientation != wire.OrientationNormal {
		orientation = labelStyle.Render("Orientation:") + " " + errorStyle.Render(st.SensorOrientation.String())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s   %s\n", field("System:", st.System.String()), field("Vehicle:", st.Vehicle.String()))
	fmt.Fprintf(&b, "%s   %s\n", field("Flight:", st.FlightMode.String()), field("Drive:", st.DriveMode.String()))
	fmt.Fprintf(&b, "%s   %s\n", orientation, field("Coordinate:", st.Coordinate.String()))
	fmt.Fprintf(&b, "%s   %s\n", batteryField, field("Pressure:", fmt.Sprintf("%d", st.Pressure)))
	fmt.Fprintf(&b, "%s\n", field("Attitude:", fmt.Sprintf("roll %d  pitch %d  yaw %d",
		st.Attitude.Roll, st.Attitude.Pitch, st.Attitude.Yaw)))
	fmt.Fprintf(&b, "%s\n", field("Range:", fmt.Sprintf("L %d  F %d  R %d  B %d  T %d  D %d",
		st.Range.Left, st.Range.Front, st.Range.Right, st.Range.Rear, st.Range.Top, st.Range.Bottom)))

	motors := make([]string, 0, len(st.MotorPWM))
	for _, mo := range st.MotorPWM {
		motors = append(motors, fmt.Sprintf("%d/%d", mo.Forward, mo.Reverse))
	}
	fmt.Fprintf(&b, "%s   %s", field("Motors:", strings.Join(motors, "  ")), field("Address:", wire.FormatAddress(st.Address)))
	return b.String()
}

func (m model) statsView() string {
	st := m.stats
	var validPercent float64
	if st.TotalFrames > 0 {
		validPercent = float64(st.ValidFrames) * 100.0 / float64(st.TotalFrames)
	}
	errs := st.Errors()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		labelStyle.Render("Total:"), valueStyle.Render(fmt.Sprintf("%d", st.TotalFrames)),
		labelStyle.Render("Valid:"), valueStyle.Render(fmt.Sprintf("%d (%.1f%%)", st.ValidFrames, validPercent)),
		labelStyle.Render("Errors:"), errorStyle.Render(fmt.Sprintf("%d", errs)),
	)
	if st.CRCErrors > 0 || st.DecodeErrors > 0 {
		fmt.Fprintf(&b, "%s %s   %s %s\n",
			labelStyle.Render("CRC Errors:"), errorStyle.Render(fmt.Sprintf("%d", st.CRCErrors)),
			labelStyle.Render("Decode Errors:"), errorStyle.Render(fmt.Sprintf("%d", st.DecodeErrors+st.SizeMismatches+st.UnknownValues+st.OutOfRange)),
		)
	}

	errorRate := valueStyle.Render(fmt.Sprintf("%.1f err/s", st.ErrorRate))
	if st.ErrorRate > 0 {
		errorRate = errorStyle.Render(fmt.Sprintf("%.1f err/s", st.ErrorRate))
	}
	fmt.Fprintf(&b, "%s %s   %s %s",
		labelStyle.Render("Frame Rate:"), valueStyle.Render(fmt.Sprintf("%.1f frames/s", st.FrameRate)),
		labelStyle.Render("Error Rate:"), errorRate,
	)
	return b.String()
}

func (m model) logView() string {
	// Reserve space for header, status and stats
	logHeight := m.height - 22
	if logHeight < 5 {
		logHeight = 5
	}

	if len(m.eventLog) == 0 {
		return headerStyle.Render("  (no events yet)")
	}

	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	var b strings.Builder
	for _, entry := range m.eventLog[startIdx:] {
		timestamp := headerStyle.Render(entry.timestamp.Format("15:04:05.000"))
		if entry.isError {
			fmt.Fprintf(&b, "%s %s\n", timestamp, errorStyle.Render("✗ "+entry.message))
		} else {
			fmt.Fprintf(&b, "%s %s\n", timestamp, warningStyle.Render("ℹ "+entry.message))
		}
	}
	return b.String()
}

func (m model) lowBatteryThreshold() int {
	if settings == nil {
		return status.DefaultEventTimerConfig().LowBatteryThreshold
	}
	return settings.Events.LowBatteryThreshold
}
