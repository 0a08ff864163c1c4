// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

import (
	"fmt"
	"strings"
)

// FormatKind returns the human-readable name for a message kind
func FormatKind(k MessageKind) string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// FormatPayload formats a decoded payload as indented, newline-terminated text
func FormatPayload(p Payload) string {
	switch v := p.(type) {
	case *Ping:
		return fmt.Sprintf("  System Time: %d ms\n", v.SystemTime)
	case *Ack:
		return fmt.Sprintf("  Acked: %s (0x%02X), CRC: 0x%04X, System Time: %d ms\n",
			FormatKind(v.DataKind), uint8(v.DataKind), v.CRC, v.SystemTime)
	case *Request:
		return fmt.Sprintf("  Requested: %s (0x%02X)\n", FormatKind(v.Target), uint8(v.Target))
	case *Passcode:
		return fmt.Sprintf("  Passcode: %d\n", v.Passcode)
	case *LinkPasscode:
		return fmt.Sprintf("  Passcode: %d\n", v.Passcode)

	case *Control:
		return fmt.Sprintf("  Roll: %d, Pitch: %d, Yaw: %d, Throttle: %d\n",
			v.Roll(), v.Pitch(), v.Yaw(), v.Throttle())
	case *Command:
		return formatCommand(*v)
	case *Command2:
		return formatCommand(v.First) + formatCommand(v.Second)
	case *Command3:
		return formatCommand(v.First) + formatCommand(v.Second) + formatCommand(v.Third)

	case *LightMode:
		return formatLightMode(*v)
	case *LightMode2:
		return formatLightMode(v.First) + formatLightMode(v.Second)
	case *LightModeColor:
		return formatLightModeColor(*v)
	case *LightModeColor2:
		return formatLightModeColor(v.First) + formatLightModeColor(v.Second)
	case *LightModeDefaultColor:
		return formatLightModeColor(v.LightModeColor)
	case *LightModeDefaultColor2:
		return formatLightModeColor(v.First) + formatLightModeColor(v.Second)
	case *LightModeCommand:
		return formatLightMode(v.Mode) + formatCommand(v.Command)
	case *LightModeCommandIr:
		return formatLightMode(v.Mode) + formatCommand(v.Command) + fmt.Sprintf("  IR: 0x%08X\n", v.IrData)
	case *LightEvent:
		return formatLightEvent(*v)
	case *LightEvent2:
		return formatLightEvent(v.First) + formatLightEvent(v.Second)
	case *LightEventColor:
		return formatLightEventColor(*v)
	case *LightEventColor2:
		return formatLightEventColor(v.First) + formatLightEventColor(v.Second)
	case *LightEventCommand:
		return formatLightEvent(v.Event) + formatCommand(v.Command)
	case *LightEventCommandIr:
		return formatLightEvent(v.Event) + formatCommand(v.Command) + fmt.Sprintf("  IR: 0x%08X\n", v.IrData)

	case *Address:
		return fmt.Sprintf("  Address: %s\n", FormatAddress(v.Address))
	case *State:
		return fmt.Sprintf("  System: %s, Vehicle: %s, Flight: %s, Drive: %s\n  Orientation: %s, Coordinate: %s, Battery: %d%%\n",
			v.System, v.Vehicle, v.Flight, v.Drive, v.Orientation, v.Coordinate, v.Battery)
	case *Attitude:
		return fmt.Sprintf("  Roll: %d°, Pitch: %d°, Yaw: %d°\n", v.Roll, v.Pitch, v.Yaw)
	case *GyroBias:
		return fmt.Sprintf("  Bias Roll: %d, Pitch: %d, Yaw: %d\n", v.Roll, v.Pitch, v.Yaw)
	case *TrimFlight:
		return formatTrimFlight(*v)
	case *TrimDrive:
		return fmt.Sprintf("  Trim Wheel: %d\n", v.Wheel)
	case *TrimAll:
		return formatTrimFlight(v.Flight) + fmt.Sprintf("  Trim Wheel: %d\n", v.Drive.Wheel)
	case *CountFlight:
		return fmt.Sprintf("  Flight Time: %s, Takeoffs: %d, Landings: %d, Accidents: %d\n",
			formatSeconds(v.FlightTime), v.TakeOffCount, v.LandingCount, v.AccidentCount)
	case *CountDrive:
		return fmt.Sprintf("  Drive Time: %s, Accidents: %d\n", formatSeconds(v.DriveTime), v.AccidentCount)

	case *IrMessage:
		return fmt.Sprintf("  Direction: %s, IR: 0x%08X\n", v.Direction, v.IrData)
	case *Imu:
		return fmt.Sprintf("  Accel: (%d, %d, %d), Gyro: (%d, %d, %d), Angle: (%d, %d, %d)\n",
			v.Accel.X, v.Accel.Y, v.Accel.Z, v.Gyro.X, v.Gyro.Y, v.Gyro.Z, v.Angle.X, v.Angle.Y, v.Angle.Z)
	case *Pressure:
		return fmt.Sprintf("  Pressure: %d, Temperature: %d (D1=%d, D2=%d)\n", v.Pressure, v.Temperature, v.D1, v.D2)
	case *ImageFlow:
		return fmt.Sprintf("  Flow X: %d, Flow Y: %d\n", v.VelocitySumX, v.VelocitySumY)
	case *Button:
		return fmt.Sprintf("  Buttons: 0b%08b\n", v.Button)
	case *Battery:
		return fmt.Sprintf("  Battery: %d%%, Voltage: %d mV, Raw: %d, Calibrated: %t\n",
			v.Percent, v.Voltage, v.Raw, v.Calibrated != 0)
	case *Motor:
		var s strings.Builder
		for i, m := range v.Motors {
			fmt.Fprintf(&s, "  Motor %d: Forward=%d, Reverse=%d\n", i+1, m.Forward, m.Reverse)
		}
		return s.String()
	case *Temperature:
		return fmt.Sprintf("  IMU: %d, Pressure Sensor: %d\n", v.Imu, v.Pressure)
	case *Range:
		return fmt.Sprintf("  Left: %d, Front: %d, Right: %d, Rear: %d, Top: %d, Bottom: %d mm\n",
			v.Left, v.Front, v.Right, v.Rear, v.Top, v.Bottom)

	case *UpdateLookupTarget:
		return fmt.Sprintf("  Device: %s\n", v.Device)
	case *UpdateInformation:
		return fmt.Sprintf("  Mode: %s, Device: %s, Image: %s, Version: %d, Built: 20%02d-%02d-%02d\n",
			v.Mode, v.Device, v.Image, v.Version, v.Year, v.Month, v.Day)
	case *Update:
		return fmt.Sprintf("  Block: %d\n%s", v.Index, hexDump(v.Data[:]))
	case *UpdateLocationCorrect:
		return fmt.Sprintf("  Next Block: %d\n", v.NextIndex)

	case *LinkState:
		return fmt.Sprintf("  Mode: %s, Broadcast: %s\n", v.Mode, v.Broadcast)
	case *LinkEvent:
		return fmt.Sprintf("  Event: %s, Result: %d\n", v.Event, v.Result)
	case *LinkEventAddress:
		return fmt.Sprintf("  Event: %s, Result: %d, Address: %s\n", v.Event, v.Result, FormatAddress(v.Address))
	case *LinkRssi:
		return fmt.Sprintf("  RSSI: %d dBm\n", v.Rssi)
	case *LinkDiscoveredDevice:
		return fmt.Sprintf("  #%d %q %s RSSI: %d dBm\n", v.Index, v.NameString(), FormatAddress(v.Address), v.Rssi)

	case *Message:
		if v.Text == "" {
			return "  (empty message)\n"
		}
		return fmt.Sprintf("  Text: %q\n", v.Text)
	}

	return hexDump(p.Encode())
}

// FormatAddress formats a radio address as colon-separated hex, most significant byte first
func FormatAddress(a [AddressSize]byte) string {
	parts := make([]string, AddressSize)
	for i := range a {
		parts[i] = fmt.Sprintf("%02X", a[AddressSize-1-i])
	}
	return strings.Join(parts, ":")
}

func formatCommand(c Command) string {
	return fmt.Sprintf("  Command: %s, Option: %d\n", c.Type, c.Option)
}

func formatLightMode(l LightMode) string {
	return fmt.Sprintf("  Light Mode: %s, Color: %s, Interval: %d\n", l.Mode, l.Colors, l.Interval)
}

func formatLightModeColor(l LightModeColor) string {
	return fmt.Sprintf("  Light Mode: %s, RGB: #%02X%02X%02X, Interval: %d\n",
		l.Mode, l.Color.R, l.Color.G, l.Color.B, l.Interval)
}

func formatLightEvent(l LightEvent) string {
	return fmt.Sprintf("  Light Event: %s, Color: %s, Interval: %d, Repeat: %d\n",
		l.Event, l.Colors, l.Interval, l.Repeat)
}

func formatLightEventColor(l LightEventColor) string {
	return fmt.Sprintf("  Light Event: %s, RGB: #%02X%02X%02X, Interval: %d, Repeat: %d\n",
		l.Event, l.Color.R, l.Color.G, l.Color.B, l.Interval, l.Repeat)
}

func formatTrimFlight(t TrimFlight) string {
	return fmt.Sprintf("  Trim Roll: %d, Pitch: %d, Yaw: %d, Throttle: %d\n", t.Roll, t.Pitch, t.Yaw, t.Throttle)
}

// formatSeconds formats a second count as h/m/s
func formatSeconds(sec uint64) string {
	hours := sec / 3600
	minutes := (sec / 60) % 60
	seconds := sec % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// hexDump is the fallback format for opaque bytes
func hexDump(b []byte) string {
	var s strings.Builder
	s.WriteString("  Payload: ")
	for i, c := range b {
		if i > 0 && i%16 == 0 {
			s.WriteString("\n           ")
		}
		fmt.Fprintf(&s, "%02X ", c)
	}
	s.WriteString("\n")
	return s.String()
}
