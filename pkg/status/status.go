// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package status keeps the latest known vehicle status and turns the
// telemetry stream into rate-limited event callbacks.
//
// A Tracker is owned by one goroutine. It does no locking; callers that share
// one across goroutines must serialize the whole update and evaluate sequence.
package status

import (
	"time"

	"github.com/Thermoquad/skyhook/pkg/wire"
)

// LiveStatus is the most recently decoded value of every tracked field.
type LiveStatus struct {
	Attitude  wire.Attitude
	Accel     wire.Vector3
	Gyro      wire.Vector3
	Angle     wire.Vector3
	ImageFlow wire.ImageFlow

	BatteryPercent int
	BatteryVoltage int // millivolts
	Pressure       int32
	Temperature    wire.Temperature
	Trim           wire.TrimFlight
	TrimDrive      wire.TrimDrive
	Range          wire.Range

	System            wire.ModeSystem
	Vehicle           wire.ModeVehicle
	FlightMode        wire.FlightMode
	DriveMode         wire.DriveMode
	SensorOrientation wire.SensorOrientation
	Coordinate        wire.Coordinate

	MotorPWM [wire.MotorCount]wire.MotorOutput
	Ack      wire.Ack
	Address  [wire.AddressSize]byte

	// One-shot flags set by the command layer and cleared by evaluation
	TakeoffRequested       bool
	EmergencyStopRequested bool
}

// NewLiveStatus returns the status of a vehicle nothing has been heard from:
// upright with a full battery, so that no event fires before real data arrives.
func NewLiveStatus() LiveStatus {
	return LiveStatus{
		BatteryPercent:    100,
		SensorOrientation: wire.OrientationNormal,
	}
}

// Field names a group of LiveStatus fields that one update method writes.
type Field int

const (
	FieldAttitude Field = iota
	FieldBattery
	FieldImu
	FieldPressure
	FieldRange
	FieldState
	FieldTrim
	FieldImageFlow
	FieldAck
	FieldMotor
	FieldAddress
	FieldTemperature
	fieldCount
)

var fieldNames = [fieldCount]string{
	"attitude", "battery", "imu", "pressure", "range", "state",
	"trim", "image_flow", "ack", "motor", "address", "temperature",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields lists every tracked field
var Fields = []Field{
	FieldAttitude, FieldBattery, FieldImu, FieldPressure, FieldRange, FieldState,
	FieldTrim, FieldImageFlow, FieldAck, FieldMotor, FieldAddress, FieldTemperature,
}

// lastSeen records when each field was last updated.
type lastSeen [fieldCount]time.Time

func (l *lastSeen) stamp(f Field, now time.Time) {
	l[f] = now
}
