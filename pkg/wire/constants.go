// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package wire provides the message catalog and binary codec for the drone link protocol.
//
// Every frame body is a fixed-layout little-endian record identified by a one byte
// MessageKind. This package encodes and decodes those records and the two byte frame
// header that precedes them. It does no I/O; framing on a byte stream lives in
// package link.
package wire

// Header layout
const (
	HeaderSize    = 2
	MaxBodyLength = 0xFF
)

// MessageKind identifies the payload carried by a frame.
type MessageKind uint8

// Message kinds - System
const (
	KindPing     MessageKind = 0x01
	KindAck      MessageKind = 0x02
	KindRequest  MessageKind = 0x04
	KindPasscode MessageKind = 0x05
)

// Message kinds - Control and commands
const (
	KindControl  MessageKind = 0x10
	KindCommand  MessageKind = 0x11
	KindCommand2 MessageKind = 0x12
	KindCommand3 MessageKind = 0x13
)

// Message kinds - Lights
const (
	KindLightMode              MessageKind = 0x20
	KindLightMode2             MessageKind = 0x21
	KindLightModeCommand       MessageKind = 0x22
	KindLightModeCommandIr     MessageKind = 0x23
	KindLightModeColor         MessageKind = 0x24
	KindLightModeColor2        MessageKind = 0x25
	KindLightEvent             MessageKind = 0x26
	KindLightEvent2            MessageKind = 0x27
	KindLightEventCommand      MessageKind = 0x28
	KindLightEventCommandIr    MessageKind = 0x29
	KindLightEventColor        MessageKind = 0x2A
	KindLightEventColor2       MessageKind = 0x2B
	KindLightModeDefaultColor  MessageKind = 0x2C
	KindLightModeDefaultColor2 MessageKind = 0x2D
)

// Message kinds - Vehicle state
const (
	KindAddress     MessageKind = 0x30
	KindState       MessageKind = 0x31
	KindAttitude    MessageKind = 0x32
	KindGyroBias    MessageKind = 0x33
	KindTrimAll     MessageKind = 0x34
	KindTrimFlight  MessageKind = 0x35
	KindTrimDrive   MessageKind = 0x36
	KindCountFlight MessageKind = 0x37
	KindCountDrive  MessageKind = 0x38
)

// Message kinds - Sensors
const (
	KindIrMessage   MessageKind = 0x40
	KindImu         MessageKind = 0x41
	KindPressure    MessageKind = 0x42
	KindImageFlow   MessageKind = 0x43
	KindButton      MessageKind = 0x44
	KindBattery     MessageKind = 0x45
	KindMotor       MessageKind = 0x46
	KindTemperature MessageKind = 0x47
	KindRange       MessageKind = 0x48
)

// Message kinds - Firmware update
const (
	KindUpdateLookupTarget    MessageKind = 0x90
	KindUpdateInformation     MessageKind = 0x91
	KindUpdate                MessageKind = 0x92
	KindUpdateLocationCorrect MessageKind = 0x93
)

// Message kinds - Link module
const (
	KindLinkState            MessageKind = 0xE0
	KindLinkEvent            MessageKind = 0xE1
	KindLinkEventAddress     MessageKind = 0xE2
	KindLinkRssi             MessageKind = 0xE3
	KindLinkDiscoveredDevice MessageKind = 0xE4
	KindLinkPasscode         MessageKind = 0xE5
	KindMessage              MessageKind = 0xF0
)

// Kinds lists every known message kind in code order.
var Kinds = []MessageKind{
	KindPing, KindAck, KindRequest, KindPasscode,
	KindControl, KindCommand, KindCommand2, KindCommand3,
	KindLightMode, KindLightMode2, KindLightModeCommand, KindLightModeCommandIr,
	KindLightModeColor, KindLightModeColor2, KindLightEvent, KindLightEvent2,
	KindLightEventCommand, KindLightEventCommandIr, KindLightEventColor, KindLightEventColor2,
	KindLightModeDefaultColor, KindLightModeDefaultColor2,
	KindAddress, KindState, KindAttitude, KindGyroBias, KindTrimAll,
	KindTrimFlight, KindTrimDrive, KindCountFlight, KindCountDrive,
	KindIrMessage, KindImu, KindPressure, KindImageFlow, KindButton,
	KindBattery, KindMotor, KindTemperature, KindRange,
	KindUpdateLookupTarget, KindUpdateInformation, KindUpdate, KindUpdateLocationCorrect,
	KindLinkState, KindLinkEvent, KindLinkEventAddress, KindLinkRssi,
	KindLinkDiscoveredDevice, KindLinkPasscode, KindMessage,
}

// Valid reports whether k is a known message kind.
func (k MessageKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseMessageKind converts a raw byte to a MessageKind, rejecting unknown codes.
func ParseMessageKind(b byte) (MessageKind, error) {
	k := MessageKind(b)
	if !k.Valid() {
		return 0, &DecodeError{Field: "kind", Value: b, Err: ErrUnknownEnumValue}
	}
	return k, nil
}

// CommandType selects the action of a Command payload.
type CommandType uint8

// Command type values
const (
	CommandNone CommandType = iota
	CommandModeVehicle
	CommandCoordinate
	CommandTrim
	CommandFlightEvent
	CommandDriveEvent
	CommandStop
	CommandResetHeading
	CommandClearGyroBiasAndTrim
	CommandPairingActivate
	CommandPairingDeactivate
	CommandTerminateConnection
	CommandRequest
	CommandLinkModeBroadcast
	CommandLinkSystemReset
	CommandLinkDiscoverStart
	CommandLinkDiscoverStop
	CommandLinkConnect
	CommandLinkDisconnect
	CommandLinkRssiPollingStart
	CommandLinkRssiPollingStop
)

// ModeSystem is the firmware's system mode.
type ModeSystem uint8

// System mode values
const (
	SystemNone ModeSystem = iota
	SystemBoot
	SystemWait
	SystemReady
	SystemRunning
	SystemUpdate
	SystemUpdateComplete
	SystemError
)

// ModeVehicle is the configured vehicle mode.
type ModeVehicle uint8

// Vehicle mode values
const (
	VehicleNone ModeVehicle = iota
	VehicleFlightGuard
	VehicleFlightNoGuard
	VehicleFlightFPV
	VehicleDrive
	VehicleDriveFPV
	VehicleTest
)

// FlightMode is the flight controller's state.
type FlightMode uint8

// Flight mode values
const (
	FlightNone FlightMode = iota
	FlightReady
	FlightTakeOff
	FlightFlight
	FlightFlip
	FlightStop
	FlightLanding
	FlightReverse
	FlightAccident
	FlightError
)

// DriveMode is the drive controller's state.
type DriveMode uint8

// Drive mode values
const (
	DriveNone DriveMode = iota
	DriveReady
	DriveStart
	DriveDrive
	DriveStop
	DriveAccident
	DriveError
)

// SensorOrientation reports whether the vehicle is upright.
type SensorOrientation uint8

// Sensor orientation values
const (
	OrientationNone SensorOrientation = iota
	OrientationNormal
	OrientationReverseStart
	OrientationReversed
)

// Coordinate is the heading reference used for control input.
type Coordinate uint8

// Coordinate values
const (
	CoordinateNone Coordinate = iota
	CoordinateAbsolute
	CoordinateRelative
)

// LightModeType selects a persistent LED pattern.
type LightModeType uint8

// Light mode values
const (
	LightModeNone LightModeType = iota
	LightModeWaitingForConnect
	LightModeConnected
	LightModeEyeNone
	LightModeEyeHold
	LightModeEyeMix
	LightModeEyeFlicker
	LightModeEyeFlickerDouble
	LightModeEyeDimming
	LightModeArmNone
	LightModeArmHold
	LightModeArmMix
	LightModeArmFlicker
	LightModeArmFlickerDouble
	LightModeArmDimming
	LightModeArmFlow
	LightModeArmFlowReverse
)

// LightEventType selects a transient LED pattern.
type LightEventType uint8

// Light event values
const (
	LightEventNone LightEventType = iota
	LightEventEyeFlicker
	LightEventEyeFlickerDouble
	LightEventEyeDimming
	LightEventArmFlicker
	LightEventArmFlickerDouble
	LightEventArmDimming
	LightEventArmFlow
	LightEventArmFlowReverse
)

// Colors is a named LED palette entry.
type Colors uint8

// Palette values
const (
	ColorBlack Colors = iota
	ColorWhite
	ColorRed
	ColorOrange
	ColorYellow
	ColorLime
	ColorGreen
	ColorCyan
	ColorBlue
	ColorPurple
	ColorMagenta
	ColorPink
	ColorGray
)

// Direction identifies an IR transceiver.
type Direction uint8

// Direction values
const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionFront
	DirectionRight
	DirectionRear
	DirectionTop
	DirectionBottom
)

// DeviceType identifies a firmware update target.
type DeviceType uint8

// Device type values
const (
	DeviceNone DeviceType = iota
	DeviceDroneMain
	DeviceDroneSub
	DeviceLink
	DeviceTester
)

// ImageType identifies a firmware image slot.
type ImageType uint8

// Image type values
const (
	ImageNone ImageType = iota
	ImageA
	ImageB
)

// UpdateMode is the state of a firmware update.
type UpdateMode uint8

// Update mode values
const (
	UpdateNone UpdateMode = iota
	UpdateReady
	UpdateUpdating
	UpdateComplete
	UpdateFailed
)

// LinkMode is the link module's connection state.
type LinkMode uint8

// Link mode values
const (
	LinkModeNone LinkMode = iota
	LinkModeBoot
	LinkModeReady
	LinkModeConnecting
	LinkModeConnected
	LinkModeDisconnecting
	LinkModeReadyToReset
)

// LinkBroadcast is the link module's broadcast setting.
type LinkBroadcast uint8

// Link broadcast values
const (
	LinkBroadcastNone LinkBroadcast = iota
	LinkBroadcastMute
	LinkBroadcastActive
	LinkBroadcastPassive
)

// LinkEventType is an event reported by the link module.
type LinkEventType uint8

// Link event values
const (
	LinkEventNone LinkEventType = iota
	LinkEventSystemReset
	LinkEventInitializedRadio
	LinkEventScanStart
	LinkEventScanStop
	LinkEventFoundDevice
	LinkEventConnecting
	LinkEventConnected
	LinkEventConnectionFailed
	LinkEventConnectionFailedNoDevices
	LinkEventConnectionFailedNotReady
	LinkEventPairingStart
	LinkEventPairingSuccess
	LinkEventPairingFailed
	LinkEventBondingSuccess
	LinkEventRssiPollingStart
	LinkEventRssiPollingStop
	LinkEventReadyToControl
	LinkEventDisconnecting
	LinkEventDisconnected
)
