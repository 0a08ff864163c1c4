// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

import "fmt"

var kindNames = map[MessageKind]string{
	KindPing:                   "PING",
	KindAck:                    "ACK",
	KindRequest:                "REQUEST",
	KindPasscode:               "PASSCODE",
	KindControl:                "CONTROL",
	KindCommand:                "COMMAND",
	KindCommand2:               "COMMAND2",
	KindCommand3:               "COMMAND3",
	KindLightMode:              "LIGHT_MODE",
	KindLightMode2:             "LIGHT_MODE2",
	KindLightModeCommand:       "LIGHT_MODE_COMMAND",
	KindLightModeCommandIr:     "LIGHT_MODE_COMMAND_IR",
	KindLightModeColor:         "LIGHT_MODE_COLOR",
	KindLightModeColor2:        "LIGHT_MODE_COLOR2",
	KindLightEvent:             "LIGHT_EVENT",
	KindLightEvent2:            "LIGHT_EVENT2",
	KindLightEventCommand:      "LIGHT_EVENT_COMMAND",
	KindLightEventCommandIr:    "LIGHT_EVENT_COMMAND_IR",
	KindLightEventColor:        "LIGHT_EVENT_COLOR",
	KindLightEventColor2:       "LIGHT_EVENT_COLOR2",
	KindLightModeDefaultColor:  "LIGHT_MODE_DEFAULT_COLOR",
	KindLightModeDefaultColor2: "LIGHT_MODE_DEFAULT_COLOR2",
	KindAddress:                "ADDRESS",
	KindState:                  "STATE",
	KindAttitude:               "ATTITUDE",
	KindGyroBias:               "GYRO_BIAS",
	KindTrimAll:                "TRIM_ALL",
	KindTrimFlight:             "TRIM_FLIGHT",
	KindTrimDrive:              "TRIM_DRIVE",
	KindCountFlight:            "COUNT_FLIGHT",
	KindCountDrive:             "COUNT_DRIVE",
	KindIrMessage:              "IR_MESSAGE",
	KindImu:                    "IMU",
	KindPressure:               "PRESSURE",
	KindImageFlow:              "IMAGE_FLOW",
	KindButton:                 "BUTTON",
	KindBattery:                "BATTERY",
	KindMotor:                  "MOTOR",
	KindTemperature:            "TEMPERATURE",
	KindRange:                  "RANGE",
	KindUpdateLookupTarget:     "UPDATE_LOOKUP_TARGET",
	KindUpdateInformation:      "UPDATE_INFORMATION",
	KindUpdate:                 "UPDATE",
	KindUpdateLocationCorrect:  "UPDATE_LOCATION_CORRECT",
	KindLinkState:              "LINK_STATE",
	KindLinkEvent:              "LINK_EVENT",
	KindLinkEventAddress:       "LINK_EVENT_ADDRESS",
	KindLinkRssi:               "LINK_RSSI",
	KindLinkDiscoveredDevice:   "LINK_DISCOVERED_DEVICE",
	KindLinkPasscode:           "LINK_PASSCODE",
	KindMessage:                "MESSAGE",
}

func (k MessageKind) String() string { return FormatKind(k) }

var (
	commandTypeNames = []string{
		"NONE", "MODE_VEHICLE", "COORDINATE", "TRIM", "FLIGHT_EVENT", "DRIVE_EVENT", "STOP",
		"RESET_HEADING", "CLEAR_GYRO_BIAS_AND_TRIM", "PAIRING_ACTIVATE", "PAIRING_DEACTIVATE",
		"TERMINATE_CONNECTION", "REQUEST", "LINK_MODE_BROADCAST", "LINK_SYSTEM_RESET",
		"LINK_DISCOVER_START", "LINK_DISCOVER_STOP", "LINK_CONNECT", "LINK_DISCONNECT",
		"LINK_RSSI_POLLING_START", "LINK_RSSI_POLLING_STOP",
	}
	modeSystemNames  = []string{"NONE", "BOOT", "WAIT", "READY", "RUNNING", "UPDATE", "UPDATE_COMPLETE", "ERROR"}
	modeVehicleNames = []string{"NONE", "FLIGHT_GUARD", "FLIGHT_NO_GUARD", "FLIGHT_FPV", "DRIVE", "DRIVE_FPV", "TEST"}
	flightModeNames  = []string{"NONE", "READY", "TAKE_OFF", "FLIGHT", "FLIP", "STOP", "LANDING", "REVERSE", "ACCIDENT", "ERROR"}
	driveModeNames   = []string{"NONE", "READY", "START", "DRIVE", "STOP", "ACCIDENT", "ERROR"}
	orientationNames = []string{"NONE", "NORMAL", "REVERSE_START", "REVERSED"}
	coordinateNames  = []string{"NONE", "ABSOLUTE", "RELATIVE"}
	lightModeNames   = []string{
		"NONE", "WAITING_FOR_CONNECT", "CONNECTED",
		"EYE_NONE", "EYE_HOLD", "EYE_MIX", "EYE_FLICKER", "EYE_FLICKER_DOUBLE", "EYE_DIMMING",
		"ARM_NONE", "ARM_HOLD", "ARM_MIX", "ARM_FLICKER", "ARM_FLICKER_DOUBLE", "ARM_DIMMING",
		"ARM_FLOW", "ARM_FLOW_REVERSE",
	}
	lightEventNames = []string{
		"NONE", "EYE_FLICKER", "EYE_FLICKER_DOUBLE", "EYE_DIMMING",
		"ARM_FLICKER", "ARM_FLICKER_DOUBLE", "ARM_DIMMING", "ARM_FLOW", "ARM_FLOW_REVERSE",
	}
	colorNames = []string{
		"BLACK", "WHITE", "RED", "ORANGE", "YELLOW", "LIME", "GREEN",
		"CYAN", "BLUE", "PURPLE", "MAGENTA", "PINK", "GRAY",
	}
	directionNames     = []string{"NONE", "LEFT", "FRONT", "RIGHT", "REAR", "TOP", "BOTTOM"}
	deviceTypeNames    = []string{"NONE", "DRONE_MAIN", "DRONE_SUB", "LINK", "TESTER"}
	imageTypeNames     = []string{"NONE", "IMAGE_A", "IMAGE_B"}
	updateModeNames    = []string{"NONE", "READY", "UPDATING", "COMPLETE", "FAILED"}
	linkModeNames      = []string{"NONE", "BOOT", "READY", "CONNECTING", "CONNECTED", "DISCONNECTING", "READY_TO_RESET"}
	linkBroadcastNames = []string{"NONE", "MUTE", "ACTIVE", "PASSIVE"}
	linkEventNames     = []string{
		"NONE", "SYSTEM_RESET", "INITIALIZED_RADIO", "SCAN_START", "SCAN_STOP", "FOUND_DEVICE",
		"CONNECTING", "CONNECTED", "CONNECTION_FAILED", "CONNECTION_FAILED_NO_DEVICES",
		"CONNECTION_FAILED_NOT_READY", "PAIRING_START", "PAIRING_SUCCESS", "PAIRING_FAILED",
		"BONDING_SUCCESS", "RSSI_POLLING_START", "RSSI_POLLING_STOP", "READY_TO_CONTROL",
		"DISCONNECTING", "DISCONNECTED",
	}
)

// enumName returns names[v], or "UNKNOWN(0xNN)" when v is out of the table.
func enumName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", v)
}

func (c CommandType) Valid() bool          { return int(c) < len(commandTypeNames) }
func (c CommandType) String() string       { return enumName(commandTypeNames, uint8(c)) }
func (m ModeSystem) Valid() bool           { return int(m) < len(modeSystemNames) }
func (m ModeSystem) String() string        { return enumName(modeSystemNames, uint8(m)) }
func (m ModeVehicle) Valid() bool          { return int(m) < len(modeVehicleNames) }
func (m ModeVehicle) String() string       { return enumName(modeVehicleNames, uint8(m)) }
func (f FlightMode) Valid() bool           { return int(f) < len(flightModeNames) }
func (f FlightMode) String() string        { return enumName(flightModeNames, uint8(f)) }
func (d DriveMode) Valid() bool            { return int(d) < len(driveModeNames) }
func (d DriveMode) String() string         { return enumName(driveModeNames, uint8(d)) }
func (o SensorOrientation) Valid() bool    { return int(o) < len(orientationNames) }
func (o SensorOrientation) String() string { return enumName(orientationNames, uint8(o)) }
func (c Coordinate) Valid() bool           { return int(c) < len(coordinateNames) }
func (c Coordinate) String() string        { return enumName(coordinateNames, uint8(c)) }
func (l LightModeType) Valid() bool        { return int(l) < len(lightModeNames) }
func (l LightModeType) String() string     { return enumName(lightModeNames, uint8(l)) }
func (l LightEventType) Valid() bool       { return int(l) < len(lightEventNames) }
func (l LightEventType) String() string    { return enumName(lightEventNames, uint8(l)) }
func (c Colors) Valid() bool               { return int(c) < len(colorNames) }
func (c Colors) String() string            { return enumName(colorNames, uint8(c)) }
func (d Direction) Valid() bool            { return int(d) < len(directionNames) }
func (d Direction) String() string         { return enumName(directionNames, uint8(d)) }
func (d DeviceType) Valid() bool           { return int(d) < len(deviceTypeNames) }
func (d DeviceType) String() string        { return enumName(deviceTypeNames, uint8(d)) }
func (i ImageType) Valid() bool            { return int(i) < len(imageTypeNames) }
func (i ImageType) String() string         { return enumName(imageTypeNames, uint8(i)) }
func (u UpdateMode) Valid() bool           { return int(u) < len(updateModeNames) }
func (u UpdateMode) String() string        { return enumName(updateModeNames, uint8(u)) }
func (l LinkMode) Valid() bool             { return int(l) < len(linkModeNames) }
func (l LinkMode) String() string          { return enumName(linkModeNames, uint8(l)) }
func (l LinkBroadcast) Valid() bool        { return int(l) < len(linkBroadcastNames) }
func (l LinkBroadcast) String() string     { return enumName(linkBroadcastNames, uint8(l)) }
func (l LinkEventType) Valid() bool        { return int(l) < len(linkEventNames) }
func (l LinkEventType) String() string     { return enumName(linkEventNames, uint8(l)) }
