// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wire

// Payload sizes - Firmware update
const (
	UpdateLookupTargetSize    = 1
	UpdateInformationSize     = 8
	UpdateBlockSize           = 16
	UpdateSize                = 2 + UpdateBlockSize
	UpdateLocationCorrectSize = 2
)

// UpdateLookupTarget asks which device will receive firmware.
type UpdateLookupTarget struct {
	Device DeviceType
}

func (UpdateLookupTarget) Kind() MessageKind { return KindUpdateLookupTarget }
func (UpdateLookupTarget) Size() int         { return UpdateLookupTargetSize }
func (u UpdateLookupTarget) Encode() []byte  { return []byte{uint8(u.Device)} }

func (u *UpdateLookupTarget) Decode(b []byte) error {
	if err := checkSize(KindUpdateLookupTarget, b, UpdateLookupTargetSize); err != nil {
		return err
	}
	if !DeviceType(b[0]).Valid() {
		return enumError(KindUpdateLookupTarget, "device", b[0])
	}
	u.Device = DeviceType(b[0])
	return nil
}

// UpdateInformation describes the firmware image on a device.
type UpdateInformation struct {
	Mode    UpdateMode
	Device  DeviceType
	Image   ImageType
	Version uint16
	Year    uint8
	Month   uint8
	Day     uint8
}

func (UpdateInformation) Kind() MessageKind { return KindUpdateInformation }
func (UpdateInformation) Size() int         { return UpdateInformationSize }

func (u UpdateInformation) Encode() []byte {
	w := newWriter(UpdateInformationSize)
	w.u8(uint8(u.Mode))
	w.u8(uint8(u.Device))
	w.u8(uint8(u.Image))
	w.u16(u.Version)
	w.u8(u.Year)
	w.u8(u.Month)
	w.u8(u.Day)
	return w.bytes()
}

func (u *UpdateInformation) Decode(b []byte) error {
	if err := checkSize(KindUpdateInformation, b, UpdateInformationSize); err != nil {
		return err
	}
	switch {
	case !UpdateMode(b[0]).Valid():
		return enumError(KindUpdateInformation, "mode", b[0])
	case !DeviceType(b[1]).Valid():
		return enumError(KindUpdateInformation, "device", b[1])
	case !ImageType(b[2]).Valid():
		return enumError(KindUpdateInformation, "image", b[2])
	}
	r := newReader(b)
	*u = UpdateInformation{
		Mode:    UpdateMode(r.u8()),
		Device:  DeviceType(r.u8()),
		Image:   ImageType(r.u8()),
		Version: r.u16(),
		Year:    r.u8(),
		Month:   r.u8(),
		Day:     r.u8(),
	}
	return nil
}

// Update carries one 16-byte firmware block and its index.
//
// The declared size is always 18 bytes. Short blocks are a decode failure,
// not a partial update.
type Update struct {
	Index uint16
	Data  [UpdateBlockSize]byte
}

func (Update) Kind() MessageKind { return KindUpdate }
func (Update) Size() int         { return UpdateSize }

func (u Update) Encode() []byte {
	w := newWriter(UpdateSize)
	w.u16(u.Index)
	w.raw(u.Data[:])
	return w.bytes()
}

func (u *Update) Decode(b []byte) error {
	if err := checkSize(KindUpdate, b, UpdateSize); err != nil {
		return err
	}
	r := newReader(b[:UpdateSize])
	var v Update
	v.Index = r.u16()
	r.raw(v.Data[:])
	*u = v
	return nil
}

// UpdateLocationCorrect tells the sender which block to send next.
type UpdateLocationCorrect struct {
	NextIndex uint16
}

func (UpdateLocationCorrect) Kind() MessageKind { return KindUpdateLocationCorrect }
func (UpdateLocationCorrect) Size() int         { return UpdateLocationCorrectSize }

func (u UpdateLocationCorrect) Encode() []byte {
	w := newWriter(UpdateLocationCorrectSize)
	w.u16(u.NextIndex)
	return w.bytes()
}

func (u *UpdateLocationCorrect) Decode(b []byte) error {
	if err := checkSize(KindUpdateLocationCorrect, b, UpdateLocationCorrectSize); err != nil {
		return err
	}
	u.NextIndex = newReader(b).u16()
	return nil
}
