package record

import "strings"

// RecordingMethod describes how a record was captured.
type RecordingMethod uint8

const (
	RecordingMethodUnknown RecordingMethod = iota
	RecordingMethodManualEntry
	RecordingMethodAutoRecorded
)

func (m RecordingMethod) String() string {
	switch m {
	case RecordingMethodManualEntry:
		return "manual_entry"
	case RecordingMethodAutoRecorded:
		return "auto_recorded"
	default:
		return "unknown"
	}
}

func ParseRecordingMethod(raw string) RecordingMethod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "manual_entry":
		return RecordingMethodManualEntry
	case "auto_recorded":
		return RecordingMethodAutoRecorded
	default:
		return RecordingMethodUnknown
	}
}

type DeviceType uint8

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypeWatch
	DeviceTypePhone
	DeviceTypeScale
	DeviceTypeRing
	DeviceTypeHeadMounted
	DeviceTypeFitnessBand
	DeviceTypeChestStrap
	DeviceTypeSmartDisplay
)

var deviceTypeNames = [...]string{
	DeviceTypeUnknown:      "unknown",
	DeviceTypeWatch:        "watch",
	DeviceTypePhone:        "phone",
	DeviceTypeScale:        "scale",
	DeviceTypeRing:         "ring",
	DeviceTypeHeadMounted:  "head_mounted",
	DeviceTypeFitnessBand:  "fitness_band",
	DeviceTypeChestStrap:   "chest_strap",
	DeviceTypeSmartDisplay: "smart_display",
}

func (d DeviceType) String() string {
	if int(d) >= len(deviceTypeNames) {
		return deviceTypeNames[DeviceTypeUnknown]
	}
	return deviceTypeNames[d]
}

func ParseDeviceType(raw string) DeviceType {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for idx, name := range deviceTypeNames {
		if name == normalized {
			return DeviceType(idx)
		}
	}
	return DeviceTypeUnknown
}

type Device struct {
	Type         DeviceType
	Manufacturer string
	Model        string
}

// Metadata is the provenance attached to every record. The zero value has an
// unknown recording method, an empty ID and no device.
type Metadata struct {
	method    RecordingMethod
	id        string
	device    Device
	hasDevice bool
}

func NewMetadata(method RecordingMethod) Metadata {
	return Metadata{method: method}
}

func ManualEntry() Metadata {
	return NewMetadata(RecordingMethodManualEntry)
}

func AutoRecorded(device Device) Metadata {
	return NewMetadata(RecordingMethodAutoRecorded).WithDevice(device)
}

func (m Metadata) RecordingMethod() RecordingMethod {
	return m.method
}

func (m Metadata) ID() string {
	return m.id
}

func (m Metadata) Device() (Device, bool) {
	return m.device, m.hasDevice
}

func (m Metadata) WithID(id string) Metadata {
	m.id = strings.TrimSpace(id)
	return m
}

func (m Metadata) WithDevice(device Device) Metadata {
	device.Manufacturer = strings.TrimSpace(device.Manufacturer)
	device.Model = strings.TrimSpace(device.Model)
	m.device = device
	m.hasDevice = true
	return m
}

func (m Metadata) WithoutDevice() Metadata {
	m.device = Device{}
	m.hasDevice = false
	return m
}
