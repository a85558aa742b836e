package internal

// Magic is the tag every binary placement file starts with.
var Magic = []byte("bnry")

const (
	// HeaderSize covers the magic tag plus the 18 integer fields that
	// follow it. Record data begins at the byte right after it.
	HeaderSize = 4 + 18*4

	ObjectInstanceSize = 40
	ParkedVehicleSize  = 48
)

var HeaderOffsets = struct {
	ItemInstanceCount   uint8
	UnknownCount1       uint8
	UnknownCount2       uint8
	UnknownCount3       uint8
	ParkedCarCount      uint8
	UnknownCount4       uint8
	OffsetItemInstances uint8
	Unused1             uint8
	OffsetUnknown1      uint8
	Unused2             uint8
	OffsetUnknown2      uint8
	OffsetUnknown3      uint8
	Unused3             uint8
	OffsetParkedCars    uint8
	Unused4             uint8
	OffsetUnknown4      uint8
	Unused5             uint8
	FileSize            uint8
}{
	ItemInstanceCount:   4,
	UnknownCount1:       8,
	UnknownCount2:       12,
	UnknownCount3:       16,
	ParkedCarCount:      20,
	UnknownCount4:       24,
	OffsetItemInstances: 28,
	Unused1:             32,
	OffsetUnknown1:      36,
	Unused2:             40,
	OffsetUnknown2:      44,
	OffsetUnknown3:      48,
	Unused3:             52,
	OffsetParkedCars:    56,
	Unused4:             60,
	OffsetUnknown4:      64,
	Unused5:             68,
	FileSize:            72,
}

var ObjectInstanceOffsets = struct {
	X        uint8
	Y        uint8
	Z        uint8
	RX       uint8
	RY       uint8
	RZ       uint8
	RW       uint8
	ModelID  uint8
	Interior uint8
	Flags    uint8
}{
	X:        0,
	Y:        4,
	Z:        8,
	RX:       12,
	RY:       16,
	RZ:       20,
	RW:       24,
	ModelID:  28,
	Interior: 32,
	Flags:    36,
}

var ParkedVehicleOffsets = struct {
	X         uint8
	Y         uint8
	Z         uint8
	Angle     uint8
	VehicleID uint8
	Flags     uint8
}{
	X:         0,
	Y:         4,
	Z:         8,
	Angle:     12,
	VehicleID: 16,
	Flags:     20,
}
