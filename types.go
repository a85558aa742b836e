package ipl

// Header is the fixed-size structure at the start of every binary placement
// file. Counts and offsets drive the record walks; the unknown and unused
// fields have no known semantics and are retained verbatim.
type Header struct {
	ItemInstanceCount   int32
	UnknownCount1       int32
	UnknownCount2       int32
	UnknownCount3       int32
	ParkedCarCount      int32
	UnknownCount4       int32
	OffsetItemInstances int32
	Unused1             int32
	OffsetUnknown1      int32
	Unused2             int32
	OffsetUnknown2      int32
	OffsetUnknown3      int32
	Unused3             int32
	OffsetParkedCars    int32
	Unused4             int32
	OffsetUnknown4      int32
	Unused5             int32
	FileSize            int32
}

// ObjectInstance is one placed object in the game world. Rotation is a
// quaternion. Flags carries an optional index into the same logical world
// file's instance list, naming this object's low-detail counterpart; -1 means
// no such counterpart exists.
type ObjectInstance struct {
	ModelID  int32
	Interior int32
	Flags    int32
	X        float32
	Y        float32
	Z        float32
	RX       float32
	RY       float32
	RZ       float32
	RW       float32
}

// Lod returns the low-detail index carried by Flags, and whether one is
// present.
func (o ObjectInstance) Lod() (int, bool) {
	if o.Flags < 0 {
		return 0, false
	}
	return int(o.Flags), true
}

// ParkedVehicle is one parked-car spawn. The seven flag fields are opaque and
// passed through verbatim.
type ParkedVehicle struct {
	X         float32
	Y         float32
	Z         float32
	Angle     float32
	VehicleID int32
	Flags     [7]int32
}

// BinaryFile is the result of decoding one binary placement file.
type BinaryFile struct {
	Header  Header
	Objects []ObjectInstance
	Cars    []ParkedVehicle

	// Truncated is set when either record array ended before its declared
	// count was satisfied.
	Truncated bool
}

// TextRecord is the uniform object shape produced by the text reader,
// regardless of whether the file was originally textual or a decoded binary.
type TextRecord struct {
	ModelID   int32
	ModelName string
	Interior  int32
	X         float64
	Y         float64
	Z         float64
	RX        float64
	RY        float64
	RZ        float64
	RW        float64

	// LodIndex is the 0-based position, within the same file's record
	// array, of this record's low-detail counterpart. Only meaningful when
	// HasLod is set.
	LodIndex int
	HasLod   bool
}

// TextFile is the result of parsing one text placement file.
type TextFile struct {
	Name    string
	Records []TextRecord

	// PendingLodRefs maps a low-detail record index to the index of the
	// high-detail record that references it. Resolution happens after the
	// whole record array is known, since a reference may point forward.
	PendingLodRefs map[int]int
}
