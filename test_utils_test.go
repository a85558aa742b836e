package ipl

import (
	"bytes"
	"encoding/binary"

	"github.com/loaderkit/ipl/internal"
)

// buildBinary assembles a well-formed binary placement buffer for the given
// records, with the object array starting right after the header and the car
// array following it.
func buildBinary(objects []ObjectInstance, cars []ParkedVehicle) []byte {
	buf := &bytes.Buffer{}
	buf.Write(internal.Magic)

	w := func(v any) { _ = binary.Write(buf, binary.LittleEndian, v) }

	offObjects := int32(internal.HeaderSize)
	offCars := offObjects + int32(len(objects)*internal.ObjectInstanceSize)
	fileSize := offCars + int32(len(cars)*internal.ParkedVehicleSize)

	w(int32(len(objects)))
	w(int32(0))
	w(int32(0))
	w(int32(0))
	w(int32(len(cars)))
	w(int32(0))
	w(offObjects)
	for i := 0; i < 6; i++ {
		w(int32(0))
	}
	w(offCars)
	for i := 0; i < 3; i++ {
		w(int32(0))
	}
	w(fileSize)

	for _, o := range objects {
		w(o.X)
		w(o.Y)
		w(o.Z)
		w(o.RX)
		w(o.RY)
		w(o.RZ)
		w(o.RW)
		w(o.ModelID)
		w(o.Interior)
		w(o.Flags)
	}
	for _, c := range cars {
		w(c.X)
		w(c.Y)
		w(c.Z)
		w(c.Angle)
		w(c.VehicleID)
		for _, f := range c.Flags {
			w(f)
		}
	}

	return buf.Bytes()
}
