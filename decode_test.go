package ipl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iplerrors "github.com/loaderkit/ipl/errors"
	"github.com/loaderkit/ipl/internal"
)

// TestDecodeSimple decodes a buffer with a single object and a single parked
// car and checks every decoded field.
func TestDecodeSimple(t *testing.T) {
	obj := ObjectInstance{
		ModelID:  3458,
		Interior: 0,
		Flags:    -1,
		X:        1024.5, Y: -200.25, Z: 12.125,
		RX: 0.5, RY: -0.5, RZ: 0.25, RW: 1,
	}
	car := ParkedVehicle{
		X: 10.5, Y: 20.5, Z: 1.5, Angle: 90,
		VehicleID: 411,
		Flags:     [7]int32{-1, -1, 0, 0, 0, 0, 1},
	}
	buf := buildBinary([]ObjectInstance{obj}, []ParkedVehicle{car})

	f, err := Decode(buf, Config{})
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, int32(1), f.Header.ItemInstanceCount)
	assert.Equal(t, int32(1), f.Header.ParkedCarCount)
	assert.Equal(t, int32(internal.HeaderSize), f.Header.OffsetItemInstances)
	assert.False(t, f.Truncated)

	require.Len(t, f.Objects, 1)
	assert.Equal(t, obj, f.Objects[0])
	require.Len(t, f.Cars, 1)
	assert.Equal(t, car, f.Cars[0])
}

// TestDecodeInvalidMagic makes sure a buffer not starting with the magic tag
// is rejected outright, producing no records.
func TestDecodeInvalidMagic(t *testing.T) {
	buf := buildBinary(nil, nil)
	buf[0] = 'x'

	f, err := Decode(buf, Config{})
	require.Error(t, err)
	assert.Nil(t, f)
	assert.IsType(t, iplerrors.InvalidHeaderError{}, err)

	f, err = Decode([]byte{}, Config{})
	require.Error(t, err)
	assert.Nil(t, f)
}

// TestDecodeTruncatedObjects declares more records than the buffer holds and
// expects the walk to stop early, keeping what fit.
func TestDecodeTruncatedObjects(t *testing.T) {
	objects := []ObjectInstance{
		{ModelID: 100, Flags: -1, RW: 1},
		{ModelID: 101, Flags: -1, RW: 1},
		{ModelID: 102, Flags: -1, RW: 1},
	}
	buf := buildBinary(objects, nil)

	// Chop the last record in half.
	buf = buf[:len(buf)-internal.ObjectInstanceSize/2]

	f, err := Decode(buf, Config{})
	require.NoError(t, err)
	require.Len(t, f.Objects, 2)
	assert.Equal(t, int32(100), f.Objects[0].ModelID)
	assert.Equal(t, int32(101), f.Objects[1].ModelID)
	assert.True(t, f.Truncated)
}

// TestDecodeTruncatedCars mirrors the truncation policy for the parked-car
// array.
func TestDecodeTruncatedCars(t *testing.T) {
	cars := []ParkedVehicle{
		{VehicleID: 411},
		{VehicleID: 412},
	}
	buf := buildBinary(nil, cars)
	buf = buf[:len(buf)-internal.ParkedVehicleSize]

	f, err := Decode(buf, Config{})
	require.NoError(t, err)
	require.Len(t, f.Cars, 1)
	assert.Equal(t, int32(411), f.Cars[0].VehicleID)
	assert.True(t, f.Truncated)
}

// TestDecodeNoCarsSection checks that a zero parked-car count yields no car
// records at all.
func TestDecodeNoCarsSection(t *testing.T) {
	buf := buildBinary([]ObjectInstance{{ModelID: 7, Flags: -1}}, nil)
	f, err := Decode(buf, Config{})
	require.NoError(t, err)
	assert.Len(t, f.Objects, 1)
	assert.Empty(t, f.Cars)
}

func TestObjectInstanceLod(t *testing.T) {
	_, ok := ObjectInstance{Flags: -1}.Lod()
	assert.False(t, ok)

	lod, ok := ObjectInstance{Flags: 12}.Lod()
	assert.True(t, ok)
	assert.Equal(t, 12, lod)
}
