package ipl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeTextObjects checks the exact textual shape of an object section:
// comma-space separation, six decimal digits, the flags column verbatim.
func TestEncodeTextObjects(t *testing.T) {
	objects := []ObjectInstance{
		{ModelID: 3458, Interior: 0, Flags: -1, X: 1024.5, Y: -200.25, Z: 12.125, RX: 0, RY: 0, RZ: 0.25, RW: 1},
		{ModelID: 9999, Interior: 2, Flags: 0, X: 1, Y: 2, Z: 3, RW: 1},
	}
	models := TableResolver{3458: "airoads01"}

	out := string(EncodeText(objects, nil, EncodeOptions{Models: models}))
	expected := "inst\n" +
		"3458, airoads01, 0, 1024.500000, -200.250000, 12.125000, 0.000000, 0.000000, 0.250000, 1.000000, -1\n" +
		"9999, unknown, 2, 1.000000, 2.000000, 3.000000, 0.000000, 0.000000, 0.000000, 1.000000, 0\n" +
		"end\n"
	assert.Equal(t, expected, out)
}

// TestEncodeTextCars checks that a cars section only appears when vehicles
// are present, and carries all seven opaque flags.
func TestEncodeTextCars(t *testing.T) {
	cars := []ParkedVehicle{
		{X: 10.5, Y: 20, Z: 1.5, Angle: 90, VehicleID: 411, Flags: [7]int32{-1, 0, 0, 0, 0, 0, 1}},
	}

	out := string(EncodeText(nil, cars, EncodeOptions{}))
	expected := "inst\nend\n" +
		"cars\n" +
		"10.500000, 20.000000, 1.500000, 90.000000, 411, -1, 0, 0, 0, 0, 0, 1\n" +
		"end\n"
	assert.Equal(t, expected, out)

	assert.Equal(t, "inst\nend\n", string(EncodeText(nil, nil, EncodeOptions{})))
}

func TestEncodeTextComment(t *testing.T) {
	out := string(EncodeText(nil, nil, EncodeOptions{Comment: "converted from a.bin"}))
	assert.Equal(t, "# converted from a.bin\ninst\nend\n", out)
}

// TestEncodeTextPlaceholderResolver exercises the legacy variant that never
// performs lookups.
func TestEncodeTextPlaceholderResolver(t *testing.T) {
	objects := []ObjectInstance{{ModelID: 3458, Flags: -1}}
	out := string(EncodeText(objects, nil, EncodeOptions{Models: PlaceholderResolver("mdl")}))
	assert.Contains(t, out, "3458, mdl, 0,")
}

// TestEncodeDecodeRoundTrip decodes a binary buffer, renders it to text,
// parses the text back, and checks that identity and float fields survive
// within the six-decimal serialization bound.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	objects := []ObjectInstance{
		{ModelID: 4611, Interior: 13, Flags: 1, X: 123.456789, Y: -9876.54321, Z: 0.000125, RX: 0.707107, RY: -0.707107, RZ: 0.5, RW: 0.5},
		{ModelID: 4612, Interior: 0, Flags: -1, X: -1, Y: 2, Z: -3, RW: 1},
	}
	buf := buildBinary(objects, nil)

	f, err := Decode(buf, Config{})
	require.NoError(t, err)

	text := EncodeText(f.Objects, f.Cars, EncodeOptions{})
	parsed := ParseText("roundtrip.ipl", text, Config{})
	require.Len(t, parsed.Records, len(objects))

	for i, rec := range parsed.Records {
		obj := f.Objects[i]
		assert.Equal(t, obj.ModelID, rec.ModelID)
		assert.Equal(t, obj.Interior, rec.Interior)
		assert.InDelta(t, float64(obj.X), rec.X, 1e-6)
		assert.InDelta(t, float64(obj.Y), rec.Y, 1e-6)
		assert.InDelta(t, float64(obj.Z), rec.Z, 1e-6)
		assert.InDelta(t, float64(obj.RX), rec.RX, 1e-6)
		assert.InDelta(t, float64(obj.RY), rec.RY, 1e-6)
		assert.InDelta(t, float64(obj.RZ), rec.RZ, 1e-6)
		assert.InDelta(t, float64(obj.RW), rec.RW, 1e-6)
	}

	lod, ok := objects[0].Lod()
	require.True(t, ok)
	assert.Equal(t, 1, lod)
	assert.True(t, parsed.Records[0].HasLod)
	assert.Equal(t, 1, parsed.Records[0].LodIndex)
	assert.False(t, parsed.Records[1].HasLod)

}
