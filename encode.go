package ipl

import (
	"fmt"
	"strings"
)

// EncodeOptions tunes text rendition. Comment, when set, becomes a leading
// `#` comment line. Models defaults to the placeholder-only resolver.
type EncodeOptions struct {
	Comment string
	Models  ModelResolver
}

// EncodeText renders decoded records into the line-oriented placement
// dialect: an `inst` section with one line per object, and, when any parked
// vehicle is present, a `cars` section. Floats carry exactly six decimal
// digits.
func EncodeText(objects []ObjectInstance, cars []ParkedVehicle, opts EncodeOptions) []byte {
	models := opts.Models
	if models == nil {
		models = TableResolver(nil)
	}

	var b strings.Builder
	if opts.Comment != "" {
		fmt.Fprintf(&b, "# %s\n", opts.Comment)
	}

	b.WriteString("inst\n")
	for _, o := range objects {
		fmt.Fprintf(&b, "%d, %s, %d, %f, %f, %f, %f, %f, %f, %f, %d\n",
			o.ModelID, models.ModelName(o.ModelID), o.Interior,
			o.X, o.Y, o.Z, o.RX, o.RY, o.RZ, o.RW, o.Flags)
	}
	b.WriteString("end\n")

	if len(cars) > 0 {
		b.WriteString("cars\n")
		for _, c := range cars {
			fmt.Fprintf(&b, "%f, %f, %f, %f, %d, %d, %d, %d, %d, %d, %d, %d\n",
				c.X, c.Y, c.Z, c.Angle, c.VehicleID,
				c.Flags[0], c.Flags[1], c.Flags[2], c.Flags[3],
				c.Flags[4], c.Flags[5], c.Flags[6])
		}
		b.WriteString("end\n")
	}

	return []byte(b.String())
}
