package ipl

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/loaderkit/ipl/internal/metrics"
)

// ParseText parses a plaintext placement file into its object records. Every
// line is stripped of all whitespace before classification, spaces inside
// freeform fields included; this aggressive normalization is a quirk of the
// original reader and is preserved. Lines starting with `#` are comments;
// `inst` opens the object section and `end` closes it. Malformed lines are
// skipped one at a time, never failing the file.
func ParseText(name string, data []byte, config Config) *TextFile {
	log := config.GetLogger().Named("reader")
	f := &TextFile{
		Name:           name,
		PendingLodRefs: map[int]int{},
	}

	inObjects := false
	for _, raw := range strings.Split(string(data), "\n") {
		line := stripWhitespace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case line == "inst":
			inObjects = true
			continue
		case line == "end":
			inObjects = false
			continue
		case !inObjects:
			continue
		}

		rec, ok := parseObjectLine(line)
		if !ok {
			log.Debug("Skipping malformed object line", "file", name, "line", line)
			metrics.Simple(metrics.ReaderMalformedLines, 1)
			continue
		}

		idx := len(f.Records)
		if rec.HasLod {
			f.PendingLodRefs[rec.LodIndex] = idx
		}
		f.Records = append(f.Records, rec)
	}

	metrics.Simple(metrics.ReaderFilesParsed, 1)
	metrics.Simple(metrics.ReaderRecordsParsed, float64(len(f.Records)))
	return f
}

// TextFile projects a decoded binary file into the uniform record shape the
// resolver consumes, without a round trip through the text dialect. Pending
// LOD references are collected the same way the text reader collects them.
func (f *BinaryFile) TextFile(name string, models ModelResolver) *TextFile {
	if models == nil {
		models = TableResolver(nil)
	}
	t := &TextFile{
		Name:           name,
		PendingLodRefs: map[int]int{},
	}
	for idx, o := range f.Objects {
		rec := TextRecord{
			ModelID:   o.ModelID,
			ModelName: models.ModelName(o.ModelID),
			Interior:  o.Interior,
			X:         float64(o.X),
			Y:         float64(o.Y),
			Z:         float64(o.Z),
			RX:        float64(o.RX),
			RY:        float64(o.RY),
			RZ:        float64(o.RZ),
			RW:        float64(o.RW),
		}
		if lod, ok := o.Lod(); ok {
			rec.LodIndex = lod
			rec.HasLod = true
			t.PendingLodRefs[lod] = idx
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// stripWhitespace removes every whitespace rune from s, not just the leading
// and trailing runs.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func parseObjectLine(line string) (TextRecord, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 10 {
		return TextRecord{}, false
	}

	modelID, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return TextRecord{}, false
	}
	interior, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return TextRecord{}, false
	}

	var floats [7]float64
	for i := 0; i < 7; i++ {
		floats[i], err = strconv.ParseFloat(fields[3+i], 64)
		if err != nil {
			return TextRecord{}, false
		}
	}

	rec := TextRecord{
		ModelID:   int32(modelID),
		ModelName: fields[1],
		Interior:  int32(interior),
		X:         floats[0],
		Y:         floats[1],
		Z:         floats[2],
		RX:        floats[3],
		RY:        floats[4],
		RZ:        floats[5],
		RW:        floats[6],
	}

	if len(fields) > 10 {
		lod, err := strconv.ParseInt(fields[10], 10, 32)
		if err != nil {
			return TextRecord{}, false
		}
		if lod != -1 {
			rec.LodIndex = int(lod)
			rec.HasLod = true
		}
	}

	return rec, true
}
