package ipl

import (
	"bytes"

	"github.com/go-stdlog/stdlog"

	"github.com/loaderkit/ipl/errors"
	"github.com/loaderkit/ipl/internal"
	"github.com/loaderkit/ipl/internal/metrics"
)

// Decode parses a raw binary placement buffer into its header and record
// arrays. A magic mismatch fails the whole decode with InvalidHeaderError; a
// record array that ends before its declared count is truncated in place,
// keeping the records decoded so far.
func Decode(buf []byte, config Config) (*BinaryFile, error) {
	log := config.GetLogger().Named("decoder")
	metrics.Simple(metrics.DecoderCalls, 1)
	done := metrics.Measure(metrics.DecoderLatency)
	defer done()

	if len(buf) < internal.HeaderSize || !bytes.Equal(buf[:len(internal.Magic)], internal.Magic) {
		magic := buf
		if len(magic) > len(internal.Magic) {
			magic = magic[:len(internal.Magic)]
		}
		metrics.Simple(metrics.DecoderInvalidHeaders, 1)
		return nil, errors.InvalidHeaderError{Magic: magic}
	}

	f := &BinaryFile{Header: decodeHeader(buf)}
	f.Objects = decodeObjects(buf, &f.Header, f, log)
	if f.Header.ParkedCarCount > 0 {
		f.Cars = decodeCars(buf, &f.Header, f, log)
	}

	log.Debug("Decoded placement buffer",
		"objects", len(f.Objects),
		"cars", len(f.Cars),
		"truncated", f.Truncated,
	)
	return f, nil
}

func decodeHeader(buf []byte) Header {
	off := internal.HeaderOffsets
	return Header{
		ItemInstanceCount:   internal.ReadInt32(buf, int(off.ItemInstanceCount)),
		UnknownCount1:       internal.ReadInt32(buf, int(off.UnknownCount1)),
		UnknownCount2:       internal.ReadInt32(buf, int(off.UnknownCount2)),
		UnknownCount3:       internal.ReadInt32(buf, int(off.UnknownCount3)),
		ParkedCarCount:      internal.ReadInt32(buf, int(off.ParkedCarCount)),
		UnknownCount4:       internal.ReadInt32(buf, int(off.UnknownCount4)),
		OffsetItemInstances: internal.ReadInt32(buf, int(off.OffsetItemInstances)),
		Unused1:             internal.ReadInt32(buf, int(off.Unused1)),
		OffsetUnknown1:      internal.ReadInt32(buf, int(off.OffsetUnknown1)),
		Unused2:             internal.ReadInt32(buf, int(off.Unused2)),
		OffsetUnknown2:      internal.ReadInt32(buf, int(off.OffsetUnknown2)),
		OffsetUnknown3:      internal.ReadInt32(buf, int(off.OffsetUnknown3)),
		Unused3:             internal.ReadInt32(buf, int(off.Unused3)),
		OffsetParkedCars:    internal.ReadInt32(buf, int(off.OffsetParkedCars)),
		Unused4:             internal.ReadInt32(buf, int(off.Unused4)),
		OffsetUnknown4:      internal.ReadInt32(buf, int(off.OffsetUnknown4)),
		Unused5:             internal.ReadInt32(buf, int(off.Unused5)),
		FileSize:            internal.ReadInt32(buf, int(off.FileSize)),
	}
}

func decodeObjects(buf []byte, h *Header, f *BinaryFile, log stdlog.Logger) []ObjectInstance {
	count := int(h.ItemInstanceCount)
	start := int(h.OffsetItemInstances)
	rel := internal.ObjectInstanceOffsets

	var objects []ObjectInstance
	for i := 0; i < count; i++ {
		off := start + i*internal.ObjectInstanceSize
		if off < 0 || off+internal.ObjectInstanceSize > len(buf) {
			terr := errors.TruncatedRecordError{Section: "item instance", Index: i, Count: count}
			log.Warning("Truncated record array, keeping partial results", "err", terr.Error())
			metrics.Simple(metrics.DecoderTruncatedRecords, 1)
			f.Truncated = true
			break
		}
		objects = append(objects, ObjectInstance{
			X:        internal.ReadFloat32(buf, off+int(rel.X)),
			Y:        internal.ReadFloat32(buf, off+int(rel.Y)),
			Z:        internal.ReadFloat32(buf, off+int(rel.Z)),
			RX:       internal.ReadFloat32(buf, off+int(rel.RX)),
			RY:       internal.ReadFloat32(buf, off+int(rel.RY)),
			RZ:       internal.ReadFloat32(buf, off+int(rel.RZ)),
			RW:       internal.ReadFloat32(buf, off+int(rel.RW)),
			ModelID:  internal.ReadInt32(buf, off+int(rel.ModelID)),
			Interior: internal.ReadInt32(buf, off+int(rel.Interior)),
			Flags:    internal.ReadInt32(buf, off+int(rel.Flags)),
		})
	}
	metrics.Simple(metrics.DecoderObjectsDecoded, float64(len(objects)))
	return objects
}

func decodeCars(buf []byte, h *Header, f *BinaryFile, log stdlog.Logger) []ParkedVehicle {
	count := int(h.ParkedCarCount)
	start := int(h.OffsetParkedCars)
	rel := internal.ParkedVehicleOffsets

	var cars []ParkedVehicle
	for i := 0; i < count; i++ {
		off := start + i*internal.ParkedVehicleSize
		if off < 0 || off+internal.ParkedVehicleSize > len(buf) {
			terr := errors.TruncatedRecordError{Section: "parked car", Index: i, Count: count}
			log.Warning("Truncated record array, keeping partial results", "err", terr.Error())
			metrics.Simple(metrics.DecoderTruncatedRecords, 1)
			f.Truncated = true
			break
		}
		car := ParkedVehicle{
			X:         internal.ReadFloat32(buf, off+int(rel.X)),
			Y:         internal.ReadFloat32(buf, off+int(rel.Y)),
			Z:         internal.ReadFloat32(buf, off+int(rel.Z)),
			Angle:     internal.ReadFloat32(buf, off+int(rel.Angle)),
			VehicleID: internal.ReadInt32(buf, off+int(rel.VehicleID)),
		}
		for j := 0; j < len(car.Flags); j++ {
			car.Flags[j] = internal.ReadInt32(buf, off+int(rel.Flags)+j*4)
		}
		cars = append(cars, car)
	}
	metrics.Simple(metrics.DecoderCarsDecoded, float64(len(cars)))
	return cars
}
