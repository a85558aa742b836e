package metrics

import (
	"sync/atomic"

	"github.com/loaderkit/ipl/internal/metrics"
)

var hasDelegate atomic.Bool

// InstallDelegate registers the delegate set receiving instrumentation
// readings. Only the first call has any effect.
func InstallDelegate(del *Delegates) {
	if hasDelegate.Swap(true) {
		return
	}
	go metrics.Dispatch(del)
}

type Delegates struct {
	Decoder  DecoderInstrumentationDelegate
	Reader   ReaderInstrumentationDelegate
	Resolver ResolverInstrumentationDelegate
	Batch    BatchInstrumentationDelegate
}

func (d *Delegates) Dispatch(kind metrics.MetricKind, value float64) {
	switch kind {
	case metrics.DecoderCalls:
		d.Decoder.DecodeCalls(value)
	case metrics.DecoderLatency:
		d.Decoder.DecodeLatency(value)
	case metrics.DecoderInvalidHeaders:
		d.Decoder.InvalidHeaders(value)
	case metrics.DecoderObjectsDecoded:
		d.Decoder.ObjectsDecoded(value)
	case metrics.DecoderCarsDecoded:
		d.Decoder.CarsDecoded(value)
	case metrics.DecoderTruncatedRecords:
		d.Decoder.TruncatedRecords(value)
	case metrics.ReaderFilesParsed:
		d.Reader.FilesParsed(value)
	case metrics.ReaderRecordsParsed:
		d.Reader.RecordsParsed(value)
	case metrics.ReaderMalformedLines:
		d.Reader.MalformedLines(value)
	case metrics.ResolverResolutions:
		d.Resolver.Resolutions(value)
	case metrics.ResolverConflicts:
		d.Resolver.Conflicts(value)
	case metrics.ResolverDeferrals:
		d.Resolver.Deferrals(value)
	case metrics.ResolverUnresolved:
		d.Resolver.Unresolved(value)
	case metrics.BatchFilesConverted:
		d.Batch.FilesConverted(value)
	case metrics.BatchFileFailures:
		d.Batch.FileFailures(value)
	case metrics.BatchRunLatency:
		d.Batch.RunLatency(value)
	}
}

type DecoderInstrumentationDelegate interface {
	DecodeCalls(value float64)
	DecodeLatency(value float64)
	InvalidHeaders(value float64)
	ObjectsDecoded(value float64)
	CarsDecoded(value float64)
	TruncatedRecords(value float64)
}

type ReaderInstrumentationDelegate interface {
	FilesParsed(value float64)
	RecordsParsed(value float64)
	MalformedLines(value float64)
}

type ResolverInstrumentationDelegate interface {
	Resolutions(value float64)
	Conflicts(value float64)
	Deferrals(value float64)
	Unresolved(value float64)
}

type BatchInstrumentationDelegate interface {
	FilesConverted(value float64)
	FileFailures(value float64)
	RunLatency(value float64)
}
