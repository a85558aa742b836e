package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type MetricKind uint8

const (
	DecoderCalls MetricKind = iota
	DecoderLatency
	DecoderInvalidHeaders
	DecoderObjectsDecoded
	DecoderCarsDecoded
	DecoderTruncatedRecords

	ReaderFilesParsed
	ReaderRecordsParsed
	ReaderMalformedLines

	ResolverResolutions
	ResolverConflicts
	ResolverDeferrals
	ResolverUnresolved

	BatchFilesConverted
	BatchFileFailures
	BatchRunLatency
)

var metricsCh = make(chan *metricReading, 512)
var readingsPool = sync.Pool{
	New: func() any {
		return &metricReading{}
	},
}
var dispatching atomic.Bool

// Simple emits a single reading. Readings are dropped until a delegate is
// installed through the public metrics package.
func Simple(kind MetricKind, value float64) {
	if !dispatching.Load() {
		return
	}
	r := readingsPool.Get().(*metricReading)
	r.Kind = kind
	r.Value = value
	metricsCh <- r
}

// Measure returns a closure that emits the elapsed time, in microseconds,
// between the Measure call and its own invocation.
func Measure(kind MetricKind) func() {
	start := time.Now()
	return func() {
		Simple(kind, float64(time.Since(start).Microseconds()))
	}
}

type metricReading struct {
	Kind  MetricKind
	Value float64
}

type delegate interface {
	Dispatch(kind MetricKind, value float64)
}

func Dispatch(del delegate) {
	dispatching.Store(true)
	for msg := range metricsCh {
		del.Dispatch(msg.Kind, msg.Value)
		readingsPool.Put(msg)
	}
}
