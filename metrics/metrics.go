// Package metrics counts codec operations with Prometheus.
//
// Wrap a top-level codec to record how many values it encodes and decodes,
// per format, and how long each call takes:
//
//	col := metrics.NewCollector(prometheus.DefaultRegisterer, "game")
//	players := metrics.Wrap(col, "player", playerCodec)
//	data, err := json.Marshal(players, p)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/stream"
	"github.com/wippyai/tide/wire"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	directionEncode = "encode"
	directionDecode = "decode"

	// streamFormat labels operations of stream codecs.
	streamFormat = "stream"
)

// Collector holds the codec metrics of one namespace.
type Collector struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewCollector creates the codec metrics and registers them with reg.
// A nil reg creates unregistered metrics.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "codec_operations_total",
				Help:      "Total number of codec encode and decode calls",
			},
			[]string{"codec", "direction", "format", "status"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "codec_operation_duration_seconds",
				Help:      "Codec encode and decode duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"codec", "direction"},
		),
	}
}

func (c *Collector) observe(name, direction, format string, start time.Time, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	c.operationsTotal.WithLabelValues(name, direction, format, status).Inc()
	c.operationDuration.WithLabelValues(name, direction).Observe(time.Since(start).Seconds())
}

// Instrumented is a codec that reports its calls to a Collector.
type Instrumented[T any] struct {
	col   *Collector
	name  string
	inner codec.Codec[T]
}

// Wrap reports every Encode and Decode of c under name. The result is a
// codec.Wrapper: struct fields still treat a wrapped Optional or Default as
// omittable, and inline fields see the fields of a wrapped struct codec.
func Wrap[T any](col *Collector, name string, c codec.Codec[T]) *Instrumented[T] {
	return &Instrumented[T]{col: col, name: name, inner: c}
}

// Unwrap returns the wrapped codec.
func (c *Instrumented[T]) Unwrap() codec.Codec[T] {
	return c.inner
}

func (c *Instrumented[T]) Encode(t tide.Transcoder, v T) (any, error) {
	start := time.Now()
	n, err := c.inner.Encode(t, v)
	c.col.observe(c.name, directionEncode, t.Format(), start, err)
	return n, err
}

func (c *Instrumented[T]) Decode(t tide.Transcoder, n any) (T, error) {
	start := time.Now()
	v, err := c.inner.Decode(t, n)
	c.col.observe(c.name, directionDecode, t.Format(), start, err)
	return v, err
}

// FieldSet exposes the fields of the wrapped codec, uninstrumented.
func (c *Instrumented[T]) FieldSet() (codec.FieldSet[T], bool) {
	return codec.AsFieldSet(c.inner)
}

type instrumentedStream[T any] struct {
	col   *Collector
	name  string
	inner stream.Codec[T]
}

// WrapStream reports every Write and Read of c under name, with the format
// label "stream".
func WrapStream[T any](col *Collector, name string, c stream.Codec[T]) stream.Codec[T] {
	return &instrumentedStream[T]{col: col, name: name, inner: c}
}

func (c *instrumentedStream[T]) Write(buf *wire.Buffer, v T) error {
	start := time.Now()
	err := c.inner.Write(buf, v)
	c.col.observe(c.name, directionEncode, streamFormat, start, err)
	return err
}

func (c *instrumentedStream[T]) Read(buf *wire.Buffer) (T, error) {
	start := time.Now()
	v, err := c.inner.Read(buf)
	c.col.observe(c.name, directionDecode, streamFormat, start, err)
	return v, err
}
