package codec

import (
	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

// TransformCodec encodes S by projecting it onto a T handled by an inner codec.
type TransformCodec[T, S any] struct {
	inner Codec[T]
	to    func(T) (S, error)
	from  func(S) (T, error)
}

// Transform adapts inner to S. Decoding applies to after inner decodes,
// encoding applies from before inner encodes.
func Transform[T, S any](inner Codec[T], to func(T) (S, error), from func(S) (T, error)) *TransformCodec[T, S] {
	return &TransformCodec[T, S]{inner: inner, to: to, from: from}
}

// Convert is Transform for projections that cannot fail.
func Convert[T, S any](inner Codec[T], to func(T) S, from func(S) T) *TransformCodec[T, S] {
	return Transform(inner,
		func(v T) (S, error) { return to(v), nil },
		func(v S) (T, error) { return from(v), nil },
	)
}

func (c *TransformCodec[T, S]) Encode(t tide.Transcoder, v S) (any, error) {
	x, err := c.from(v)
	if err != nil {
		return nil, phaseError(errors.PhaseEncode, err, "transform "+typeName[S]())
	}
	return c.inner.Encode(t, x)
}

func (c *TransformCodec[T, S]) Decode(t tide.Transcoder, n any) (S, error) {
	x, err := c.inner.Decode(t, n)
	if err != nil {
		var zero S
		return zero, err
	}
	v, err := c.to(x)
	if err != nil {
		var zero S
		return zero, phaseError(errors.PhaseDecode, err, "transform "+typeName[T]())
	}
	return v, nil
}
