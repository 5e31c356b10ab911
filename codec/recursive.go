package codec

import (
	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

// RecursiveCodec forwards to a codec that refers back to itself.
type RecursiveCodec[T any] struct {
	target Codec[T]
}

// Recursive builds a self-referential codec. factory receives a handle that
// forwards to the codec it returns; the handle must not be used to encode or
// decode before factory returns.
func Recursive[T any](factory func(self Codec[T]) Codec[T]) *RecursiveCodec[T] {
	r := &RecursiveCodec[T]{}
	r.target = factory(r)
	return r
}

func (c *RecursiveCodec[T]) Encode(t tide.Transcoder, v T) (any, error) {
	if c.target == nil {
		return nil, errors.NotInitialized(errors.PhaseEncode, "recursive codec for "+typeName[T]())
	}
	return c.target.Encode(t, v)
}

func (c *RecursiveCodec[T]) Decode(t tide.Transcoder, n any) (T, error) {
	if c.target == nil {
		var zero T
		return zero, errors.NotInitialized(errors.PhaseDecode, "recursive codec for "+typeName[T]())
	}
	return c.target.Decode(t, n)
}

func (c *RecursiveCodec[T]) FieldSet() (FieldSet[T], bool) {
	if c.target == nil {
		return nil, false
	}
	return AsFieldSet(c.target)
}
