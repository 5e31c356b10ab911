package codec

import (
	"go.uber.org/zap"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

// DefaultCodec substitutes a default value when decoding fails or a record
// field is missing. Keyed formats omit fields equal to the default.
//
// A failed decode does not rewind a binary cursor: the bytes the inner codec
// consumed stay consumed, so the fields after it keep their alignment.
type DefaultCodec[T any] struct {
	inner Codec[T]
	def   T
	eq    func(a, b T) bool
}

// Default wraps c with a fallback value compared by ==.
func Default[T comparable](c Codec[T], def T) *DefaultCodec[T] {
	return &DefaultCodec[T]{
		inner: c,
		def:   def,
		eq:    func(a, b T) bool { return a == b },
	}
}

// DefaultFunc wraps c with a fallback value compared by eq.
// A nil eq disables omission.
func DefaultFunc[T any](c Codec[T], def T, eq func(a, b T) bool) *DefaultCodec[T] {
	return &DefaultCodec[T]{inner: c, def: def, eq: eq}
}

// Value returns the default value.
func (c *DefaultCodec[T]) Value() T {
	return c.def
}

// Inner returns the wrapped codec.
func (c *DefaultCodec[T]) Inner() Codec[T] {
	return c.inner
}

func (c *DefaultCodec[T]) Encode(t tide.Transcoder, v T) (any, error) {
	return c.inner.Encode(t, v)
}

func (c *DefaultCodec[T]) Decode(t tide.Transcoder, n any) (T, error) {
	v, err := c.inner.Decode(t, n)
	if err != nil {
		Logger().Debug("decode failed, using default",
			zap.String("type", typeName[T]()),
			zap.String("format", t.Format()),
			zap.Error(err))
		return c.def, nil
	}
	return v, nil
}

func (c *DefaultCodec[T]) FieldSet() (FieldSet[T], bool) {
	return AsFieldSet(c.inner)
}

func (c *DefaultCodec[T]) omit(v T) bool {
	return c.eq != nil && c.eq(v, c.def)
}

func (c *DefaultCodec[T]) absent() T {
	return c.def
}

func (c *DefaultCodec[T]) encodeInline(t tide.Transcoder, b tide.MapBuilder, v T) error {
	fs, ok := AsFieldSet(c.inner)
	if !ok {
		return notStruct[T](errors.PhaseEncode)
	}
	return fs.EncodeFields(t, b, v)
}

func (c *DefaultCodec[T]) decodeInline(t tide.Transcoder, m tide.VirtualMap) (T, error) {
	fs, ok := AsFieldSet(c.inner)
	if !ok {
		var zero T
		return zero, notStruct[T](errors.PhaseDecode)
	}
	restore := tide.Mark(m)
	v, err := fs.DecodeFields(t, m)
	if err != nil {
		restore()
		Logger().Debug("inline decode failed, using default",
			zap.String("type", typeName[T]()),
			zap.Error(err))
		return c.def, nil
	}
	return v, nil
}
