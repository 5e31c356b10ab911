package codec

import (
	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

// OptionalCodec encodes a possibly absent value. A nil pointer is absent.
type OptionalCodec[T any] struct {
	inner Codec[T]
}

// Optional wraps c so that nil pointers encode as absent.
// The inner codec is never invoked for an absent value.
func Optional[T any](c Codec[T]) *OptionalCodec[T] {
	return &OptionalCodec[T]{inner: c}
}

// Inner returns the wrapped codec.
func (c *OptionalCodec[T]) Inner() Codec[T] {
	return c.inner
}

func (c *OptionalCodec[T]) Encode(t tide.Transcoder, v *T) (any, error) {
	if v == nil {
		return t.EncodeNone()
	}
	n, err := c.inner.Encode(t, *v)
	if err != nil {
		return nil, err
	}
	return t.EncodeSome(n)
}

func (c *OptionalCodec[T]) Decode(t tide.Transcoder, n any) (*T, error) {
	inner, present, err := t.DecodeOptional(n)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := c.inner.Decode(t, inner)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *OptionalCodec[T]) omit(v *T) bool {
	return v == nil
}

func (c *OptionalCodec[T]) absent() *T {
	return nil
}

// encodeInline writes the fields of a present value. Positional formats get a
// presence flag first since they cannot tell a missing field set apart.
func (c *OptionalCodec[T]) encodeInline(t tide.Transcoder, b tide.MapBuilder, v *T) error {
	fs, ok := AsFieldSet(c.inner)
	if !ok {
		return notStruct[T](errors.PhaseEncode)
	}
	if !b.Keyed() {
		flag, err := t.EncodeBool(v != nil)
		if err != nil {
			return err
		}
		if err := b.Put(presenceKey, flag); err != nil {
			return err
		}
	}
	if v == nil {
		return nil
	}
	return fs.EncodeFields(t, b, *v)
}

func (c *OptionalCodec[T]) decodeInline(t tide.Transcoder, m tide.VirtualMap) (*T, error) {
	fs, ok := AsFieldSet(c.inner)
	if !ok {
		return nil, notStruct[T](errors.PhaseDecode)
	}
	if !m.Keyed() {
		n, err := m.Get(presenceKey)
		if err != nil {
			return nil, err
		}
		present, err := t.DecodeBool(n)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		v, err := fs.DecodeFields(t, m)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	restore := tide.Mark(m)
	v, err := fs.DecodeFields(t, m)
	if err != nil {
		restore()
		return nil, nil
	}
	return &v, nil
}
