package codec

import (
	"fmt"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

const (
	unionKey   = "type"
	unionValue = "value"
)

// UnionCodec encodes a closed family of variants selected by a key.
// Struct variants are written into the same record as the key; other
// variants are nested under "value".
type UnionCodec[K comparable, T any] struct {
	key      Codec[K]
	keyOf    func(T) K
	variants map[K]Codec[T]
}

// Union returns a codec that dispatches on keyOf(v). Use Variant to adapt a
// codec for a concrete type to the union's interface type.
func Union[K comparable, T any](key Codec[K], keyOf func(T) K, variants map[K]Codec[T]) *UnionCodec[K, T] {
	return &UnionCodec[K, T]{key: key, keyOf: keyOf, variants: variants}
}

func (c *UnionCodec[K, T]) Encode(t tide.Transcoder, v T) (any, error) {
	k := c.keyOf(v)
	vc, ok := c.variants[k]
	if !ok {
		return nil, errors.InvalidDiscriminant(errors.PhaseEncode, []string{unionKey}, k)
	}
	b, err := t.EncodeMap()
	if err != nil {
		return nil, err
	}
	kn, err := c.key.Encode(t, k)
	if err != nil {
		return nil, errors.WithPath(errors.PhaseEncode, err, unionKey)
	}
	if err := b.Put(unionKey, kn); err != nil {
		return nil, err
	}
	if fs, ok := AsFieldSet(vc); ok {
		if err := fs.EncodeFields(t, b, v); err != nil {
			return nil, err
		}
		return b.Build()
	}
	vn, err := vc.Encode(t, v)
	if err != nil {
		return nil, errors.WithPath(errors.PhaseEncode, err, unionValue)
	}
	if err := b.Put(unionValue, vn); err != nil {
		return nil, err
	}
	return b.Build()
}

func (c *UnionCodec[K, T]) Decode(t tide.Transcoder, n any) (T, error) {
	var zero T
	m, err := t.DecodeMap(n)
	if err != nil {
		return zero, err
	}
	if !m.Has(unionKey) {
		return zero, errors.FieldMissing(errors.PhaseDecode, []string{unionKey}, unionKey)
	}
	kn, err := m.Get(unionKey)
	if err != nil {
		return zero, err
	}
	k, err := c.key.Decode(t, kn)
	if err != nil {
		return zero, errors.WithPath(errors.PhaseDecode, err, unionKey)
	}
	vc, ok := c.variants[k]
	if !ok {
		return zero, errors.InvalidDiscriminant(errors.PhaseDecode, []string{unionKey}, k)
	}
	if fs, ok := AsFieldSet(vc); ok {
		return fs.DecodeFields(t, m)
	}
	if !m.Has(unionValue) {
		return zero, errors.FieldMissing(errors.PhaseDecode, []string{unionValue}, unionValue)
	}
	vn, err := m.Get(unionValue)
	if err != nil {
		return zero, err
	}
	v, err := vc.Decode(t, vn)
	if err != nil {
		return zero, errors.WithPath(errors.PhaseDecode, err, unionValue)
	}
	return v, nil
}

// variantCodec adapts a Codec[V] to a Codec[T] where V implements T.
type variantCodec[T, V any] struct {
	inner Codec[V]
}

// Variant adapts c to the union interface type T.
func Variant[T, V any](c Codec[V]) Codec[T] {
	return variantCodec[T, V]{inner: c}
}

func (c variantCodec[T, V]) cast(v T) (V, error) {
	x, ok := any(v).(V)
	if !ok {
		return x, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), typeName[V]())
	}
	return x, nil
}

func (c variantCodec[T, V]) widen(v V) (T, error) {
	x, ok := any(v).(T)
	if !ok {
		return x, errors.TypeMismatch(errors.PhaseDecode, nil, typeName[V](), typeName[T]())
	}
	return x, nil
}

func (c variantCodec[T, V]) Encode(t tide.Transcoder, v T) (any, error) {
	x, err := c.cast(v)
	if err != nil {
		return nil, err
	}
	return c.inner.Encode(t, x)
}

func (c variantCodec[T, V]) Decode(t tide.Transcoder, n any) (T, error) {
	x, err := c.inner.Decode(t, n)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.widen(x)
}

func (c variantCodec[T, V]) FieldSet() (FieldSet[T], bool) {
	fs, ok := AsFieldSet(c.inner)
	if !ok {
		return nil, false
	}
	return variantFields[T, V]{c: c, fs: fs}, true
}

type variantFields[T, V any] struct {
	c  variantCodec[T, V]
	fs FieldSet[V]
}

func (f variantFields[T, V]) EncodeFields(t tide.Transcoder, b tide.MapBuilder, v T) error {
	x, err := f.c.cast(v)
	if err != nil {
		return err
	}
	return f.fs.EncodeFields(t, b, x)
}

func (f variantFields[T, V]) DecodeFields(t tide.Transcoder, m tide.VirtualMap) (T, error) {
	x, err := f.fs.DecodeFields(t, m)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.c.widen(x)
}
