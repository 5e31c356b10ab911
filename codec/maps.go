package codec

import (
	"cmp"
	"maps"
	"slices"
	"strconv"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

const (
	entryKey   = "key"
	entryValue = "value"
)

// MapCodec encodes a Go map as a sequence of key/value entries.
// When decoding, a repeated key keeps the last value.
type MapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
	cmp   func(a, b K) int
}

// Map returns a codec for map[K]V. Entries are written in map iteration order,
// so binary output may differ between calls; use OrderedMap for stable bytes.
func Map[K comparable, V any](k Codec[K], v Codec[V]) *MapCodec[K, V] {
	return &MapCodec[K, V]{key: k, value: v}
}

// OrderedMap is like Map but writes entries sorted by key, so equal maps
// always encode to equal bytes.
func OrderedMap[K cmp.Ordered, V any](k Codec[K], v Codec[V]) *MapCodec[K, V] {
	return &MapCodec[K, V]{key: k, value: v, cmp: cmp.Compare[K]}
}

func (c *MapCodec[K, V]) Encode(t tide.Transcoder, m map[K]V) (any, error) {
	b, err := t.EncodeList(len(m))
	if err != nil {
		return nil, err
	}
	keys := slices.Collect(maps.Keys(m))
	if c.cmp != nil {
		slices.SortFunc(keys, c.cmp)
	}
	for i, k := range keys {
		n, err := c.encodeEntry(t, k, m[k])
		if err != nil {
			return nil, errors.WithPath(errors.PhaseEncode, err, strconv.Itoa(i))
		}
		if err := b.Add(n); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func (c *MapCodec[K, V]) encodeEntry(t tide.Transcoder, k K, v V) (any, error) {
	entry, err := t.EncodeMap()
	if err != nil {
		return nil, err
	}
	kn, err := c.key.Encode(t, k)
	if err != nil {
		return nil, errors.WithPath(errors.PhaseEncode, err, entryKey)
	}
	if err := entry.Put(entryKey, kn); err != nil {
		return nil, err
	}
	vn, err := c.value.Encode(t, v)
	if err != nil {
		return nil, errors.WithPath(errors.PhaseEncode, err, entryValue)
	}
	if err := entry.Put(entryValue, vn); err != nil {
		return nil, err
	}
	return entry.Build()
}

func (c *MapCodec[K, V]) Decode(t tide.Transcoder, n any) (map[K]V, error) {
	r, err := t.DecodeList(n)
	if err != nil {
		return nil, err
	}
	size := r.Len()
	out := make(map[K]V, min(size, maxPrealloc))
	for i := 0; i < size; i++ {
		item, err := r.Next()
		if err != nil {
			return nil, errors.WithPath(errors.PhaseDecode, err, strconv.Itoa(i))
		}
		k, v, err := c.decodeEntry(t, item)
		if err != nil {
			return nil, errors.WithPath(errors.PhaseDecode, err, strconv.Itoa(i))
		}
		out[k] = v
	}
	return out, nil
}

func (c *MapCodec[K, V]) decodeEntry(t tide.Transcoder, n any) (K, V, error) {
	var (
		k K
		v V
	)
	m, err := t.DecodeMap(n)
	if err != nil {
		return k, v, err
	}
	if !m.Has(entryKey) {
		return k, v, errors.FieldMissing(errors.PhaseDecode, []string{entryKey}, entryKey)
	}
	kn, err := m.Get(entryKey)
	if err != nil {
		return k, v, err
	}
	if k, err = c.key.Decode(t, kn); err != nil {
		return k, v, errors.WithPath(errors.PhaseDecode, err, entryKey)
	}
	if !m.Has(entryValue) {
		if a, ok := lookThrough[absentor[V]](c.value); ok {
			return k, a.absent(), nil
		}
		return k, v, errors.FieldMissing(errors.PhaseDecode, []string{entryValue}, entryValue)
	}
	vn, err := m.Get(entryValue)
	if err != nil {
		return k, v, err
	}
	if v, err = c.value.Decode(t, vn); err != nil {
		return k, v, errors.WithPath(errors.PhaseDecode, err, entryValue)
	}
	return k, v, nil
}
