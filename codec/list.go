package codec

import (
	"strconv"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

// maxPrealloc caps the capacity reserved from an untrusted length prefix.
const maxPrealloc = 1024

// ListCodec encodes a slice as an ordered sequence.
type ListCodec[T any] struct {
	inner Codec[T]
}

// List wraps c into a codec for slices of T.
func List[T any](c Codec[T]) *ListCodec[T] {
	return &ListCodec[T]{inner: c}
}

func (c *ListCodec[T]) Encode(t tide.Transcoder, v []T) (any, error) {
	b, err := t.EncodeList(len(v))
	if err != nil {
		return nil, err
	}
	for i, item := range v {
		n, err := c.inner.Encode(t, item)
		if err != nil {
			return nil, errors.WithPath(errors.PhaseEncode, err, strconv.Itoa(i))
		}
		if err := b.Add(n); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func (c *ListCodec[T]) Decode(t tide.Transcoder, n any) ([]T, error) {
	r, err := t.DecodeList(n)
	if err != nil {
		return nil, err
	}
	size := r.Len()
	out := make([]T, 0, min(size, maxPrealloc))
	for i := 0; i < size; i++ {
		item, err := r.Next()
		if err != nil {
			return nil, errors.WithPath(errors.PhaseDecode, err, strconv.Itoa(i))
		}
		v, err := c.inner.Decode(t, item)
		if err != nil {
			return nil, errors.WithPath(errors.PhaseDecode, err, strconv.Itoa(i))
		}
		out = append(out, v)
	}
	return out, nil
}
