package codec

import (
	"golang.org/x/exp/constraints"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

// EnumCodec encodes an integer enum as its ordinal in binary formats and as
// its constant name in text formats. Text formats match names exactly and
// reject numeric ordinals.
type EnumCodec[E constraints.Integer] struct {
	names []string
}

// Enum returns a codec for E whose constants are 0..len(names)-1.
func Enum[E constraints.Integer](names ...string) *EnumCodec[E] {
	return &EnumCodec[E]{names: names}
}

// Name returns the constant name of v, or "" when v is out of range.
func (c *EnumCodec[E]) Name(v E) string {
	if !c.valid(int64(v)) {
		return ""
	}
	return c.names[int(v)]
}

// Names returns the constant names in ordinal order.
func (c *EnumCodec[E]) Names() []string {
	return c.names
}

func (c *EnumCodec[E]) valid(i int64) bool {
	return i >= 0 && i < int64(len(c.names))
}

func (c *EnumCodec[E]) Encode(t tide.Transcoder, v E) (any, error) {
	if !c.valid(int64(v)) {
		return nil, errors.InvalidEnum(errors.PhaseEncode, nil, v, typeName[E]())
	}
	return t.EncodeEnum(int(v), c.names[int(v)])
}

func (c *EnumCodec[E]) Decode(t tide.Transcoder, n any) (E, error) {
	i, err := t.DecodeEnum(n, c.names)
	if err != nil {
		return 0, err
	}
	if !c.valid(int64(i)) {
		return 0, errors.InvalidEnum(errors.PhaseDecode, nil, i, typeName[E]())
	}
	return E(i), nil
}
