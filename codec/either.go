package codec

import (
	"go.uber.org/zap"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/either"
	"github.com/wippyai/tide/errors"
)

const (
	eitherRight = "right"
	eitherValue = "value"
)

// EitherCodec encodes one of two alternatives without a discriminator.
// Decoding tries Left first and falls back to Right, so when both could
// parse the same input the left alternative wins.
type EitherCodec[L, R any] struct {
	left  Codec[L]
	right Codec[R]
}

// Either returns a codec for either.Either[L, R].
func Either[L, R any](left Codec[L], right Codec[R]) *EitherCodec[L, R] {
	return &EitherCodec[L, R]{left: left, right: right}
}

func (c *EitherCodec[L, R]) Encode(t tide.Transcoder, v either.Either[L, R]) (any, error) {
	if r, ok := v.Right(); ok {
		return c.right.Encode(t, r)
	}
	l, _ := v.Left()
	return c.left.Encode(t, l)
}

func (c *EitherCodec[L, R]) Decode(t tide.Transcoder, n any) (either.Either[L, R], error) {
	restore := tide.Mark(n)
	l, err := c.left.Decode(t, n)
	if err == nil {
		return either.Left[L, R](l), nil
	}
	restore()
	Logger().Debug("left alternative failed, trying right",
		zap.String("format", t.Format()),
		zap.Error(err))
	r, err := c.right.Decode(t, n)
	if err != nil {
		return either.Either[L, R]{}, err
	}
	return either.Right[L](r), nil
}

// TaggedEitherCodec writes which alternative is present next to the value.
type TaggedEitherCodec[L, R any] struct {
	left  Codec[L]
	right Codec[R]
}

// TaggedEither returns a codec for either.Either[L, R] that records the side
// as a boolean "right" field followed by the "value".
func TaggedEither[L, R any](left Codec[L], right Codec[R]) *TaggedEitherCodec[L, R] {
	return &TaggedEitherCodec[L, R]{left: left, right: right}
}

func (c *TaggedEitherCodec[L, R]) Encode(t tide.Transcoder, v either.Either[L, R]) (any, error) {
	b, err := t.EncodeMap()
	if err != nil {
		return nil, err
	}
	flag, err := t.EncodeBool(v.IsRight())
	if err != nil {
		return nil, err
	}
	if err := b.Put(eitherRight, flag); err != nil {
		return nil, err
	}
	var n any
	if r, ok := v.Right(); ok {
		n, err = c.right.Encode(t, r)
	} else {
		l, _ := v.Left()
		n, err = c.left.Encode(t, l)
	}
	if err != nil {
		return nil, errors.WithPath(errors.PhaseEncode, err, eitherValue)
	}
	if err := b.Put(eitherValue, n); err != nil {
		return nil, err
	}
	return b.Build()
}

func (c *TaggedEitherCodec[L, R]) Decode(t tide.Transcoder, n any) (either.Either[L, R], error) {
	var zero either.Either[L, R]
	m, err := t.DecodeMap(n)
	if err != nil {
		return zero, err
	}
	if !m.Has(eitherRight) {
		return zero, errors.FieldMissing(errors.PhaseDecode, []string{eitherRight}, eitherRight)
	}
	fn, err := m.Get(eitherRight)
	if err != nil {
		return zero, err
	}
	isRight, err := t.DecodeBool(fn)
	if err != nil {
		return zero, errors.WithPath(errors.PhaseDecode, err, eitherRight)
	}
	// a null value is handed to the inner codec so optionals decode as absent
	var vn any
	if m.Has(eitherValue) {
		if vn, err = m.Get(eitherValue); err != nil {
			return zero, err
		}
	}
	if isRight {
		r, err := c.right.Decode(t, vn)
		if err != nil {
			return zero, errors.WithPath(errors.PhaseDecode, err, eitherValue)
		}
		return either.Right[L](r), nil
	}
	l, err := c.left.Decode(t, vn)
	if err != nil {
		return zero, errors.WithPath(errors.PhaseDecode, err, eitherValue)
	}
	return either.Left[L, R](l), nil
}
