package codec

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/wire"
)

// primitive maps a value straight onto one Transcoder method pair.
type primitive[T any] struct {
	enc func(tide.Transcoder, T) (any, error)
	dec func(tide.Transcoder, any) (T, error)
}

func (p primitive[T]) Encode(t tide.Transcoder, v T) (any, error) {
	return p.enc(t, v)
}

func (p primitive[T]) Decode(t tide.Transcoder, n any) (T, error) {
	return p.dec(t, n)
}

var (
	Bool    Codec[bool]      = primitive[bool]{tide.Transcoder.EncodeBool, tide.Transcoder.DecodeBool}
	Byte    Codec[int8]      = primitive[int8]{tide.Transcoder.EncodeByte, tide.Transcoder.DecodeByte}
	Short   Codec[int16]     = primitive[int16]{tide.Transcoder.EncodeShort, tide.Transcoder.DecodeShort}
	Int     Codec[int32]     = primitive[int32]{tide.Transcoder.EncodeInt, tide.Transcoder.DecodeInt}
	VarInt  Codec[int32]     = primitive[int32]{tide.Transcoder.EncodeVarInt, tide.Transcoder.DecodeVarInt}
	Long    Codec[int64]     = primitive[int64]{tide.Transcoder.EncodeLong, tide.Transcoder.DecodeLong}
	VarLong Codec[int64]     = primitive[int64]{tide.Transcoder.EncodeVarLong, tide.Transcoder.DecodeVarLong}
	Float   Codec[float32]   = primitive[float32]{tide.Transcoder.EncodeFloat, tide.Transcoder.DecodeFloat}
	Double  Codec[float64]   = primitive[float64]{tide.Transcoder.EncodeDouble, tide.Transcoder.DecodeDouble}
	String  Codec[string]    = primitive[string]{tide.Transcoder.EncodeString, tide.Transcoder.DecodeString}
	Bytes   Codec[[]byte]    = primitive[[]byte]{tide.Transcoder.EncodeBytes, tide.Transcoder.DecodeBytes}
	UUID    Codec[uuid.UUID] = primitive[uuid.UUID]{tide.Transcoder.EncodeUUID, tide.Transcoder.DecodeUUID}
)

// Unit encodes an empty record.
var Unit Codec[struct{}] = unitCodec{}

type unitCodec struct{}

func (unitCodec) Encode(t tide.Transcoder, _ struct{}) (any, error) {
	b, err := t.EncodeMap()
	if err != nil {
		return nil, err
	}
	return b.Build()
}

func (unitCodec) Decode(t tide.Transcoder, n any) (struct{}, error) {
	_, err := t.DecodeMap(n)
	return struct{}{}, err
}

func (unitCodec) EncodeFields(tide.Transcoder, tide.MapBuilder, struct{}) error {
	return nil
}

func (unitCodec) DecodeFields(tide.Transcoder, tide.VirtualMap) (struct{}, error) {
	return struct{}{}, nil
}

// UUIDString stores a UUID in its canonical hyphenated text form.
var UUIDString Codec[uuid.UUID] = Transform(String,
	func(s string) (uuid.UUID, error) {
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Detail("invalid UUID %q", s).
				Cause(err).
				Build()
		}
		return id, nil
	},
	func(id uuid.UUID) (string, error) { return id.String(), nil },
)

// UUIDIntArray stores a UUID as four ints.
var UUIDIntArray Codec[uuid.UUID] = Transform(List(Int),
	func(a []int32) (uuid.UUID, error) {
		if len(a) != 4 {
			return uuid.Nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Detail("UUID int array must have 4 elements, got %d", len(a)).
				Build()
		}
		return wire.UUIDFromInts([4]int32(a)), nil
	},
	func(id uuid.UUID) ([]int32, error) {
		a := wire.UUIDToInts(id)
		return a[:], nil
	},
)

// KSUID stores a K-sortable unique identifier in its base62 text form.
var KSUID Codec[ksuid.KSUID] = Transform(String,
	func(s string) (ksuid.KSUID, error) {
		id, err := ksuid.Parse(s)
		if err != nil {
			return ksuid.Nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Detail("invalid KSUID %q", s).
				Cause(err).
				Build()
		}
		return id, nil
	},
	func(id ksuid.KSUID) (string, error) { return id.String(), nil },
)
