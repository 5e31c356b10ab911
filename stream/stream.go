// Package stream provides binary-only codecs that read and write a
// wire.Buffer directly, for protocol messages that never take a tree form.
package stream

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/wire"
)

// Codec writes values of type T to a buffer and reads them back.
type Codec[T any] interface {
	Write(buf *wire.Buffer, v T) error
	Read(buf *wire.Buffer) (T, error)
}

type funcCodec[T any] struct {
	write func(*wire.Buffer, T) error
	read  func(*wire.Buffer) (T, error)
}

// Of builds a Codec from a write and a read function.
func Of[T any](write func(*wire.Buffer, T) error, read func(*wire.Buffer) (T, error)) Codec[T] {
	return funcCodec[T]{write: write, read: read}
}

func (c funcCodec[T]) Write(buf *wire.Buffer, v T) error {
	return c.write(buf, v)
}

func (c funcCodec[T]) Read(buf *wire.Buffer) (T, error) {
	return c.read(buf)
}

func infallible[T any](write func(*wire.Buffer, T), read func(*wire.Buffer) (T, error)) Codec[T] {
	return Of(func(buf *wire.Buffer, v T) error {
		write(buf, v)
		return nil
	}, read)
}

var (
	Unit = infallible(func(*wire.Buffer, struct{}) {}, func(*wire.Buffer) (struct{}, error) { return struct{}{}, nil })

	Bool    = infallible((*wire.Buffer).WriteBool, (*wire.Buffer).ReadBool)
	Byte    = infallible((*wire.Buffer).WriteInt8, (*wire.Buffer).ReadInt8)
	Short   = infallible((*wire.Buffer).WriteInt16, (*wire.Buffer).ReadInt16)
	Int     = infallible((*wire.Buffer).WriteInt32, (*wire.Buffer).ReadInt32)
	VarInt  = infallible((*wire.Buffer).WriteVarInt, (*wire.Buffer).ReadVarInt)
	Long    = infallible((*wire.Buffer).WriteInt64, (*wire.Buffer).ReadInt64)
	VarLong = infallible((*wire.Buffer).WriteVarLong, (*wire.Buffer).ReadVarLong)
	Float   = infallible((*wire.Buffer).WriteFloat32, (*wire.Buffer).ReadFloat32)
	Double  = infallible((*wire.Buffer).WriteFloat64, (*wire.Buffer).ReadFloat64)

	// String is a VarInt byte length followed by UTF-8, capped at
	// wire.DefaultMaxStringLength characters.
	String = StringMax(wire.DefaultMaxStringLength)

	// RawBytes writes bytes without a length and reads everything that is left.
	RawBytes = Of(
		func(buf *wire.Buffer, p []byte) error {
			_, err := buf.Write(p)
			return err
		},
		func(buf *wire.Buffer) ([]byte, error) { return buf.ReadRemaining(), nil },
	)

	// ByteArray is a VarInt length followed by raw bytes.
	ByteArray = infallible((*wire.Buffer).WriteByteArray, (*wire.Buffer).ReadByteArray)

	UUID = infallible((*wire.Buffer).WriteUUID, (*wire.Buffer).ReadUUID)

	// UUIDString carries a UUID in its canonical text form.
	UUIDString = Transform(String,
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

	// KSUID carries the 20 raw identifier bytes.
	KSUID = Of(
		func(buf *wire.Buffer, id ksuid.KSUID) error {
			_, err := buf.Write(id.Bytes())
			return err
		},
		func(buf *wire.Buffer) (ksuid.KSUID, error) {
			p, err := buf.ReadN(20)
			if err != nil {
				return ksuid.Nil, err
			}
			id, err := ksuid.FromBytes(p)
			if err != nil {
				return ksuid.Nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "invalid KSUID")
			}
			return id, nil
		},
	)
)

// StringMax returns a string codec that rejects strings longer than
// maxChars characters on both sides.
func StringMax(maxChars int) Codec[string] {
	return Of(
		func(buf *wire.Buffer, s string) error {
			if n := utf8.RuneCountInString(s); n > maxChars {
				return errors.LimitExceeded(errors.PhaseEncode, "string", n, maxChars)
			}
			buf.WriteString(s)
			return nil
		},
		func(buf *wire.Buffer) (string, error) { return buf.ReadStringMax(maxChars) },
	)
}

// Marshal writes v with c into a fresh byte slice.
func Marshal[T any](c Codec[T], v T) ([]byte, error) {
	buf := wire.NewBuffer(nil)
	if err := c.Write(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal reads a value with c. Trailing bytes are an error.
func Unmarshal[T any](c Codec[T], data []byte) (T, error) {
	buf := wire.NewBuffer(data)
	v, err := c.Read(buf)
	if err != nil {
		var zero T
		return zero, err
	}
	if rest := buf.Len(); rest > 0 {
		var zero T
		return zero, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("%d trailing bytes after value", rest).
			Build()
	}
	return v, nil
}
