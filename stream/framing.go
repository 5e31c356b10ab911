package stream

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/wire"
)

// maxDecompressed bounds the output of a single compressed frame.
const maxDecompressed = 64 << 20

type lengthPrefixed[T any] struct {
	inner Codec[T]
}

// LengthPrefixed writes the inner encoding as a VarInt length-prefixed byte
// array, so readers can skip values they do not understand.
func LengthPrefixed[T any](c Codec[T]) Codec[T] {
	return lengthPrefixed[T]{inner: c}
}

func (c lengthPrefixed[T]) Write(buf *wire.Buffer, v T) error {
	inner := wire.NewBuffer(nil)
	if err := c.inner.Write(inner, v); err != nil {
		return err
	}
	buf.WriteByteArray(inner.Bytes())
	return nil
}

func (c lengthPrefixed[T]) Read(buf *wire.Buffer) (T, error) {
	p, err := buf.ReadByteArray()
	if err != nil {
		var zero T
		return zero, err
	}
	return c.inner.Read(wire.NewBuffer(p))
}

// FixedBitSet writes a bit set of length bits as ceil(length/8) bytes.
// Writing a set with a bit at or above length fails.
func FixedBitSet(length int) Codec[wire.BitSet] {
	return Of(
		func(buf *wire.Buffer, s wire.BitSet) error { return buf.WriteFixedBitSet(s, length) },
		func(buf *wire.Buffer) (wire.BitSet, error) { return buf.ReadFixedBitSet(length) },
	)
}

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	decoderOnce sync.Once
	decoder     *zstd.Decoder
)

// zstd encoders and decoders are safe for concurrent EncodeAll/DecodeAll.
func zstdEncoder() *zstd.Encoder {
	encoderOnce.Do(func() {
		encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	return encoder
}

func zstdDecoder() *zstd.Decoder {
	decoderOnce.Do(func() {
		decoder, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressed))
	})
	return decoder
}

type compressed[T any] struct {
	inner Codec[T]
}

// Compressed writes the inner encoding as a length-prefixed zstd frame.
func Compressed[T any](c Codec[T]) Codec[T] {
	return compressed[T]{inner: c}
}

func (c compressed[T]) Write(buf *wire.Buffer, v T) error {
	inner := wire.NewBuffer(nil)
	if err := c.inner.Write(inner, v); err != nil {
		return err
	}
	buf.WriteByteArray(zstdEncoder().EncodeAll(inner.Bytes(), nil))
	return nil
}

func (c compressed[T]) Read(buf *wire.Buffer) (T, error) {
	var zero T
	frame, err := buf.ReadByteArray()
	if err != nil {
		return zero, err
	}
	p, err := zstdDecoder().DecodeAll(frame, nil)
	if err != nil {
		return zero, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "zstd frame")
	}
	return c.inner.Read(wire.NewBuffer(p))
}

type checksummed[T any] struct {
	inner Codec[T]
}

// Checksummed writes the inner encoding as a length-prefixed byte array
// followed by its 64-bit xxhash. Reads fail when the hash does not match.
func Checksummed[T any](c Codec[T]) Codec[T] {
	return checksummed[T]{inner: c}
}

func (c checksummed[T]) Write(buf *wire.Buffer, v T) error {
	inner := wire.NewBuffer(nil)
	if err := c.inner.Write(inner, v); err != nil {
		return err
	}
	p := inner.Bytes()
	buf.WriteByteArray(p)
	buf.WriteInt64(int64(xxhash.Sum64(p)))
	return nil
}

func (c checksummed[T]) Read(buf *wire.Buffer) (T, error) {
	var zero T
	p, err := buf.ReadByteArray()
	if err != nil {
		return zero, err
	}
	sum, err := buf.ReadInt64()
	if err != nil {
		return zero, err
	}
	if got := xxhash.Sum64(p); got != uint64(sum) {
		return zero, errors.New(errors.PhaseDecode, errors.KindChecksum).
			Detail("checksum mismatch: stored %016x, computed %016x", uint64(sum), got).
			Build()
	}
	return c.inner.Read(wire.NewBuffer(p))
}
