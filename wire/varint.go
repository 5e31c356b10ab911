package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/wippyai/tide/errors"
)

const (
	SegmentBits = 0x7f
	ContinueBit = 0x80

	MaxVarIntSize  = 5
	MaxVarLongSize = 10
)

// AppendVarInt appends v as a VarInt. Negative values take 5 bytes.
func AppendVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for u&^SegmentBits != 0 {
		dst = append(dst, byte(u&SegmentBits)|ContinueBit)
		u >>= 7
	}
	return append(dst, byte(u))
}

// VarIntSize returns the encoded size of v.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u&^SegmentBits != 0 {
		u >>= 7
		n++
	}
	return n
}

// WriteVarInt appends v to the buffer as a VarInt.
func (b *Buffer) WriteVarInt(v int32) {
	b.data = AppendVarInt(b.data, v)
}

// ReadVarInt reads a VarInt. It fails when the buffer runs out or when
// five bytes pass without a terminal byte.
func (b *Buffer) ReadVarInt() (int32, error) {
	readable := b.Len()
	if readable == 0 {
		return 0, invalidVarInt(b.pos)
	}

	// single byte values are the common case
	cur := b.data[b.pos]
	b.pos++
	if cur&ContinueBit == 0 {
		return int32(cur), nil
	}

	maxRead := min(MaxVarIntSize, readable)
	result := uint32(cur & SegmentBits)
	for i := 1; i < maxRead; i++ {
		cur = b.data[b.pos]
		b.pos++
		result |= uint32(cur&SegmentBits) << (7 * i)
		if cur&ContinueBit == 0 {
			return int32(result), nil
		}
	}
	return 0, invalidVarInt(b.pos)
}

// WriteVarLong appends v as a 64-bit VarInt of up to 10 bytes.
func (b *Buffer) WriteVarLong(v int64) {
	b.data = protowire.AppendVarint(b.data, uint64(v))
}

// ReadVarLong reads a 64-bit VarInt.
func (b *Buffer) ReadVarLong() (int64, error) {
	v, n := protowire.ConsumeVarint(b.data[b.pos:])
	if n < 0 {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("invalid VarLong at position %d", b.pos).
			Cause(protowire.ParseError(n)).
			Build()
	}
	b.pos += n
	return int64(v), nil
}

func invalidVarInt(pos int) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Detail("invalid VarInt at position %d", pos).
		Build()
}
