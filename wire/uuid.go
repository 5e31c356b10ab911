package wire

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// UUIDBits splits id into its most and least significant halves.
func UUIDBits(id uuid.UUID) (msb, lsb int64) {
	return int64(binary.BigEndian.Uint64(id[:8])), int64(binary.BigEndian.Uint64(id[8:]))
}

// UUIDFromBits joins the halves produced by UUIDBits.
func UUIDFromBits(msb, lsb int64) uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], uint64(msb))
	binary.BigEndian.PutUint64(id[8:], uint64(lsb))
	return id
}

// UUIDToInts packs id into four ints for compact array storage.
func UUIDToInts(id uuid.UUID) [4]int32 {
	msb, lsb := UUIDBits(id)
	return [4]int32{
		int32(msb >> 32),
		int32(msb),
		int32(lsb >> 32),
		int32(lsb),
	}
}

// UUIDFromInts reverses UUIDToInts.
func UUIDFromInts(a [4]int32) uuid.UUID {
	msb := int64(a[0])<<32 | int64(uint32(a[1]))
	lsb := int64(a[2])<<32 | int64(uint32(a[3]))
	return UUIDFromBits(msb, lsb)
}

// WriteUUID appends id as two big-endian longs.
func (b *Buffer) WriteUUID(id uuid.UUID) {
	b.data = append(b.data, id[:]...)
}

// ReadUUID reads 16 bytes as two big-endian longs.
func (b *Buffer) ReadUUID() (uuid.UUID, error) {
	msb, err := b.ReadInt64()
	if err != nil {
		return uuid.Nil, err
	}
	lsb, err := b.ReadInt64()
	if err != nil {
		return uuid.Nil, err
	}
	return UUIDFromBits(msb, lsb), nil
}
