package wire

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/tide/errors"
)

// Buffer is a growable byte buffer with a read cursor.
// Writes append at the end, reads consume from the cursor.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer creates a Buffer reading from data. Writes append after it.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the unread bytes.
func (b *Buffer) Bytes() []byte {
	return b.data[b.pos:]
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.data) - b.pos
}

// Position returns the read cursor.
func (b *Buffer) Position() int {
	return b.pos
}

// Mark returns the current read position for a later Rewind.
func (b *Buffer) Mark() int {
	return b.pos
}

// Rewind moves the read cursor back to a position returned by Mark.
func (b *Buffer) Rewind(mark int) {
	if mark < 0 || mark > len(b.data) {
		return
	}
	b.pos = mark
}

// Load replaces the buffer contents with data and rewinds the cursor.
func (b *Buffer) Load(data []byte) {
	b.data = data
	b.pos = 0
}

// Reset discards all data.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.pos = 0
}

// Write appends p. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.data = append(b.data, 1)
	} else {
		b.data = append(b.data, 0)
	}
}

func (b *Buffer) WriteInt8(v int8) {
	b.data = append(b.data, byte(v))
}

func (b *Buffer) WriteInt16(v int16) {
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(v))
}

func (b *Buffer) WriteInt32(v int32) {
	b.data = binary.BigEndian.AppendUint32(b.data, uint32(v))
}

func (b *Buffer) WriteInt64(v int64) {
	b.data = binary.BigEndian.AppendUint64(b.data, uint64(v))
}

func (b *Buffer) WriteFloat32(v float32) {
	b.data = binary.BigEndian.AppendUint32(b.data, math.Float32bits(v))
}

func (b *Buffer) WriteFloat64(v float64) {
	b.data = binary.BigEndian.AppendUint64(b.data, math.Float64bits(v))
}

// ReadByte reads a single byte and advances the cursor.
func (b *Buffer) ReadByte() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, errors.OutOfBounds(errors.PhaseDecode, nil, 1, 0)
	}
	c := b.data[b.pos]
	b.pos++
	return c, nil
}

// ReadN returns the next n bytes without copying.
// The slice aliases the buffer and is only valid until the next write.
func (b *Buffer) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "negative length")
	}
	if b.Len() < n {
		return nil, errors.OutOfBounds(errors.PhaseDecode, nil, n, b.Len())
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

// ReadBytes reads exactly n bytes into a fresh slice.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	p, err := b.ReadN(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// ReadRemaining consumes and returns a copy of all unread bytes.
func (b *Buffer) ReadRemaining() []byte {
	out := make([]byte, b.Len())
	copy(out, b.data[b.pos:])
	b.pos = len(b.data)
	return out
}

func (b *Buffer) ReadBool() (bool, error) {
	c, err := b.ReadByte()
	if err != nil {
		return false, err
	}
	return c != 0, nil
}

func (b *Buffer) ReadInt8() (int8, error) {
	c, err := b.ReadByte()
	return int8(c), err
}

func (b *Buffer) ReadInt16() (int16, error) {
	p, err := b.ReadN(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(p)), nil
}

func (b *Buffer) ReadInt32() (int32, error) {
	p, err := b.ReadN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(p)), nil
}

func (b *Buffer) ReadInt64() (int64, error) {
	p, err := b.ReadN(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(p)), nil
}

func (b *Buffer) ReadFloat32() (float32, error) {
	p, err := b.ReadN(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(p)), nil
}

func (b *Buffer) ReadFloat64() (float64, error) {
	p, err := b.ReadN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(p)), nil
}
