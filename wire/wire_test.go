package wire

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	tideerrors "github.com/wippyai/tide/errors"
)

func TestBufferFixedWidth(t *testing.T) {
	b := NewBuffer(nil)
	b.WriteBool(true)
	b.WriteInt8(-2)
	b.WriteInt16(0x0102)
	b.WriteInt32(-1)
	b.WriteInt64(math.MaxInt64)
	b.WriteFloat32(1.5)
	b.WriteFloat64(-0.25)

	want := []byte{0x01, 0xfe, 0x01, 0x02, 0xff, 0xff, 0xff, 0xff}
	if !bytes.Equal(b.Bytes()[:8], want) {
		t.Fatalf("prefix: got % x, want % x", b.Bytes()[:8], want)
	}

	if v, err := b.ReadBool(); err != nil || !v {
		t.Errorf("ReadBool: got %v, %v", v, err)
	}
	if v, err := b.ReadInt8(); err != nil || v != -2 {
		t.Errorf("ReadInt8: got %v, %v", v, err)
	}
	if v, err := b.ReadInt16(); err != nil || v != 0x0102 {
		t.Errorf("ReadInt16: got %v, %v", v, err)
	}
	if v, err := b.ReadInt32(); err != nil || v != -1 {
		t.Errorf("ReadInt32: got %v, %v", v, err)
	}
	if v, err := b.ReadInt64(); err != nil || v != math.MaxInt64 {
		t.Errorf("ReadInt64: got %v, %v", v, err)
	}
	if v, err := b.ReadFloat32(); err != nil || v != 1.5 {
		t.Errorf("ReadFloat32: got %v, %v", v, err)
	}
	if v, err := b.ReadFloat64(); err != nil || v != -0.25 {
		t.Errorf("ReadFloat64: got %v, %v", v, err)
	}
	if b.Len() != 0 {
		t.Errorf("Len after reads: got %d, want 0", b.Len())
	}

	_, err := b.ReadInt32()
	if !errors.Is(err, tideerrors.Decoding) {
		t.Errorf("expected decoding error past the end, got %v", err)
	}
}

func TestBufferMarkRewind(t *testing.T) {
	b := NewBuffer([]byte{0x01, 0x02, 0x03})
	mark := b.Mark()
	if _, err := b.ReadN(2); err != nil {
		t.Fatalf("ReadN: %v", err)
	}
	if b.Position() != 2 {
		t.Errorf("position: got %d, want 2", b.Position())
	}
	b.Rewind(mark)
	c, err := b.ReadByte()
	if err != nil || c != 0x01 {
		t.Errorf("after rewind: got 0x%02x, %v", c, err)
	}
}

func TestVarInt(t *testing.T) {
	tests := []struct {
		value   int32
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{1<<21 - 1, []byte{0xff, 0xff, 0x7f}},
		{1 << 21, []byte{0x80, 0x80, 0x80, 0x01}},
		{math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, tt := range tests {
		b := NewBuffer(nil)
		b.WriteVarInt(tt.value)
		if !bytes.Equal(b.Bytes(), tt.encoded) {
			t.Errorf("WriteVarInt(%d): got % x, want % x", tt.value, b.Bytes(), tt.encoded)
		}
		if n := VarIntSize(tt.value); n != len(tt.encoded) {
			t.Errorf("VarIntSize(%d): got %d, want %d", tt.value, n, len(tt.encoded))
		}
		got, err := b.ReadVarInt()
		if err != nil {
			t.Errorf("ReadVarInt(% x): %v", tt.encoded, err)
			continue
		}
		if got != tt.value {
			t.Errorf("ReadVarInt(% x): got %d, want %d", tt.encoded, got, tt.value)
		}
		if b.Len() != 0 {
			t.Errorf("ReadVarInt(% x): %d bytes left", tt.encoded, b.Len())
		}
	}
}

func TestVarIntInvalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded []byte
	}{
		{"empty", nil},
		{"truncated", []byte{0x80, 0x80}},
		{"five continuation bytes", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuffer(tt.encoded).ReadVarInt()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tideerrors.Decoding) {
				t.Errorf("expected decoding error, got %v", err)
			}
			if !strings.Contains(err.Error(), "invalid VarInt") {
				t.Errorf("message %q should mention invalid VarInt", err)
			}
		})
	}
}

func TestVarLong(t *testing.T) {
	values := []int64{0, 1, 127, 128, math.MaxInt32, math.MaxInt64, -1, math.MinInt64}
	for _, v := range values {
		b := NewBuffer(nil)
		b.WriteVarLong(v)
		if b.Len() > MaxVarLongSize {
			t.Errorf("WriteVarLong(%d): %d bytes", v, b.Len())
		}
		got, err := b.ReadVarLong()
		if err != nil {
			t.Errorf("ReadVarLong(%d): %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("ReadVarLong: got %d, want %d", got, v)
		}
	}

	if _, err := NewBuffer([]byte{0x80}).ReadVarLong(); !errors.Is(err, tideerrors.Decoding) {
		t.Errorf("truncated VarLong: expected decoding error, got %v", err)
	}
}

func TestString(t *testing.T) {
	b := NewBuffer(nil)
	b.WriteString("Maya")
	if want := []byte{0x04, 'M', 'a', 'y', 'a'}; !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("WriteString: got % x, want % x", b.Bytes(), want)
	}
	s, err := b.ReadString()
	if err != nil || s != "Maya" {
		t.Errorf("ReadString: got %q, %v", s, err)
	}
}

func TestStringLimits(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"at cap", "abcd", false},
		{"multibyte at cap", "éééé", false},
		{"one over cap", "abcde", true},
		{"multibyte over cap", "ééééé", true},
		{"bytes over 3x cap", strings.Repeat("a", 13), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(nil)
			b.WriteString(tt.value)
			got, err := b.ReadStringMax(4)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				var e *tideerrors.Error
				if !errors.As(err, &e) || e.Kind != tideerrors.KindLimitExceeded {
					t.Errorf("expected limit_exceeded, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadStringMax: %v", err)
			}
			if got != tt.value {
				t.Errorf("got %q, want %q", got, tt.value)
			}
		})
	}
}

func TestStringRejects(t *testing.T) {
	neg := NewBuffer(nil)
	neg.WriteVarInt(-1)
	if _, err := neg.ReadString(); err == nil {
		t.Error("expected error for negative length")
	}

	bad := NewBuffer([]byte{0x02, 0xff, 0xfe})
	_, err := bad.ReadString()
	var e *tideerrors.Error
	if !errors.As(err, &e) || e.Kind != tideerrors.KindInvalidUTF8 {
		t.Errorf("expected invalid_utf8, got %v", err)
	}

	short := NewBuffer([]byte{0x05, 'a'})
	if _, err := short.ReadString(); !errors.Is(err, tideerrors.Decoding) {
		t.Errorf("expected decoding error for truncated payload, got %v", err)
	}
}

func TestByteArray(t *testing.T) {
	b := NewBuffer(nil)
	b.WriteByteArray([]byte{0xde, 0xad})
	if want := []byte{0x02, 0xde, 0xad}; !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("WriteByteArray: got % x, want % x", b.Bytes(), want)
	}
	got, err := b.ReadByteArray()
	if err != nil || !bytes.Equal(got, []byte{0xde, 0xad}) {
		t.Errorf("ReadByteArray: got % x, %v", got, err)
	}
}

func TestUUID(t *testing.T) {
	id := uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6")

	b := NewBuffer(nil)
	b.WriteUUID(id)
	if b.Len() != 16 {
		t.Fatalf("WriteUUID: %d bytes, want 16", b.Len())
	}
	if b.Bytes()[0] != 0xf8 || b.Bytes()[15] != 0xf6 {
		t.Errorf("WriteUUID is not big-endian: % x", b.Bytes())
	}
	got, err := b.ReadUUID()
	if err != nil || got != id {
		t.Errorf("ReadUUID: got %v, %v", got, err)
	}

	msb, lsb := UUIDBits(id)
	if UUIDFromBits(msb, lsb) != id {
		t.Error("UUIDFromBits does not reverse UUIDBits")
	}

	ints := UUIDToInts(id)
	if ints[0] != int32(-132296786) {
		t.Errorf("UUIDToInts[0]: got %d", ints[0])
	}
	if UUIDFromInts(ints) != id {
		t.Error("UUIDFromInts does not reverse UUIDToInts")
	}
}

func TestFixedBitSet(t *testing.T) {
	var s BitSet
	s.Set(0)
	s.Set(9)

	b := NewBuffer(nil)
	if err := b.WriteFixedBitSet(s, 10); err != nil {
		t.Fatalf("WriteFixedBitSet: %v", err)
	}
	if want := []byte{0x01, 0x02}; !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("WriteFixedBitSet: got % x, want % x", b.Bytes(), want)
	}

	got, err := b.ReadFixedBitSet(10)
	if err != nil {
		t.Fatalf("ReadFixedBitSet: %v", err)
	}
	for i := 0; i < 10; i++ {
		if got.Test(i) != s.Test(i) {
			t.Errorf("bit %d: got %v, want %v", i, got.Test(i), s.Test(i))
		}
	}

	s.Set(10)
	err = NewBuffer(nil).WriteFixedBitSet(s, 10)
	if !errors.Is(err, tideerrors.Encoding) {
		t.Errorf("expected encoding error for out of range bit, got %v", err)
	}
}
