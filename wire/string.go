package wire

import (
	"unicode/utf8"

	"github.com/wippyai/tide/errors"
)

// DefaultMaxStringLength is the default character cap for decoded strings.
const DefaultMaxStringLength = 32767

// WriteString appends a VarInt byte length followed by the UTF-8 bytes.
func (b *Buffer) WriteString(s string) {
	b.WriteVarInt(int32(len(s)))
	b.data = append(b.data, s...)
}

// ReadString reads a string using DefaultMaxStringLength.
func (b *Buffer) ReadString() (string, error) {
	return b.ReadStringMax(DefaultMaxStringLength)
}

// ReadStringMax reads a length-prefixed string of at most maxChars characters.
// The byte length is capped at 3*maxChars before the payload is touched.
func (b *Buffer) ReadStringMax(maxChars int) (string, error) {
	maxBytes := maxChars * 3
	size, err := b.ReadVarInt()
	if err != nil {
		return "", err
	}
	if int(size) > maxBytes {
		return "", errors.LimitExceeded(errors.PhaseDecode, "string bytes", int(size), maxBytes)
	}
	if size < 0 {
		return "", errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("string length %d is smaller than 0", size).
			Value(size).
			Build()
	}
	p, err := b.ReadN(int(size))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, p)
	}
	if n := utf8.RuneCount(p); n > maxChars {
		return "", errors.LimitExceeded(errors.PhaseDecode, "string", n, maxChars)
	}
	return string(p), nil
}

// WriteByteArray appends a VarInt length followed by the raw bytes.
func (b *Buffer) WriteByteArray(p []byte) {
	b.WriteVarInt(int32(len(p)))
	b.data = append(b.data, p...)
}

// ReadByteArray reads a VarInt length-prefixed byte array into a fresh slice.
func (b *Buffer) ReadByteArray() ([]byte, error) {
	size, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("byte array length %d is smaller than 0", size).
			Build()
	}
	return b.ReadBytes(int(size))
}
