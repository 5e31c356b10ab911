// Package binary implements the bit-exact binary format.
//
// Encoded nodes are independent byte fragments that builders concatenate.
// Decode nodes share a single *wire.Buffer cursor, so records and lists are
// read strictly in the order codecs ask for them.
package binary

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/wire"
)

// Format is the name reported by the binary transcoder.
const Format = "binary"

// Options configures a Transcoder.
type Options struct {
	// MaxStringLength caps decoded strings, in characters.
	MaxStringLength int
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		MaxStringLength: wire.DefaultMaxStringLength,
	}
}

// Transcoder is the binary tide.Transcoder. It holds no per-call state and
// may be shared.
type Transcoder struct {
	opts Options
}

var _ tide.Transcoder = (*Transcoder)(nil)

// New creates a Transcoder with default options.
func New() *Transcoder {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Transcoder with custom options.
func NewWithOptions(opts Options) *Transcoder {
	if opts.MaxStringLength <= 0 {
		opts.MaxStringLength = wire.DefaultMaxStringLength
	}
	return &Transcoder{opts: opts}
}

func (t *Transcoder) Format() string {
	return Format
}

// Options returns the transcoder options.
func (t *Transcoder) Options() Options {
	return t.opts
}

func cursor(n any) (*wire.Buffer, error) {
	switch b := n.(type) {
	case *wire.Buffer:
		return b, nil
	case *virtualMap:
		return b.buf, nil
	}
	return nil, errors.TypeMismatch(errors.PhaseDecode, nil, fmt.Sprintf("%T", n), Format)
}

func fragment(n any) ([]byte, error) {
	p, ok := n.([]byte)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", n), Format)
	}
	return p, nil
}

// write runs fn against a pooled buffer and returns an exact-size copy.
func write(fn func(b *wire.Buffer)) []byte {
	scratch := getScratch()
	b := wire.NewBuffer(*scratch)
	fn(b)
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	*scratch = b.Bytes()
	putScratch(scratch)
	return out
}

func (t *Transcoder) EncodeBool(v bool) (any, error) {
	if v {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (t *Transcoder) DecodeBool(n any) (bool, error) {
	b, err := cursor(n)
	if err != nil {
		return false, err
	}
	return b.ReadBool()
}

func (t *Transcoder) EncodeByte(v int8) (any, error) {
	return []byte{byte(v)}, nil
}

func (t *Transcoder) DecodeByte(n any) (int8, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadInt8()
}

func (t *Transcoder) EncodeShort(v int16) (any, error) {
	return write(func(b *wire.Buffer) { b.WriteInt16(v) }), nil
}

func (t *Transcoder) DecodeShort(n any) (int16, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadInt16()
}

func (t *Transcoder) EncodeInt(v int32) (any, error) {
	return write(func(b *wire.Buffer) { b.WriteInt32(v) }), nil
}

func (t *Transcoder) DecodeInt(n any) (int32, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadInt32()
}

func (t *Transcoder) EncodeVarInt(v int32) (any, error) {
	return wire.AppendVarInt(make([]byte, 0, wire.VarIntSize(v)), v), nil
}

func (t *Transcoder) DecodeVarInt(n any) (int32, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadVarInt()
}

func (t *Transcoder) EncodeLong(v int64) (any, error) {
	return write(func(b *wire.Buffer) { b.WriteInt64(v) }), nil
}

func (t *Transcoder) DecodeLong(n any) (int64, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadInt64()
}

func (t *Transcoder) EncodeVarLong(v int64) (any, error) {
	return write(func(b *wire.Buffer) { b.WriteVarLong(v) }), nil
}

func (t *Transcoder) DecodeVarLong(n any) (int64, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadVarLong()
}

func (t *Transcoder) EncodeFloat(v float32) (any, error) {
	return write(func(b *wire.Buffer) { b.WriteFloat32(v) }), nil
}

func (t *Transcoder) DecodeFloat(n any) (float32, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadFloat32()
}

func (t *Transcoder) EncodeDouble(v float64) (any, error) {
	return write(func(b *wire.Buffer) { b.WriteFloat64(v) }), nil
}

func (t *Transcoder) DecodeDouble(n any) (float64, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	return b.ReadFloat64()
}

func (t *Transcoder) EncodeString(v string) (any, error) {
	if n := utf8.RuneCountInString(v); n > t.opts.MaxStringLength {
		return nil, errors.LimitExceeded(errors.PhaseEncode, "string", n, t.opts.MaxStringLength)
	}
	return write(func(b *wire.Buffer) { b.WriteString(v) }), nil
}

func (t *Transcoder) DecodeString(n any) (string, error) {
	b, err := cursor(n)
	if err != nil {
		return "", err
	}
	return b.ReadStringMax(t.opts.MaxStringLength)
}

func (t *Transcoder) EncodeBytes(v []byte) (any, error) {
	return write(func(b *wire.Buffer) { b.WriteByteArray(v) }), nil
}

func (t *Transcoder) DecodeBytes(n any) ([]byte, error) {
	b, err := cursor(n)
	if err != nil {
		return nil, err
	}
	return b.ReadByteArray()
}

func (t *Transcoder) EncodeUUID(v uuid.UUID) (any, error) {
	out := make([]byte, 16)
	copy(out, v[:])
	return out, nil
}

func (t *Transcoder) DecodeUUID(n any) (uuid.UUID, error) {
	b, err := cursor(n)
	if err != nil {
		return uuid.Nil, err
	}
	return b.ReadUUID()
}

// EncodeEnum writes the ordinal as a VarInt.
func (t *Transcoder) EncodeEnum(ordinal int, _ string) (any, error) {
	return t.EncodeVarInt(int32(ordinal))
}

func (t *Transcoder) DecodeEnum(n any, names []string) (int, error) {
	b, err := cursor(n)
	if err != nil {
		return 0, err
	}
	i, err := b.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if i < 0 || int(i) >= len(names) {
		return 0, errors.InvalidEnum(errors.PhaseDecode, nil, i, "ordinal")
	}
	return int(i), nil
}

// EncodeNone writes a single zero flag byte.
func (t *Transcoder) EncodeNone() (any, error) {
	return []byte{0}, nil
}

// EncodeSome prefixes n with a one flag byte.
func (t *Transcoder) EncodeSome(n any) (any, error) {
	p, err := fragment(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(p)+1)
	out = append(out, 1)
	return append(out, p...), nil
}

func (t *Transcoder) DecodeOptional(n any) (any, bool, error) {
	b, err := cursor(n)
	if err != nil {
		return nil, false, err
	}
	present, err := b.ReadBool()
	if err != nil {
		return nil, false, err
	}
	return b, present, nil
}

func (t *Transcoder) EncodeList(size int) (tide.ListBuilder, error) {
	if size < 0 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "negative list size")
	}
	return &listBuilder{
		size: size,
		data: wire.AppendVarInt(nil, int32(size)),
	}, nil
}

func (t *Transcoder) DecodeList(n any) (tide.ListReader, error) {
	b, err := cursor(n)
	if err != nil {
		return nil, err
	}
	size, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("list length %d is smaller than 0", size).
			Build()
	}
	return &listReader{buf: b, size: int(size)}, nil
}

func (t *Transcoder) EncodeMap() (tide.MapBuilder, error) {
	return &mapBuilder{}, nil
}

func (t *Transcoder) DecodeMap(n any) (tide.VirtualMap, error) {
	b, err := cursor(n)
	if err != nil {
		return nil, err
	}
	return &virtualMap{buf: b}, nil
}

type listBuilder struct {
	size  int
	count int
	data  []byte
}

func (l *listBuilder) Add(n any) error {
	p, err := fragment(n)
	if err != nil {
		return err
	}
	l.count++
	l.data = append(l.data, p...)
	return nil
}

func (l *listBuilder) Build() (any, error) {
	if l.count != l.size {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Detail("list declared %d items, got %d", l.size, l.count).
			Build()
	}
	return l.data, nil
}

type listReader struct {
	buf  *wire.Buffer
	size int
	read int
}

func (l *listReader) Len() int {
	return l.size
}

func (l *listReader) Next() (any, error) {
	if l.read >= l.size {
		return nil, errors.OutOfBounds(errors.PhaseDecode, nil, l.read+1, l.size)
	}
	l.read++
	return l.buf, nil
}

// mapBuilder concatenates fields in the order they are put; keys are not written.
type mapBuilder struct {
	data []byte
}

func (m *mapBuilder) Keyed() bool {
	return false
}

func (m *mapBuilder) Put(_ string, n any) error {
	p, err := fragment(n)
	if err != nil {
		return err
	}
	m.data = append(m.data, p...)
	return nil
}

func (m *mapBuilder) Build() (any, error) {
	if m.data == nil {
		return []byte{}, nil
	}
	return m.data, nil
}

// virtualMap answers every key with the shared cursor.
type virtualMap struct {
	buf *wire.Buffer
}

func (m *virtualMap) Keyed() bool {
	return false
}

func (m *virtualMap) Has(string) bool {
	return true
}

func (m *virtualMap) Get(string) (any, error) {
	return m.buf, nil
}

func (m *virtualMap) Mark() int {
	return m.buf.Mark()
}

func (m *virtualMap) Rewind(mark int) {
	m.buf.Rewind(mark)
}
