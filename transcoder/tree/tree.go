// Package tree implements a Transcoder over generic document trees: records
// are *Object (or map[string]any when decoding), lists are []any, scalars are
// bool, int64, float64 and string. The JSON, TOML, YAML and protobuf adapters
// share it and differ only in Options and document IO.
package tree

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/internal/coerce"
)

// Options configures a Transcoder.
type Options struct {
	// Format is the name reported by the transcoder.
	Format string
	// Nullable formats encode absent values as nil. Others drop them from
	// records and reject them inside lists.
	Nullable bool
	// LongsAsStrings writes 64-bit integers as decimal strings.
	LongsAsStrings bool
}

// DefaultOptions returns options for a JSON-like nullable tree.
func DefaultOptions() Options {
	return Options{
		Format:   "tree",
		Nullable: true,
	}
}

// omitted marks an absent value in formats without null.
type omitted struct{}

// None is the node produced by EncodeNone when the format has no null.
var None any = omitted{}

// Transcoder is the tree tide.Transcoder. It is stateless and may be shared.
type Transcoder struct {
	opts Options
}

var _ tide.Transcoder = (*Transcoder)(nil)

// New creates a Transcoder.
func New(opts Options) *Transcoder {
	if opts.Format == "" {
		opts.Format = "tree"
	}
	return &Transcoder{opts: opts}
}

func (t *Transcoder) Format() string {
	return t.opts.Format
}

// Options returns the transcoder options.
func (t *Transcoder) Options() Options {
	return t.opts
}

func (t *Transcoder) mismatch(n any, want string) error {
	return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		GoType(fmt.Sprintf("%T", n)).
		Format(t.opts.Format).
		Detail("expected %s", want).
		Value(n).
		Build()
}

func (t *Transcoder) EncodeBool(v bool) (any, error) {
	return v, nil
}

func (t *Transcoder) DecodeBool(n any) (bool, error) {
	b, ok := n.(bool)
	if !ok {
		return false, t.mismatch(n, "bool")
	}
	return b, nil
}

func (t *Transcoder) EncodeByte(v int8) (any, error) {
	return int64(v), nil
}

func (t *Transcoder) DecodeByte(n any) (int8, error) {
	v, ok := coerce.ToInt8(n)
	if !ok {
		return 0, t.mismatch(n, "byte")
	}
	return v, nil
}

func (t *Transcoder) EncodeShort(v int16) (any, error) {
	return int64(v), nil
}

func (t *Transcoder) DecodeShort(n any) (int16, error) {
	v, ok := coerce.ToInt16(n)
	if !ok {
		return 0, t.mismatch(n, "short")
	}
	return v, nil
}

func (t *Transcoder) EncodeInt(v int32) (any, error) {
	return int64(v), nil
}

func (t *Transcoder) DecodeInt(n any) (int32, error) {
	v, ok := coerce.ToInt32(n)
	if !ok {
		return 0, t.mismatch(n, "int")
	}
	return v, nil
}

func (t *Transcoder) EncodeVarInt(v int32) (any, error) {
	return t.EncodeInt(v)
}

func (t *Transcoder) DecodeVarInt(n any) (int32, error) {
	return t.DecodeInt(n)
}

func (t *Transcoder) EncodeLong(v int64) (any, error) {
	if t.opts.LongsAsStrings {
		return strconv.FormatInt(v, 10), nil
	}
	return v, nil
}

func (t *Transcoder) DecodeLong(n any) (int64, error) {
	v, ok := coerce.ToInt64(n)
	if !ok {
		return 0, t.mismatch(n, "long")
	}
	return v, nil
}

func (t *Transcoder) EncodeVarLong(v int64) (any, error) {
	return t.EncodeLong(v)
}

func (t *Transcoder) DecodeVarLong(n any) (int64, error) {
	return t.DecodeLong(n)
}

// EncodeFloat widens v through its shortest decimal form so 0.1 stays 0.1.
func (t *Transcoder) EncodeFloat(v float32) (any, error) {
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
	if err != nil {
		return float64(v), nil
	}
	return f, nil
}

func (t *Transcoder) DecodeFloat(n any) (float32, error) {
	v, ok := coerce.ToFloat32(n)
	if !ok {
		return 0, t.mismatch(n, "float")
	}
	return v, nil
}

func (t *Transcoder) EncodeDouble(v float64) (any, error) {
	return v, nil
}

func (t *Transcoder) DecodeDouble(n any) (float64, error) {
	v, ok := coerce.ToFloat64(n)
	if !ok {
		return 0, t.mismatch(n, "double")
	}
	return v, nil
}

func (t *Transcoder) EncodeString(v string) (any, error) {
	return v, nil
}

func (t *Transcoder) DecodeString(n any) (string, error) {
	s, ok := n.(string)
	if !ok {
		return "", t.mismatch(n, "string")
	}
	return s, nil
}

// EncodeBytes writes standard base64 text.
func (t *Transcoder) EncodeBytes(v []byte) (any, error) {
	return base64.StdEncoding.EncodeToString(v), nil
}

func (t *Transcoder) DecodeBytes(n any) ([]byte, error) {
	s, ok := n.(string)
	if !ok {
		return nil, t.mismatch(n, "base64 string")
	}
	p, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Format(t.opts.Format).
			Detail("invalid base64").
			Cause(err).
			Build()
	}
	return p, nil
}

func (t *Transcoder) EncodeUUID(v uuid.UUID) (any, error) {
	return v.String(), nil
}

func (t *Transcoder) DecodeUUID(n any) (uuid.UUID, error) {
	s, ok := n.(string)
	if !ok {
		return uuid.Nil, t.mismatch(n, "uuid string")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Format(t.opts.Format).
			Detail("invalid UUID %q", s).
			Cause(err).
			Build()
	}
	return id, nil
}

// EncodeEnum writes the constant name.
func (t *Transcoder) EncodeEnum(_ int, name string) (any, error) {
	return name, nil
}

// DecodeEnum accepts a constant name or a numeric ordinal.
func (t *Transcoder) DecodeEnum(n any, names []string) (int, error) {
	s, ok := n.(string)
	if !ok {
		return 0, t.mismatch(n, "enum name")
	}
	if i := slices.Index(names, s); i >= 0 {
		return i, nil
	}
	return 0, errors.InvalidEnum(errors.PhaseDecode, nil, s, "name")
}

func (t *Transcoder) EncodeNone() (any, error) {
	if t.opts.Nullable {
		return nil, nil
	}
	return None, nil
}

func (t *Transcoder) EncodeSome(n any) (any, error) {
	return n, nil
}

func (t *Transcoder) DecodeOptional(n any) (any, bool, error) {
	if isAbsent(n) {
		return nil, false, nil
	}
	return n, true, nil
}

func isAbsent(n any) bool {
	if n == nil {
		return true
	}
	_, ok := n.(omitted)
	return ok
}

func (t *Transcoder) EncodeList(size int) (tide.ListBuilder, error) {
	return &listBuilder{t: t, items: make([]any, 0, size)}, nil
}

func (t *Transcoder) DecodeList(n any) (tide.ListReader, error) {
	items, ok := n.([]any)
	if !ok {
		return nil, t.mismatch(n, "list")
	}
	return &listReader{items: items}, nil
}

func (t *Transcoder) EncodeMap() (tide.MapBuilder, error) {
	return &mapBuilder{obj: NewObject()}, nil
}

func (t *Transcoder) DecodeMap(n any) (tide.VirtualMap, error) {
	switch m := n.(type) {
	case *Object:
		return &virtualMap{get: m.Get}, nil
	case map[string]any:
		return &virtualMap{get: func(k string) (any, bool) {
			v, ok := m[k]
			return v, ok
		}}, nil
	}
	return nil, t.mismatch(n, "record")
}

type listBuilder struct {
	t     *Transcoder
	items []any
}

func (l *listBuilder) Add(n any) error {
	if _, ok := n.(omitted); ok {
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Format(l.t.opts.Format).
			Detail("absent value inside a list").
			Build()
	}
	l.items = append(l.items, n)
	return nil
}

func (l *listBuilder) Build() (any, error) {
	return l.items, nil
}

type listReader struct {
	items []any
	pos   int
}

func (l *listReader) Len() int {
	return len(l.items)
}

func (l *listReader) Next() (any, error) {
	if l.pos >= len(l.items) {
		return nil, errors.OutOfBounds(errors.PhaseDecode, nil, l.pos+1, len(l.items))
	}
	n := l.items[l.pos]
	l.pos++
	return n, nil
}

type mapBuilder struct {
	obj *Object
}

func (m *mapBuilder) Keyed() bool {
	return true
}

func (m *mapBuilder) Put(key string, n any) error {
	if _, ok := n.(omitted); ok {
		return nil
	}
	m.obj.Set(key, n)
	return nil
}

func (m *mapBuilder) Build() (any, error) {
	return m.obj, nil
}

type virtualMap struct {
	get func(string) (any, bool)
}

func (m *virtualMap) Keyed() bool {
	return true
}

// Has reports false for missing keys and for null values.
func (m *virtualMap) Has(key string) bool {
	v, ok := m.get(key)
	return ok && !isAbsent(v)
}

func (m *virtualMap) Get(key string) (any, error) {
	v, ok := m.get(key)
	if !ok {
		return nil, errors.FieldMissing(errors.PhaseDecode, []string{key}, key)
	}
	return v, nil
}
