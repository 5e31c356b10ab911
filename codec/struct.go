package codec

import (
	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/internal/record"
)

// presenceKey names the flag positional formats write before an optional
// inline field set.
const presenceKey = "$present"

// Values carries decoded field values to a struct constructor, in field order.
type Values = record.Values

// Arg returns the i-th constructor argument as P.
func Arg[P any](v Values, i int) P {
	p, _ := v.At(i).(P)
	return p
}

// StructField is one member of a struct codec's field list.
type StructField[R any] interface {
	// Name returns the record key, or "" for an inline field.
	Name() string

	encodeField(t tide.Transcoder, b tide.MapBuilder, v R) error
	decodeField(t tide.Transcoder, m tide.VirtualMap) (any, error)
}

// FieldOf describes a field of R holding a P.
type FieldOf[R, P any] struct {
	name   string
	codec  Codec[P]
	get    func(R) P
	inline bool
}

// Field declares a named field read from R by get and encoded by c.
// Wrap c with Optional or Default to make the field omittable.
func Field[R, P any](name string, c Codec[P], get func(R) P) *FieldOf[R, P] {
	return &FieldOf[R, P]{name: name, codec: c, get: get}
}

// Inline declares a field whose struct codec's fields are written directly
// into the enclosing record. c may be a struct codec or an Optional or
// Default wrapper around one.
func Inline[R, P any](c Codec[P], get func(R) P) *FieldOf[R, P] {
	return &FieldOf[R, P]{codec: c, get: get, inline: true}
}

// Of returns the decoded value of this field.
func (f *FieldOf[R, P]) Of(v Values) P {
	x, _ := v.Lookup(f)
	p, _ := x.(P)
	return p
}

func (f *FieldOf[R, P]) Name() string {
	return f.name
}

// Codec returns the field's value codec.
func (f *FieldOf[R, P]) Codec() Codec[P] {
	return f.codec
}

func (f *FieldOf[R, P]) encodeField(t tide.Transcoder, b tide.MapBuilder, v R) error {
	p := f.get(v)
	if f.inline {
		return f.encodeInline(t, b, p)
	}
	if b.Keyed() {
		if o, ok := lookThrough[omitter[P]](f.codec); ok && o.omit(p) {
			return nil
		}
	}
	n, err := f.codec.Encode(t, p)
	if err != nil {
		return errors.WithPath(errors.PhaseEncode, err, f.name)
	}
	return b.Put(f.name, n)
}

func (f *FieldOf[R, P]) decodeField(t tide.Transcoder, m tide.VirtualMap) (any, error) {
	if f.inline {
		return f.decodeInline(t, m)
	}
	if !m.Has(f.name) {
		if a, ok := lookThrough[absentor[P]](f.codec); ok {
			return a.absent(), nil
		}
		return nil, errors.FieldMissing(errors.PhaseDecode, []string{f.name}, f.name)
	}
	n, err := m.Get(f.name)
	if err != nil {
		return nil, errors.WithPath(errors.PhaseDecode, err, f.name)
	}
	p, err := f.codec.Decode(t, n)
	if err != nil {
		return nil, errors.WithPath(errors.PhaseDecode, err, f.name)
	}
	return p, nil
}

func (f *FieldOf[R, P]) encodeInline(t tide.Transcoder, b tide.MapBuilder, p P) error {
	if in, ok := lookThrough[inliner[P]](f.codec); ok {
		return in.encodeInline(t, b, p)
	}
	fs, ok := AsFieldSet(f.codec)
	if !ok {
		return notStruct[P](errors.PhaseEncode)
	}
	return fs.EncodeFields(t, b, p)
}

func (f *FieldOf[R, P]) decodeInline(t tide.Transcoder, m tide.VirtualMap) (any, error) {
	if in, ok := lookThrough[inliner[P]](f.codec); ok {
		return in.decodeInline(t, m)
	}
	fs, ok := AsFieldSet(f.codec)
	if !ok {
		return nil, notStruct[P](errors.PhaseDecode)
	}
	return fs.DecodeFields(t, m)
}

func notStruct[P any](phase errors.Phase) error {
	return errors.New(phase, errors.KindNotStruct).
		GoType(typeName[P]()).
		Detail("inline field requires a struct codec").
		Build()
}

// StructCodec encodes R as a record of its fields in declaration order.
// Positional formats rely on that order; keyed formats use field names.
type StructCodec[R any] struct {
	construct func(Values) R
	fields    []StructField[R]
}

// Struct returns a codec for R. construct receives the decoded values in the
// same order as fields.
func Struct[R any](construct func(Values) R, fields ...StructField[R]) *StructCodec[R] {
	return &StructCodec[R]{construct: construct, fields: fields}
}

// Fields returns the field list.
func (c *StructCodec[R]) Fields() []StructField[R] {
	return c.fields
}

func (c *StructCodec[R]) Encode(t tide.Transcoder, v R) (any, error) {
	b, err := t.EncodeMap()
	if err != nil {
		return nil, err
	}
	if err := c.EncodeFields(t, b, v); err != nil {
		return nil, err
	}
	return b.Build()
}

func (c *StructCodec[R]) Decode(t tide.Transcoder, n any) (R, error) {
	m, err := t.DecodeMap(n)
	if err != nil {
		var zero R
		return zero, err
	}
	return c.DecodeFields(t, m)
}

// EncodeFields writes the fields of v into b.
func (c *StructCodec[R]) EncodeFields(t tide.Transcoder, b tide.MapBuilder, v R) error {
	for _, f := range c.fields {
		if err := f.encodeField(t, b, v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFields reads the fields of R from m.
func (c *StructCodec[R]) DecodeFields(t tide.Transcoder, m tide.VirtualMap) (R, error) {
	vals := record.Make(len(c.fields))
	for i, f := range c.fields {
		x, err := f.decodeField(t, m)
		if err != nil {
			var zero R
			return zero, err
		}
		vals.Set(i, f, x)
	}
	return c.construct(vals), nil
}
