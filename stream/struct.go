package stream

import (
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/internal/record"
	"github.com/wippyai/tide/wire"
)

// Values carries read field values to a struct constructor, in field order.
type Values = record.Values

// StructField is one member of a stream struct's field list.
type StructField[R any] interface {
	write(buf *wire.Buffer, v R) error
	read(buf *wire.Buffer) (any, error)
}

// FieldOf describes a positional field of R holding a P.
type FieldOf[R, P any] struct {
	name  string
	codec Codec[P]
	get   func(R) P
}

// Field declares a positional field read from R by get.
func Field[R, P any](c Codec[P], get func(R) P) *FieldOf[R, P] {
	return &FieldOf[R, P]{codec: c, get: get}
}

// Named sets the name reported in error paths.
func (f *FieldOf[R, P]) Named(name string) *FieldOf[R, P] {
	f.name = name
	return f
}

// Of returns the read value of this field.
func (f *FieldOf[R, P]) Of(v Values) P {
	x, _ := v.Lookup(f)
	p, _ := x.(P)
	return p
}

func (f *FieldOf[R, P]) write(buf *wire.Buffer, v R) error {
	if err := f.codec.Write(buf, f.get(v)); err != nil {
		return f.wrap(errors.PhaseEncode, err)
	}
	return nil
}

func (f *FieldOf[R, P]) read(buf *wire.Buffer) (any, error) {
	p, err := f.codec.Read(buf)
	if err != nil {
		return nil, f.wrap(errors.PhaseDecode, err)
	}
	return p, nil
}

func (f *FieldOf[R, P]) wrap(phase errors.Phase, err error) error {
	if f.name == "" {
		return err
	}
	return errors.WithPath(phase, err, f.name)
}

type structCodec[R any] struct {
	construct func(Values) R
	fields    []StructField[R]
}

// Struct writes the fields of R back to back in declaration order.
func Struct[R any](construct func(Values) R, fields ...StructField[R]) Codec[R] {
	return structCodec[R]{construct: construct, fields: fields}
}

func (c structCodec[R]) Write(buf *wire.Buffer, v R) error {
	for _, f := range c.fields {
		if err := f.write(buf, v); err != nil {
			return err
		}
	}
	return nil
}

func (c structCodec[R]) Read(buf *wire.Buffer) (R, error) {
	vals := record.Make(len(c.fields))
	for i, f := range c.fields {
		x, err := f.read(buf)
		if err != nil {
			var zero R
			return zero, err
		}
		vals.Set(i, f, x)
	}
	return c.construct(vals), nil
}
