package codec

import (
	stderrors "errors"
	"reflect"

	"github.com/wippyai/tide"
	"github.com/wippyai/tide/errors"
)

// Codec encodes values of type T through a Transcoder and decodes them back.
// Codecs are immutable and may be shared between goroutines.
type Codec[T any] interface {
	Encode(t tide.Transcoder, v T) (any, error)
	Decode(t tide.Transcoder, n any) (T, error)
}

// FieldSet is implemented by codecs whose value is a record of named fields.
// Inline fields and union variants splice these fields into an enclosing record.
type FieldSet[R any] interface {
	EncodeFields(t tide.Transcoder, b tide.MapBuilder, v R) error
	DecodeFields(t tide.Transcoder, m tide.VirtualMap) (R, error)
}

// FieldSource is implemented by wrappers that forward to a struct codec.
type FieldSource[R any] interface {
	FieldSet() (FieldSet[R], bool)
}

// AsFieldSet returns the field set behind c, looking through wrappers.
func AsFieldSet[R any](c Codec[R]) (FieldSet[R], bool) {
	switch x := any(c).(type) {
	case FieldSource[R]:
		return x.FieldSet()
	case FieldSet[R]:
		return x, true
	}
	return nil, false
}

// Wrapper is implemented by codecs that decorate another codec without
// changing its encoding. Struct fields and maps look through wrappers for
// Optional, Default and Inline behavior.
type Wrapper[T any] interface {
	Unwrap() Codec[T]
}

// lookThrough returns the first codec in c's wrapper chain implementing I.
func lookThrough[I, T any](c Codec[T]) (I, bool) {
	for c != nil {
		if x, ok := any(c).(I); ok {
			return x, true
		}
		w, ok := c.(Wrapper[T])
		if !ok {
			break
		}
		c = w.Unwrap()
	}
	var zero I
	return zero, false
}

// omitter reports values that keyed formats may leave out of a record.
type omitter[P any] interface {
	omit(v P) bool
}

// absentor supplies the value of a field that is missing from a record.
type absentor[P any] interface {
	absent() P
}

// inliner splices a wrapped struct codec into an enclosing record.
type inliner[P any] interface {
	encodeInline(t tide.Transcoder, b tide.MapBuilder, v P) error
	decodeInline(t tide.Transcoder, m tide.VirtualMap) (P, error)
}

// phaseError returns err as a structured error of the given phase.
func phaseError(phase errors.Phase, err error, detail string) error {
	if err == nil {
		return nil
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err
	}
	return errors.Wrap(phase, errors.KindInvalidData, err, detail)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
