package binary

import (
	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/wire"
)

var std = New()

// Marshal encodes v with c using the default binary transcoder.
func Marshal[T any](c codec.Codec[T], v T) ([]byte, error) {
	return MarshalWith(std, c, v)
}

// MarshalWith encodes v with c using t.
func MarshalWith[T any](t *Transcoder, c codec.Codec[T], v T) ([]byte, error) {
	n, err := c.Encode(t, v)
	if err != nil {
		return nil, err
	}
	return fragment(n)
}

// Unmarshal decodes data with c. Trailing bytes are an error.
func Unmarshal[T any](c codec.Codec[T], data []byte) (T, error) {
	return UnmarshalWith(std, c, data)
}

// UnmarshalWith decodes data with c using t. Trailing bytes are an error.
func UnmarshalWith[T any](t *Transcoder, c codec.Codec[T], data []byte) (T, error) {
	buf := getCursor(data)
	defer putCursor(buf)

	v, err := c.Decode(t, buf)
	if err != nil {
		var zero T
		return zero, err
	}
	if rest := buf.Len(); rest > 0 {
		var zero T
		return zero, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Format(Format).
			Detail("%d trailing bytes after value", rest).
			Build()
	}
	return v, nil
}

// Write encodes v with c and appends it to buf.
func Write[T any](buf *wire.Buffer, c codec.Codec[T], v T) error {
	p, err := Marshal(c, v)
	if err != nil {
		return err
	}
	_, err = buf.Write(p)
	return err
}

// Read decodes one value with c from the cursor of buf.
func Read[T any](buf *wire.Buffer, c codec.Codec[T]) (T, error) {
	return c.Decode(std, buf)
}
