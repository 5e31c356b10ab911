// Package toml reads and writes TOML documents through the tree transcoder.
//
// TOML has no null: absent optional fields are left out of tables and an
// absent value inside an array is an encoding error. Maps are written as
// arrays of {key, value} tables.
package toml

import (
	"fmt"

	gotoml "github.com/pelletier/go-toml"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/tree"
)

// Format is the name reported by the TOML transcoder.
const Format = "toml"

var std = tree.New(tree.Options{Format: Format})

// Transcoder returns the shared TOML transcoder.
func Transcoder() *tree.Transcoder {
	return std
}

// Marshal encodes v with c as a TOML document. The value must encode to a record.
func Marshal[T any](c codec.Codec[T], v T) ([]byte, error) {
	n, err := c.Encode(std, v)
	if err != nil {
		return nil, err
	}
	return Render(n)
}

// Unmarshal decodes a TOML document with c.
func Unmarshal[T any](c codec.Codec[T], data []byte) (T, error) {
	n, err := Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(std, n)
}

// Parse reads a TOML document into a tree node.
func Parse(data []byte) (any, error) {
	t, err := gotoml.LoadBytes(data)
	if err != nil {
		return nil, errors.ParseFailed(Format, err)
	}
	return t.ToMap(), nil
}

// Render writes a record node as a TOML document.
func Render(n any) ([]byte, error) {
	root, ok := tree.Plain(n).(map[string]any)
	if !ok {
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Format(Format).
			GoType(fmt.Sprintf("%T", n)).
			Detail("document root must be a table").
			Build()
	}
	t, err := gotoml.TreeFromMap(root)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Format(Format).
			Cause(err).
			Build()
	}
	out, err := t.Marshal()
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Format(Format).
			Cause(err).
			Build()
	}
	return out, nil
}
