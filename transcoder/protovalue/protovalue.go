// Package protovalue encodes to and from protobuf google.protobuf.Value
// messages through the tree transcoder. 64-bit integers are carried as
// decimal strings, as protojson does, since Value numbers are doubles.
package protovalue

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/tree"
)

// Format is the name reported by the protobuf value transcoder.
const Format = "protovalue"

var std = tree.New(tree.Options{Format: Format, Nullable: true, LongsAsStrings: true})

// Transcoder returns the shared protobuf value transcoder.
func Transcoder() *tree.Transcoder {
	return std
}

// Encode encodes v with c as a structpb.Value.
func Encode[T any](c codec.Codec[T], v T) (*structpb.Value, error) {
	n, err := c.Encode(std, v)
	if err != nil {
		return nil, err
	}
	return ToValue(n)
}

// Decode decodes a structpb.Value with c.
func Decode[T any](c codec.Codec[T], v *structpb.Value) (T, error) {
	return c.Decode(std, v.AsInterface())
}

// Marshal encodes v with c as a binary protobuf Value message.
func Marshal[T any](c codec.Codec[T], v T) ([]byte, error) {
	pv, err := Encode(c, v)
	if err != nil {
		return nil, err
	}
	out, err := proto.Marshal(pv)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Format(Format).
			Cause(err).
			Build()
	}
	return out, nil
}

// Unmarshal decodes a binary protobuf Value message with c.
func Unmarshal[T any](c codec.Codec[T], data []byte) (T, error) {
	n, err := Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(std, n)
}

// Parse reads a binary protobuf Value message into a tree node.
func Parse(data []byte) (any, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(data, &pv); err != nil {
		return nil, errors.ParseFailed(Format, err)
	}
	return pv.AsInterface(), nil
}

// ToValue converts a tree node to a structpb.Value.
func ToValue(n any) (*structpb.Value, error) {
	pv, err := structpb.NewValue(tree.Plain(n))
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Format(Format).
			GoType(fmt.Sprintf("%T", n)).
			Cause(err).
			Build()
	}
	return pv, nil
}

// Text renders v in protojson form, for display.
func Text(v *structpb.Value) (string, error) {
	out, err := protojson.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
