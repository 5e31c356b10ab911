// Package json reads and writes JSON documents through the tree transcoder.
package json

import (
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/tree"
)

// Format is the name reported by the JSON transcoder.
const Format = "json"

// api keeps numbers as json.Number so 64-bit integers survive decoding.
var api = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

var pretty = jsoniter.Config{
	EscapeHTML:    true,
	SortMapKeys:   true,
	IndentionStep: 2,
}.Froze()

var std = tree.New(tree.Options{Format: Format, Nullable: true})

// Transcoder returns the shared JSON transcoder.
func Transcoder() *tree.Transcoder {
	return std
}

// Marshal encodes v with c as a JSON document.
func Marshal[T any](c codec.Codec[T], v T) ([]byte, error) {
	n, err := c.Encode(std, v)
	if err != nil {
		return nil, err
	}
	return Render(n)
}

// Unmarshal decodes a JSON document with c.
func Unmarshal[T any](c codec.Codec[T], data []byte) (T, error) {
	n, err := Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(std, n)
}

// Parse reads a JSON document into a tree node.
func Parse(data []byte) (any, error) {
	var n any
	if err := api.Unmarshal(data, &n); err != nil {
		return nil, errors.ParseFailed(Format, err)
	}
	return n, nil
}

// Render writes a tree node as compact JSON. Records keep field order.
func Render(n any) ([]byte, error) {
	return render(api, n)
}

// RenderIndent writes a tree node as JSON indented by two spaces.
func RenderIndent(n any) ([]byte, error) {
	return render(pretty, n)
}

func render(cfg jsoniter.API, n any) ([]byte, error) {
	stream := cfg.BorrowStream(nil)
	defer cfg.ReturnStream(stream)

	writeNode(stream, n)
	if stream.Error != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Format(Format).
			Cause(stream.Error).
			Build()
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

func writeNode(stream *jsoniter.Stream, n any) {
	switch v := n.(type) {
	case *tree.Object:
		stream.WriteObjectStart()
		for i, k := range v.Keys() {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			item, _ := v.Get(k)
			writeNode(stream, item)
		}
		stream.WriteObjectEnd()
	case []any:
		stream.WriteArrayStart()
		for i, item := range v {
			if i > 0 {
				stream.WriteMore()
			}
			writeNode(stream, item)
		}
		stream.WriteArrayEnd()
	case stdjson.Number:
		stream.WriteRaw(string(v))
	case nil:
		stream.WriteNil()
	default:
		stream.WriteVal(v)
	}
}

// MarshalIndent encodes v with c as JSON indented by two spaces.
func MarshalIndent[T any](c codec.Codec[T], v T) ([]byte, error) {
	n, err := c.Encode(std, v)
	if err != nil {
		return nil, err
	}
	return RenderIndent(n)
}
