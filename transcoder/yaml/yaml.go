// Package yaml reads and writes YAML documents through the tree transcoder.
package yaml

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/tree"
)

// Format is the name reported by the YAML transcoder.
const Format = "yaml"

var std = tree.New(tree.Options{Format: Format, Nullable: true})

// Transcoder returns the shared YAML transcoder.
func Transcoder() *tree.Transcoder {
	return std
}

// Marshal encodes v with c as a YAML document.
func Marshal[T any](c codec.Codec[T], v T) ([]byte, error) {
	n, err := c.Encode(std, v)
	if err != nil {
		return nil, err
	}
	return Render(n)
}

// Unmarshal decodes a YAML document with c.
func Unmarshal[T any](c codec.Codec[T], data []byte) (T, error) {
	n, err := Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(std, n)
}

// Parse reads a YAML document into a tree node.
func Parse(data []byte) (any, error) {
	var n any
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, errors.ParseFailed(Format, err)
	}
	return n, nil
}

// Render writes a tree node as YAML. Records keep field order.
func Render(n any) ([]byte, error) {
	node, err := toNode(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Format(Format).
			Cause(err).
			Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Format(Format).
			Cause(err).
			Build()
	}
	return buf.Bytes(), nil
}

func toNode(n any) (*yaml.Node, error) {
	switch v := n.(type) {
	case *tree.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			item, _ := v.Get(k)
			child, err := toNode(item)
			if err != nil {
				return nil, errors.WithPath(errors.PhaseEncode, err, k)
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			node.Content = append(node.Content, key, child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(n); err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Format(Format).
			Cause(err).
			Build()
	}
	return node, nil
}
