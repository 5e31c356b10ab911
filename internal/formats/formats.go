// Package formats dispatches codec operations by format name, for callers
// such as the CLI that pick formats at run time.
package formats

import (
	"encoding/hex"
	"slices"
	"strings"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/binary"
	"github.com/wippyai/tide/transcoder/json"
	"github.com/wippyai/tide/transcoder/protovalue"
	"github.com/wippyai/tide/transcoder/toml"
	"github.com/wippyai/tide/transcoder/yaml"
)

// Format names accepted by Marshal and Unmarshal.
const (
	Binary     = binary.Format
	JSON       = json.Format
	TOML       = toml.Format
	YAML       = yaml.Format
	ProtoValue = protovalue.Format
)

// Names lists the supported formats.
var Names = []string{Binary, JSON, TOML, YAML, ProtoValue}

// Options tune format-specific behavior.
type Options struct {
	// MaxStringLength caps binary strings, in characters.
	MaxStringLength int
	// Indent renders JSON with two-space indentation.
	Indent bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MaxStringLength: binary.DefaultOptions().MaxStringLength}
}

// Known reports whether name is a supported format.
func Known(name string) bool {
	return slices.Contains(Names, name)
}

// IsBinary reports whether documents of the format are raw bytes rather than text.
func IsBinary(name string) bool {
	return name == Binary || name == ProtoValue
}

func unknown(phase errors.Phase, name string) error {
	return errors.New(phase, errors.KindUnsupported).
		Format(name).
		Detail("unknown format, expected one of %s", strings.Join(Names, ", ")).
		Build()
}

// Marshal encodes v with c in the named format.
func Marshal[T any](name string, c codec.Codec[T], v T, opts Options) ([]byte, error) {
	switch name {
	case Binary:
		return binary.MarshalWith(binary.NewWithOptions(binary.Options{MaxStringLength: opts.MaxStringLength}), c, v)
	case JSON:
		if opts.Indent {
			return json.MarshalIndent(c, v)
		}
		return json.Marshal(c, v)
	case TOML:
		return toml.Marshal(c, v)
	case YAML:
		return yaml.Marshal(c, v)
	case ProtoValue:
		return protovalue.Marshal(c, v)
	}
	return nil, unknown(errors.PhaseEncode, name)
}

// Unmarshal decodes data with c from the named format.
func Unmarshal[T any](name string, c codec.Codec[T], data []byte, opts Options) (T, error) {
	switch name {
	case Binary:
		return binary.UnmarshalWith(binary.NewWithOptions(binary.Options{MaxStringLength: opts.MaxStringLength}), c, data)
	case JSON:
		return json.Unmarshal(c, data)
	case TOML:
		return toml.Unmarshal(c, data)
	case YAML:
		return yaml.Unmarshal(c, data)
	case ProtoValue:
		return protovalue.Unmarshal(c, data)
	}
	var zero T
	return zero, unknown(errors.PhaseDecode, name)
}

// ToText renders a document for display. Binary documents become hex.
func ToText(name string, data []byte) string {
	if IsBinary(name) {
		return hex.EncodeToString(data)
	}
	return string(data)
}

// FromText reverses ToText. Whitespace inside hex input is ignored.
func FromText(name string, text string) ([]byte, error) {
	if !IsBinary(name) {
		return []byte(text), nil
	}
	p, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		return nil, errors.ParseFailed(name, err)
	}
	return p, nil
}
