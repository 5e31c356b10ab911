// Package schemas holds the sample schemas used by the tide command and the
// examples, and a registry to look them up by name.
package schemas

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/either"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/internal/formats"
	"github.com/wippyai/tide/metrics"
)

// Schema is a named codec with a sample value, with its Go type erased.
type Schema interface {
	Name() string
	Description() string
	// Sample encodes the sample value in the named format.
	Sample(format string, opts formats.Options) ([]byte, error)
	// Convert decodes data in one format and encodes it in another.
	Convert(data []byte, from, to string, opts formats.Options) ([]byte, error)

	instrument(col *metrics.Collector) Schema
}

type entry[T any] struct {
	name        string
	description string
	codec       codec.Codec[T]
	sample      T
}

// Define creates a Schema for c.
func Define[T any](name, description string, c codec.Codec[T], sample T) Schema {
	return &entry[T]{name: name, description: description, codec: c, sample: sample}
}

func (e *entry[T]) Name() string {
	return e.name
}

func (e *entry[T]) Description() string {
	return e.description
}

func (e *entry[T]) Sample(format string, opts formats.Options) ([]byte, error) {
	return formats.Marshal(format, e.codec, e.sample, opts)
}

func (e *entry[T]) Convert(data []byte, from, to string, opts formats.Options) ([]byte, error) {
	v, err := formats.Unmarshal(from, e.codec, data, opts)
	if err != nil {
		return nil, err
	}
	return formats.Marshal(to, e.codec, v, opts)
}

func (e *entry[T]) instrument(col *metrics.Collector) Schema {
	cp := *e
	cp.codec = metrics.Wrap(col, e.name, e.codec)
	return &cp
}

// Registry is an ordered set of schemas.
type Registry struct {
	schemas []Schema
}

// NewRegistry creates a registry holding schemas in the given order.
func NewRegistry(schemas ...Schema) *Registry {
	return &Registry{schemas: schemas}
}

// All returns the schemas in registration order.
func (r *Registry) All() []Schema {
	return r.schemas
}

// Lookup finds a schema by name.
func (r *Registry) Lookup(name string) (Schema, error) {
	i := slices.IndexFunc(r.schemas, func(s Schema) bool { return s.Name() == name })
	if i < 0 {
		names := make([]string, len(r.schemas))
		for j, s := range r.schemas {
			names[j] = s.Name()
		}
		return nil, errors.InvalidInput(errors.PhaseConfig,
			"unknown schema "+name+", expected one of "+strings.Join(names, ", "))
	}
	return r.schemas[i], nil
}

// Instrument returns a copy of r whose codecs report to col.
func (r *Registry) Instrument(col *metrics.Collector) *Registry {
	out := make([]Schema, len(r.schemas))
	for i, s := range r.schemas {
		out[i] = s.instrument(col)
	}
	return &Registry{schemas: out}
}

// Builtin returns the registry of sample schemas.
func Builtin() *Registry {
	return NewRegistry(
		Define("person", "name and age record", PersonCodec, Person{Name: "Maya", Age: 69}),
		Define("player", "player profile with inline position, defaults, enum and ordered map", PlayerCodec, samplePlayer()),
		Define("consumable", "item with a list of consume effects (tagged union)", ConsumableCodec, sampleConsumable()),
		Define("outline", "recursive tree of named nodes", NodeCodec, sampleOutline()),
		Define("session", "session with KSUID, UUID int array, bytes and tagged either", SessionCodec, sampleSession()),
	)
}

func samplePlayer() Player {
	nick := "maya"
	return Player{
		ID:       uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"),
		Nickname: &nick,
		Position: Position{X: 12.5, Y: 64, Z: -3.25},
		Level:    42,
		Mode:     Creative,
		Tags:     []string{"builder", "admin"},
		Scores:   map[string]int64{"arena": 9000000000, "parkour": -3},
	}
}

func sampleConsumable() Consumable {
	return Consumable{
		Item: "honey_bottle",
		Effects: []ConsumeEffect{
			RemoveStatusEffects{Effects: []string{"poison"}},
			ApplyStatusEffects{
				Effects:     []StatusEffect{{ID: "regeneration", Amplifier: 1, Duration: 100}},
				Probability: 0.5,
			},
			PlaySound{Sound: "entity.generic.drink"},
		},
	}
}

func sampleOutline() Node {
	return Node{
		Name: "root",
		Children: []Node{
			{Name: "codec", Children: []Node{{Name: "struct"}, {Name: "union"}}},
			{Name: "stream"},
		},
	}
}

func sampleSession() Session {
	var raw [20]byte
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	id, _ := ksuid.FromBytes(raw[:])
	return Session{
		ID:      id,
		Owner:   uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"),
		Started: 1700000000000,
		Token:   []byte{0xde, 0xad, 0xbe, 0xef},
		Outcome: either.Right[string](int32(1200)),
	}
}
