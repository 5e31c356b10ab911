// Package tide provides format-agnostic codec combinators for Go.
//
// A schema is declared once as a composition of small codecs and can then be
// encoded to and decoded from a bit-exact binary wire format, JSON, TOML, YAML
// or protobuf structpb trees without per-format schema logic.
//
// # Architecture Overview
//
//	tide/                  Root package with the Transcoder interfaces
//	├── codec/             Codec[T], primitives, combinators, Struct
//	├── stream/            Binary-only codecs over wire.Buffer
//	├── wire/              VarInt, strings, UUID and bit set primitives
//	├── either/            Either[L, R] value type
//	├── transcoder/        Binary and tree transcoders plus format adapters
//	├── metrics/           Prometheus instrumentation of codecs
//	├── errors/            Structured error types
//	└── cmd/tide/          Command line converter and playground
//
// # Quick Start
//
// Declare a schema:
//
//	type Person struct {
//	    Name string
//	    Age  int32
//	}
//
//	var (
//	    personName = codec.Field("name", codec.String, func(p Person) string { return p.Name })
//	    personAge  = codec.Field("age", codec.VarInt, func(p Person) int32 { return p.Age })
//
//	    PersonCodec = codec.Struct[Person](func(v codec.Values) Person {
//	        return Person{Name: personName.Of(v), Age: personAge.Of(v)}
//	    }, personName, personAge)
//	)
//
// Encode it to any format:
//
//	data, err := json.Marshal(PersonCodec, Person{"Maya", 69})
//	// {"name":"Maya","age":69}
//
//	raw, err := binary.Marshal(PersonCodec, Person{"Maya", 69})
//	// 04 4d 61 79 61 45
//
// # Errors
//
// Every failure is an *errors.Error. Use errors.Is(err, errors.Decoding) or
// errors.Is(err, errors.Encoding) to classify it by phase.
//
// # Thread Safety
//
// Codecs are immutable after construction and safe for concurrent use.
// Transcoder nodes and wire buffers are per call.
package tide
