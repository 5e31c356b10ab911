// Package codec declares schemas once and runs them against any Transcoder.
//
// A Codec[T] only calls Transcoder primitives, so the same codec graph encodes
// to the binary wire format, JSON, TOML, YAML and structpb trees.
//
// # Combinators
//
//	Optional(c)             nil pointer is absent; the inner codec never sees it
//	Default(c, def)         decode failure or missing field yields def
//	List(c)                 ordered sequence
//	Map(k, v)               sequence of {key, value} entries, last key wins
//	Enum[E](names...)       ordinal in binary, constant name in text formats
//	Transform(c, to, from)  projection onto another type
//	Either(l, r)            untagged alternatives, left wins
//	TaggedEither(l, r)      alternatives with an explicit "right" flag
//	Recursive(factory)      self-referential schemas
//	Union(k, keyOf, m)      variants selected by a "type" key
//
// # Structs
//
// Struct takes a constructor and an ordered field list. Fields are encoded in
// that order, which is also the binary layout:
//
//	name := codec.Field("name", codec.String, func(p Person) string { return p.Name })
//	age  := codec.Field("age", codec.VarInt, func(p Person) int32 { return p.Age })
//	c := codec.Struct[Person](func(v codec.Values) Person {
//	    return Person{Name: name.Of(v), Age: age.Of(v)}
//	}, name, age)
//
// Inline splices another struct's fields into the enclosing record.
package codec
