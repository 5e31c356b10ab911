package tide

import "github.com/google/uuid"

// Transcoder converts primitive values to and from one serialization format.
// Encoded values and decode inputs are format nodes: a byte fragment for the
// binary format, a tree node (map, slice, scalar) for JSON, TOML and friends.
type Transcoder interface {
	// Format returns a short format name such as "binary" or "json".
	Format() string

	EncodeBool(v bool) (any, error)
	DecodeBool(n any) (bool, error)
	EncodeByte(v int8) (any, error)
	DecodeByte(n any) (int8, error)
	EncodeShort(v int16) (any, error)
	DecodeShort(n any) (int16, error)
	EncodeInt(v int32) (any, error)
	DecodeInt(n any) (int32, error)
	EncodeVarInt(v int32) (any, error)
	DecodeVarInt(n any) (int32, error)
	EncodeLong(v int64) (any, error)
	DecodeLong(n any) (int64, error)
	EncodeVarLong(v int64) (any, error)
	DecodeVarLong(n any) (int64, error)
	EncodeFloat(v float32) (any, error)
	DecodeFloat(n any) (float32, error)
	EncodeDouble(v float64) (any, error)
	DecodeDouble(n any) (float64, error)
	EncodeString(v string) (any, error)
	DecodeString(n any) (string, error)
	EncodeBytes(v []byte) (any, error)
	DecodeBytes(n any) ([]byte, error)
	EncodeUUID(v uuid.UUID) (any, error)
	DecodeUUID(n any) (uuid.UUID, error)

	// EncodeEnum writes an enum constant. Formats choose between the ordinal
	// and the name.
	EncodeEnum(ordinal int, name string) (any, error)
	// DecodeEnum returns the ordinal of the constant stored in n.
	DecodeEnum(n any, names []string) (int, error)

	EncodeNone() (any, error)
	EncodeSome(n any) (any, error)
	// DecodeOptional reports whether a value is present and returns its node.
	DecodeOptional(n any) (inner any, present bool, err error)

	EncodeList(size int) (ListBuilder, error)
	DecodeList(n any) (ListReader, error)

	EncodeMap() (MapBuilder, error)
	DecodeMap(n any) (VirtualMap, error)
}

// ListBuilder collects encoded list items in order.
type ListBuilder interface {
	Add(n any) error
	Build() (any, error)
}

// ListReader yields decoded list item nodes in order.
type ListReader interface {
	Len() int
	Next() (any, error)
}

// MapBuilder collects the fields of a record.
type MapBuilder interface {
	// Keyed reports whether fields are addressed by name. Only keyed
	// formats may omit fields.
	Keyed() bool
	Put(key string, n any) error
	Build() (any, error)
}

// VirtualMap gives keyed access to a decoded record.
// Positional formats answer fields in the order they are requested.
type VirtualMap interface {
	Keyed() bool
	Has(key string) bool
	Get(key string) (any, error)
}

// Rewinder is implemented by cursor-style decode nodes so trial decodes can
// be undone.
type Rewinder interface {
	Mark() int
	Rewind(mark int)
}

// Mark returns a restore function for n. Nodes that are not cursors need
// no restore and get a no-op.
func Mark(n any) func() {
	r, ok := n.(Rewinder)
	if !ok {
		return func() {}
	}
	m := r.Mark()
	return func() { r.Rewind(m) }
}
