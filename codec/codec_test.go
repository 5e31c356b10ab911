package codec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tide/codec"
	tideerrors "github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/binary"
	"github.com/wippyai/tide/transcoder/json"
	"github.com/wippyai/tide/transcoder/protovalue"
	"github.com/wippyai/tide/transcoder/toml"
	"github.com/wippyai/tide/transcoder/yaml"
)

// roundTrip encodes v with c in every format and checks it decodes back.
func roundTrip[T any](t *testing.T, c codec.Codec[T], v T) {
	t.Helper()

	formats := []struct {
		name      string
		marshal   func() ([]byte, error)
		unmarshal func([]byte) (T, error)
	}{
		{"binary", func() ([]byte, error) { return binary.Marshal(c, v) }, func(b []byte) (T, error) { return binary.Unmarshal(c, b) }},
		{"json", func() ([]byte, error) { return json.Marshal(c, v) }, func(b []byte) (T, error) { return json.Unmarshal(c, b) }},
		{"toml", func() ([]byte, error) { return toml.Marshal(c, v) }, func(b []byte) (T, error) { return toml.Unmarshal(c, b) }},
		{"yaml", func() ([]byte, error) { return yaml.Marshal(c, v) }, func(b []byte) (T, error) { return yaml.Unmarshal(c, b) }},
		{"protovalue", func() ([]byte, error) { return protovalue.Marshal(c, v) }, func(b []byte) (T, error) { return protovalue.Unmarshal(c, b) }},
	}

	for _, f := range formats {
		t.Run(f.name, func(t *testing.T) {
			data, err := f.marshal()
			require.NoError(t, err)
			got, err := f.unmarshal(data)
			require.NoError(t, err, "document: %s", data)
			if diff := cmp.Diff(v, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s\ndocument: %s", diff, data)
			}
		})
	}
}

func TestPersonJSON(t *testing.T) {
	data, err := json.Marshal(personCodec, person{"Maya", 69})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Maya","age":69}`, string(data))

	got, err := json.Unmarshal(personCodec, []byte(`{"age":69,"name":"Maya"}`))
	require.NoError(t, err)
	assert.Equal(t, person{"Maya", 69}, got)
}

func TestPersonBinary(t *testing.T) {
	data, err := binary.Marshal(personCodec, person{"Maya", 69})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 'M', 'a', 'y', 'a', 0x45}, data)

	got, err := binary.Unmarshal(personCodec, data)
	require.NoError(t, err)
	assert.Equal(t, person{"Maya", 69}, got)
}

func TestPersonRoundTrip(t *testing.T) {
	roundTrip(t, personCodec, person{"Maya", 69})
}

func TestPlayerRoundTrip(t *testing.T) {
	roundTrip(t, playerCodec, samplePlayer())

	anon := samplePlayer()
	anon.Nickname = nil
	roundTrip(t, playerCodec, anon)
}

func TestMissingField(t *testing.T) {
	_, err := json.Unmarshal(personCodec, []byte(`{"name":"Maya"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tideerrors.Decoding))

	var e *tideerrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, tideerrors.KindFieldMissing, e.Kind)
	assert.Contains(t, err.Error(), `"age"`)
}

func TestFieldErrorPath(t *testing.T) {
	_, err := json.Unmarshal(personCodec, []byte(`{"name":"Maya","age":"old"}`))
	require.Error(t, err)

	var e *tideerrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, []string{"age"}, e.Path)
	assert.Equal(t, tideerrors.KindTypeMismatch, e.Kind)
}

func TestBinaryTruncated(t *testing.T) {
	_, err := binary.Unmarshal(personCodec, []byte{0x04, 'M', 'a'})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tideerrors.Decoding))
}

func TestBinaryTrailingBytes(t *testing.T) {
	_, err := binary.Unmarshal(codec.VarInt, []byte{0x01, 0x02})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tideerrors.Decoding))
}

type box[T any] struct {
	V T
}

// boxed wraps c in a single-field record, since TOML documents must be tables.
func boxed[T any](c codec.Codec[T]) codec.Codec[box[T]] {
	f := codec.Field("v", c, func(b box[T]) T { return b.V })
	return codec.Struct[box[T]](func(v codec.Values) box[T] { return box[T]{V: f.Of(v)} }, f)
}

func TestPrimitives(t *testing.T) {
	t.Run("bool", func(t *testing.T) { roundTrip(t, boxed(codec.Bool), box[bool]{true}) })
	t.Run("byte", func(t *testing.T) { roundTrip(t, boxed(codec.Byte), box[int8]{-7}) })
	t.Run("short", func(t *testing.T) { roundTrip(t, boxed(codec.Short), box[int16]{-1234}) })
	t.Run("int", func(t *testing.T) { roundTrip(t, boxed(codec.Int), box[int32]{-70000}) })
	t.Run("long", func(t *testing.T) { roundTrip(t, boxed(codec.List(codec.Long)), box[[]int64]{[]int64{1 << 62, -5}}) })
	t.Run("varlong", func(t *testing.T) { roundTrip(t, boxed(codec.VarLong), box[int64]{-1}) })
	t.Run("float", func(t *testing.T) { roundTrip(t, boxed(codec.List(codec.Float)), box[[]float32]{[]float32{0.1, -2.5}}) })
	t.Run("double", func(t *testing.T) { roundTrip(t, boxed(codec.List(codec.Double)), box[[]float64]{[]float64{3.25, 1e-9}}) })
	t.Run("bytes", func(t *testing.T) { roundTrip(t, boxed(codec.Bytes), box[[]byte]{[]byte{0xde, 0xad, 0xbe, 0xef}}) })
}

func TestFixedWidthBinary(t *testing.T) {
	data, err := binary.Marshal(codec.Int, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, data)

	data, err = binary.Marshal(codec.Short, -2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfe}, data)

	data, err = binary.Marshal(codec.Bool, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, data)
}

func TestUnit(t *testing.T) {
	data, err := binary.Marshal(codec.Unit, struct{}{})
	require.NoError(t, err)
	assert.Empty(t, data)

	out, err := json.Marshal(codec.Unit, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}
