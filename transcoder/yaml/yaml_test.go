package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tide/codec"
	tideerrors "github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/yaml"
)

type person struct {
	Name string
	Age  int32
}

var (
	personName = codec.Field("name", codec.String, func(p person) string { return p.Name })
	personAge  = codec.Field("age", codec.VarInt, func(p person) int32 { return p.Age })

	personCodec = codec.Struct[person](func(v codec.Values) person {
		return person{Name: personName.Of(v), Age: personAge.Of(v)}
	}, personName, personAge)
)

func TestMarshal(t *testing.T) {
	data, err := yaml.Marshal(personCodec, person{"Maya", 69})
	require.NoError(t, err)
	assert.Equal(t, "name: Maya\nage: 69\n", string(data))
}

func TestUnmarshal(t *testing.T) {
	got, err := yaml.Unmarshal(personCodec, []byte("age: 69\nname: Maya\n"))
	require.NoError(t, err)
	assert.Equal(t, person{"Maya", 69}, got)
}

func TestNestedList(t *testing.T) {
	c := codec.List(personCodec)
	data, err := yaml.Marshal(c, []person{{"a", 1}, {"b", 2}})
	require.NoError(t, err)
	assert.Equal(t, "- name: a\n  age: 1\n- name: b\n  age: 2\n", string(data))

	got, err := yaml.Unmarshal(c, data)
	require.NoError(t, err)
	assert.Equal(t, []person{{"a", 1}, {"b", 2}}, got)
}

func TestParseError(t *testing.T) {
	_, err := yaml.Parse([]byte("a: [1, 2"))
	var e *tideerrors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, yaml.Format, e.Format)
}
