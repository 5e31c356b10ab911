package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tide/codec"
	tideerrors "github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/transcoder/binary"
	"github.com/wippyai/tide/transcoder/json"
	"github.com/wippyai/tide/transcoder/toml"
)

type label struct {
	Value string
}

type tagged struct {
	Name  string
	Label label
}

var (
	labelValue = codec.Field("value", codec.String, func(l label) string { return l.Value })
	labelCodec = codec.Struct[label](func(v codec.Values) label { return label{Value: labelValue.Of(v)} }, labelValue)

	taggedName  = codec.Field("name", codec.String, func(t tagged) string { return t.Name })
	taggedLabel = codec.Inline(labelCodec, func(t tagged) label { return t.Label })
	taggedCodec = codec.Struct[tagged](func(v codec.Values) tagged {
		return tagged{Name: taggedName.Of(v), Label: taggedLabel.Of(v)}
	}, taggedName, taggedLabel)
)

func TestInlineFlattens(t *testing.T) {
	v := tagged{Name: "maya", Label: label{Value: "inner_value"}}

	out, err := json.Marshal(taggedCodec, v)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"maya","value":"inner_value"}`, string(out))

	got, err := json.Unmarshal(taggedCodec, out)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	data, err := binary.Marshal(taggedCodec, v)
	require.NoError(t, err)
	want := append([]byte{0x04}, "maya"...)
	want = append(want, 0x0b)
	want = append(want, "inner_value"...)
	assert.Equal(t, want, data)

	roundTrip(t, taggedCodec, v)
}

type badge struct {
	Name  string
	Label *label
}

var (
	badgeName  = codec.Field("name", codec.String, func(b badge) string { return b.Name })
	badgeLabel = codec.Inline(codec.Optional(labelCodec), func(b badge) *label { return b.Label })
	badgeCodec = codec.Struct[badge](func(v codec.Values) badge {
		return badge{Name: badgeName.Of(v), Label: badgeLabel.Of(v)}
	}, badgeName, badgeLabel)
)

func TestInlineOptional(t *testing.T) {
	with := badge{Name: "a", Label: &label{Value: "b"}}
	without := badge{Name: "a"}

	out, err := json.Marshal(badgeCodec, without)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a"}`, string(out))

	got, err := json.Unmarshal(badgeCodec, out)
	require.NoError(t, err)
	assert.Nil(t, got.Label)

	out, err = json.Marshal(badgeCodec, with)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","value":"b"}`, string(out))

	data, err := binary.Marshal(badgeCodec, without)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 'a', 0x00}, data)

	roundTrip(t, badgeCodec, with)
	roundTrip(t, badgeCodec, without)
}

type sign struct {
	Name  string
	Label label
}

var (
	signName  = codec.Field("name", codec.String, func(s sign) string { return s.Name })
	signLabel = codec.Inline(codec.Default(labelCodec, label{Value: "blank"}), func(s sign) label { return s.Label })
	signCodec = codec.Struct[sign](func(v codec.Values) sign {
		return sign{Name: signName.Of(v), Label: signLabel.Of(v)}
	}, signName, signLabel)
)

func TestInlineDefault(t *testing.T) {
	got, err := json.Unmarshal(signCodec, []byte(`{"name":"exit"}`))
	require.NoError(t, err)
	assert.Equal(t, sign{Name: "exit", Label: label{Value: "blank"}}, got)

	roundTrip(t, signCodec, sign{Name: "exit", Label: label{Value: "north"}})
}

func TestInlineNonStruct(t *testing.T) {
	type wrapper struct {
		N int32
	}
	n := codec.Inline(codec.VarInt, func(w wrapper) int32 { return w.N })
	c := codec.Struct[wrapper](func(v codec.Values) wrapper { return wrapper{N: n.Of(v)} }, n)

	_, err := json.Marshal(c, wrapper{N: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tideerrors.Encoding))

	var e *tideerrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, tideerrors.KindNotStruct, e.Kind)

	_, err = json.Unmarshal(c, []byte(`{}`))
	assert.True(t, errors.Is(err, tideerrors.Decoding))
}

func TestStructArg(t *testing.T) {
	c := codec.Struct[person](func(v codec.Values) person {
		return person{Name: codec.Arg[string](v, 0), Age: codec.Arg[int32](v, 1)}
	}, personName, personAge)

	got, err := binary.Unmarshal(c, []byte{0x01, 'x', 0x02})
	require.NoError(t, err)
	assert.Equal(t, person{Name: "x", Age: 2}, got)
}

func TestNestedStructPath(t *testing.T) {
	type team struct {
		Leader person
	}
	leader := codec.Field("leader", personCodec, func(t team) person { return t.Leader })
	c := codec.Struct[team](func(v codec.Values) team { return team{Leader: leader.Of(v)} }, leader)

	_, err := json.Unmarshal(c, []byte(`{"leader":{"name":"Maya"}}`))
	require.Error(t, err)
	var e *tideerrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, []string{"leader", "age"}, e.Path)

	_, err = toml.Unmarshal(c, []byte("[leader]\nname = \"Maya\"\nage = 3\n"))
	require.NoError(t, err)
}
