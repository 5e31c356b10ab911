package schemas

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tide/internal/formats"
	"github.com/wippyai/tide/metrics"
	"github.com/wippyai/tide/transcoder/binary"
)

func TestBuiltinConvertsThroughEveryFormat(t *testing.T) {
	opts := formats.DefaultOptions()
	for _, s := range Builtin().All() {
		sample, err := s.Sample(formats.JSON, opts)
		require.NoError(t, err, s.Name())

		for _, f := range formats.Names {
			t.Run(s.Name()+"/"+f, func(t *testing.T) {
				doc, err := s.Convert(sample, formats.JSON, f, opts)
				require.NoError(t, err)
				back, err := s.Convert(doc, f, formats.JSON, opts)
				require.NoError(t, err, "document: %s", formats.ToText(f, doc))
				assert.JSONEq(t, string(sample), string(back))
			})
		}
	}
}

func TestPersonSample(t *testing.T) {
	s, err := Builtin().Lookup("person")
	require.NoError(t, err)

	data, err := s.Sample(formats.JSON, formats.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Maya","age":69}`, string(data))

	data, err = s.Sample(formats.Binary, formats.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "044d61796145", formats.ToText(formats.Binary, data))
}

func TestPlayerInlinePosition(t *testing.T) {
	data, err := binary.Marshal(PlayerCodec, samplePlayer())
	require.NoError(t, err)
	got, err := binary.Unmarshal(PlayerCodec, data)
	require.NoError(t, err)
	assert.Equal(t, samplePlayer(), got)

	s, err := Builtin().Lookup("player")
	require.NoError(t, err)
	doc, err := s.Sample(formats.JSON, formats.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"x":12.5,"y":64,"z":-3.25`)
}

func TestOutlineOmitsEmptyChildren(t *testing.T) {
	s, err := Builtin().Lookup("outline")
	require.NoError(t, err)
	doc, err := s.Convert([]byte(`{"name":"leaf"}`), formats.JSON, formats.JSON, formats.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `{"name":"leaf"}`, string(doc))
}

func TestLookupUnknown(t *testing.T) {
	_, err := Builtin().Lookup("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "person")
}

func TestInstrument(t *testing.T) {
	promReg := prometheus.NewRegistry()
	col := metrics.NewCollector(promReg, "tide")
	reg := Builtin().Instrument(col)

	s, err := reg.Lookup("person")
	require.NoError(t, err)
	_, err = s.Convert([]byte(`{"name":"a","age":1}`), formats.JSON, formats.YAML, formats.DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, reg.All(), len(Builtin().All()))
	n, err := testutil.GatherAndCount(promReg, "tide_codec_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
