package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/tide/stream"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	stream.SetLogger(zap.New(core))
	t.Cleanup(func() { stream.SetLogger(nil) })

	got, err := stream.Unmarshal(stream.Default(stream.Int, 3), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), got)
	assert.Equal(t, 1, logs.FilterMessage("read failed, using default").Len())

	stream.SetLogger(nil)
	assert.NotNil(t, stream.Logger())
}
