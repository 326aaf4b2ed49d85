package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "json")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("not-a-level", "console")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := FromCore(core)

	l.Info("wrote rows",
		IntField("count", 3),
		StringField("table", "asset"),
		Field("mode", "upsert"),
		ErrorField(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, int64(3), ctx["count"])
	assert.Equal(t, "asset", ctx["table"])
	assert.Equal(t, "upsert", ctx["mode"])
	assert.Equal(t, "boom", ctx["error"])
}
