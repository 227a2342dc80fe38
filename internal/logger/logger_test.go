package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/raimundomartins/rendimentos/internal/config"
)

func TestBuildLevels(t *testing.T) {
	l, err := Build(config.LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = Build(config.LogConfig{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = Build(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, "console", normalizeFormat(" Text "))
	assert.Equal(t, "json", normalizeFormat(""))
	assert.Equal(t, "json", normalizeFormat("logfmt"))
}
