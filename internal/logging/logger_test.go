package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		logger, err := New("warn", format)
		require.NoError(t, err, "format %q", format)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", "console")
	assert.Error(t, err)
}

func TestVerbose(t *testing.T) {
	assert.Equal(t, "debug", Verbose("warn", true))
	assert.Equal(t, "warn", Verbose("warn", false))
	assert.Equal(t, "info", Verbose("", false))
}
