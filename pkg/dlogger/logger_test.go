package dlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetLogger(t *testing.T) {
	for _, lvl := range []string{LogLevelInfo, LogLevelDebug, LogLevelWarn, LogLevelError} {
		level := lvl
		t.Run(level, func(t *testing.T) {
			t.Parallel()
			l, err := GetLogger(level, OutputPaths("stderr"))
			require.NoError(t, err)
			assert.True(t, ValidLevel(level))
			assert.Equal(t, level == LogLevelDebug, l.Core().Enabled(zap.DebugLevel))
		})
	}
}

func TestGetLoggerNone(t *testing.T) {
	l, err := GetLogger(LogLevelNone)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.ErrorLevel))
}

func TestGetLoggerInvalid(t *testing.T) {
	_, err := GetLogger("chatty")
	require.Error(t, err)
	assert.False(t, ValidLevel("chatty"))
	assert.Panics(t, func() { _ = MustGetLogger("chatty") })
}

func TestConsole(t *testing.T) {
	l := MustGetLogger(LogLevelInfo, Console(), OutputPaths("stderr"))
	assert.NotNil(t, l)
}
