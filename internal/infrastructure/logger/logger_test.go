package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNew(t *testing.T) {
	t.Run("console logger", func(t *testing.T) {
		logger := New("debug", "console", "stdout")
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("json logger filters below level", func(t *testing.T) {
		logger := New("warn", "json", "stderr")
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, GormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLogLevel("anything"))
}
