package util

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"error", logrus.ErrorLevel},
		{"info", logrus.InfoLevel},
		{"DEBUG", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"other", logrus.ErrorLevel},
		{"", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		logger := logrus.New()
		SetLogLevel(logger, tt.level)
		assert.Equal(t, tt.want, logger.GetLevel(), "level %q", tt.level)
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(true, "info")

	formatter, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
	assert.True(t, formatter.PrettyPrint)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
