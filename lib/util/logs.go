package util

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// SetLogLevel maps LOG_LEVEL onto the logger; unknown values fall back to error
func SetLogLevel(logger *logrus.Logger, level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.ErrorLevel)
	}
}

// NewLogger creates the JSON logger shared by the Lambda entrypoints
func NewLogger(isLocal bool, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		PrettyPrint: isLocal,
	})
	SetLogLevel(logger, level)
	return logger
}
