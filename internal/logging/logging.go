package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"gstbook/internal/config"
)

// New builds a logrus logger from config. Unknown levels fall back to info.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// Error logs err with the component and operation that produced it.
func Error(logger logrus.FieldLogger, component, operation string, fields logrus.Fields, err error) {
	entry := logger.WithFields(logrus.Fields{
		"component": component,
		"operation": operation,
	})
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(err.Error())
}
