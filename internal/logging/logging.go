// Package logging builds the process logger and adapts it to the loggers
// expected by GORM and backlite.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/config"
)

// New returns a logger writing to stderr. An empty format picks text in
// development and json everywhere else. An unknown level falls back to info.
func New(cfg config.Log, env string) *logrus.Logger {
	level, format := cfg.Level, cfg.Format
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if format == "" {
		format = "json"
		if env == "" || env == "development" {
			format = "text"
		}
	}
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		if level != "" {
			log.WithField("level", level).Warn("Unknown log level, using info")
		}
	}
	log.SetLevel(lvl)
	return log
}

// GormLogger routes GORM's messages through log. Every statement is logged
// when logSQL is set, otherwise only slow queries and errors.
func GormLogger(log *logrus.Logger, logSQL bool) logger.Interface {
	level := logger.Warn
	if logSQL {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// TaskLogger adapts logrus to backlite's logger. backlite passes structured
// attributes as alternating keys and values.
type TaskLogger struct {
	log logrus.FieldLogger
}

func NewTaskLogger(log logrus.FieldLogger) *TaskLogger {
	return &TaskLogger{log: log.WithField("component", "tasks")}
}

func (l *TaskLogger) Info(message string, params ...any) {
	l.log.WithFields(fields(params)).Info(message)
}

func (l *TaskLogger) Error(message string, params ...any) {
	l.log.WithFields(fields(params)).Error(message)
}

func fields(params []any) logrus.Fields {
	f := make(logrus.Fields, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		key, ok := params[i].(string)
		if !ok {
			key = "arg"
		}
		f[key] = params[i+1]
	}
	if len(params)%2 == 1 {
		f["extra"] = params[len(params)-1]
	}
	return f
}
