package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"firestige.xyz/framedump/internal/config"
)

type logrusAdapter struct {
	entry *logrus.Entry
}

// New builds a logger writing to stderr and, when enabled, to a rotating file.
func New(cfg config.LogConfig) (Logger, error) {
	writer := NewMultiWriter().Add(os.Stderr)
	if cfg.File.Enabled {
		if _, err := writer.AddFileAppender(cfg.File); err != nil {
			return nil, fmt.Errorf("failed to create file output: %w", err)
		}
	}
	return newWithWriter(cfg, writer)
}

func newWithWriter(cfg config.LogConfig, out io.Writer) (Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	f, err := newFormatter(cfg)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetFormatter(f)
	l.SetLevel(level)
	l.SetOutput(out)
	if cfg.Caller {
		l.SetReportCaller(true)
		l.AddHook(callerHook{})
	}

	return &logrusAdapter{entry: logrus.NewEntry(l)}, nil
}

func newFormatter(cfg config.LogConfig) (logrus.Formatter, error) {
	switch strings.ToLower(cfg.Format) {
	case "pattern", "":
		return &formatter{pattern: cfg.Pattern, time: cfg.Time}, nil
	case "text":
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: cfg.Time, DisableColors: true}, nil
	case "json":
		return &logrus.JSONFormatter{TimestampFormat: cfg.Time}, nil
	case "prefixed":
		return &prefixed.TextFormatter{FullTimestamp: true, TimestampFormat: cfg.Time}, nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s (must be pattern/text/json/prefixed)", cfg.Format)
	}
}

func (l *logrusAdapter) Trace(args ...interface{})                 { l.entry.Trace(args...) }
func (l *logrusAdapter) Tracef(format string, args ...interface{}) { l.entry.Tracef(format, args...) }

func (l *logrusAdapter) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *logrusAdapter) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l *logrusAdapter) Info(args ...interface{})                 { l.entry.Info(args...) }
func (l *logrusAdapter) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *logrusAdapter) Warn(args ...interface{})                 { l.entry.Warn(args...) }
func (l *logrusAdapter) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *logrusAdapter) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *logrusAdapter) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *logrusAdapter) WithField(field string, value interface{}) Logger {
	return &logrusAdapter{entry: l.entry.WithField(field, value)}
}
func (l *logrusAdapter) WithFields(fields map[string]interface{}) Logger {
	return &logrusAdapter{entry: l.entry.WithFields(fields)}
}
func (l *logrusAdapter) WithError(err error) Logger {
	return &logrusAdapter{entry: l.entry.WithError(err)}
}

func (l *logrusAdapter) IsTraceEnabled() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.TraceLevel)
}
func (l *logrusAdapter) IsDebugEnabled() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}
func (l *logrusAdapter) IsInfoEnabled() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.InfoLevel)
}
