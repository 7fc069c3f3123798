// Package logging configures the logrus logger shared by the inky commands
// and services.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and destination of the logs.
type Options struct {
	Level  string // logrus level name, "info" when empty
	File   string // log file, stderr when empty
	MaxAge int    // days to keep rotated files, no rotation when 0
}

// New returns a logger configured with opts.
//
// Logs written to a file are JSON, logs written to stderr are text.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()
	if err := Configure(l, opts); err != nil {
		return nil, err
	}
	return l, nil
}

// Configure applies opts to an existing logger.
func Configure(l *logrus.Logger, opts Options) error {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s'", opts.Level)
	}
	l.SetLevel(lvl)

	callerPrettyfier := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	var out io.Writer
	switch {
	case opts.File == "":
		out = os.Stderr
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: callerPrettyfier,
		})
	case opts.MaxAge > 0:
		out = &lumberjack.Logger{
			Filename: opts.File,
			MaxAge:   opts.MaxAge,
			MaxSize:  100,
			Compress: true,
		}
	default:
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file '%s': %w", opts.File, err)
		}
		out = file
	}
	if opts.File != "" {
		l.SetReportCaller(true)
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
			CallerPrettyfier: callerPrettyfier,
		})
	}
	l.SetOutput(out)
	return nil
}

// Discard returns a logger that drops everything, for tests and quiet commands.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
