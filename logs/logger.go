// Package logs wraps a single logrus logger shared by every package.
// Before Init it only writes to the console; Init adds a rotated log file.
package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"probinary_go/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05"

// rotatingFileHook mirrors every entry into a lumberjack-managed file without colors.
type rotatingFileHook struct {
	formatter logrus.Formatter
	file      *lumberjack.Logger
}

func (h *rotatingFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *rotatingFileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.file.Write(line)
	return err
}

var (
	log      = newConsoleLogger(logrus.InfoLevel)
	fileHook *rotatingFileHook
)

func newConsoleLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:            true,
		FullTimestamp:          true,
		TimestampFormat:        timestampFormat,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	l.SetOutput(os.Stdout)
	return l
}

// Init switches to a logger at cfg.LogLevel that also appends to logFilePath.
// An unknown level falls back to info.
func Init(cfg *config.LogConfig, logFilePath string) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Only our logger should print; stray calls on the logrus default go nowhere.
	logrus.SetOutput(io.Discard)
	logrus.StandardLogger().Hooks = make(logrus.LevelHooks)

	hook := &rotatingFileHook{
		formatter: &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		},
		file: &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		},
	}

	l := newConsoleLogger(level)
	l.AddHook(hook)
	log, fileHook = l, hook

	Infof("Logging to %s at level %s", logFilePath, level)
	return nil
}

// SetOutput redirects console output; tests use it to stay quiet.
func SetOutput(w io.Writer) { log.SetOutput(w) }

// Close flushes and closes the log file, if Init opened one.
func Close() {
	Info("Closing log file.")
	if fileHook != nil {
		fileHook.file.Close()
	}
}

// WithFields returns an entry carrying structured fields such as the session id.
func WithFields(fields logrus.Fields) *logrus.Entry { return log.WithFields(fields) }

func Debug(args ...interface{})                 { log.Debug(args...) }
func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }
func Info(args ...interface{})                  { log.Info(args...) }
func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Warn(args ...interface{})                  { log.Warn(args...) }
func Warnf(format string, args ...interface{})  { log.Warnf(format, args...) }
func Error(args ...interface{})                 { log.Error(args...) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }
func Fatal(args ...interface{})                 { log.Fatal(args...) }
func Fatalf(format string, args ...interface{}) { log.Fatalf(format, args...) }
