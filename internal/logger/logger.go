// Package logger sets up the application's logrus loggers.  InfoLogger
// and ErrorLogger write to stdout and, when a log directory is
// configured, to lumberjack-rotated files.  DebugLogger is silent
// unless the level is debug.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/config"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
	DebugLogger = logrus.New()
)

// Init configures the three loggers from cfg.  It is safe to call once
// at startup before any goroutine logs.
func Init(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	configure(InfoLogger, cfg, "app.log", logrus.InfoLevel)
	configure(ErrorLogger, cfg, "error.log", logrus.WarnLevel)
	configure(DebugLogger, cfg, "debug.log", logrus.DebugLevel)

	InfoLogger.SetLevel(level)
	if level < logrus.DebugLevel {
		DebugLogger.SetOutput(io.Discard)
	}
	logrus.SetFormatter(formatter(cfg.Format))
}

func configure(l *logrus.Logger, cfg config.LogConfig, file string, level logrus.Level) {
	l.SetFormatter(formatter(cfg.Format))
	l.SetLevel(level)
	if cfg.Dir == "" {
		l.SetOutput(os.Stdout)
		return
	}
	l.SetOutput(io.MultiWriter(os.Stdout, NewRotatingFile(cfg, filepath.Join(cfg.Dir, file))))
}

func formatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}
	}
	return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}
}

// NewRotatingFile returns a lumberjack writer for path using the rotation
// limits from cfg.  The directory is created on first write.
func NewRotatingFile(cfg config.LogConfig, path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}

// NewFileLogger builds a standalone logrus logger writing only to a
// rotated file.  The booking event consumer uses it for booking.log.
func NewFileLogger(cfg config.LogConfig, path string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	l.SetOutput(NewRotatingFile(cfg, path))
	return l
}
