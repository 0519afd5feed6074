package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logLevel = new(slog.LevelVar)
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
)

// SetupLogging routes the package logger to w, or to a rotated file when
// logFile is set. The returned closer releases the file.
func SetupLogging(w io.Writer, logFile string) io.Closer {
	if logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		}
		logger = slog.New(slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)
		return rotator
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return nopCloser{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Logger returns the configured structured logger
func Logger() *slog.Logger {
	return logger
}

// SetLogLevel sets the global log level from its name
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "", "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	logger.Warn(fmt.Sprintf(format, args...))
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	logger.Info(fmt.Sprintf(format, args...))
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}
