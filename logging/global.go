// Package logging wraps log/slog with a console handler and a rotating JSON file,
// and exposes package-level helpers used across the pipeline.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

type LoggingService struct {
	Logger *slog.Logger
	file   *RotatingLogger
}

var (
	DefaultLoggingService *LoggingService
	mu                    sync.RWMutex
)

// InitLogger initializes the global logger and sets it as the slog default
func InitLogger(opts Options) {
	logger, file := NewLogger(opts)

	mu.Lock()
	DefaultLoggingService = &LoggingService{Logger: logger, file: file}
	mu.Unlock()

	slog.SetDefault(logger)
}

// Close flushes and closes the rotating file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if DefaultLoggingService == nil || DefaultLoggingService.file == nil {
		return nil
	}
	err := DefaultLoggingService.file.Close()
	DefaultLoggingService.file = nil
	return err
}

// current returns the initialized logger or a stderr fallback
func current(level slog.Level) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	current(slog.LevelInfo).Info(msg, args...)
}

func Error(msg string, args ...any) {
	current(slog.LevelError).Error(msg, args...)
}

func Warn(msg string, args ...any) {
	current(slog.LevelWarn).Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	current(slog.LevelDebug).Debug(msg, args...)
}

// Logger returns the global logger, for components that take a *slog.Logger
func Logger() *slog.Logger {
	return current(slog.LevelInfo)
}
