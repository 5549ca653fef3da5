package logger_i

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/asunkara/PDFChatAPI/internal/config"
)

// Logger is a thin slog wrapper that scopes every line to a component and
// attaches the call site on warn/error/debug lines.
type Logger struct {
	inner *slog.Logger
}

func Init() {
	options := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	var handler slog.Handler
	if config.IS_PROD {
		options.Level = config.LOG_LEVEL_PROD
		handler = slog.NewJSONHandler(os.Stdout, options)
	} else {
		handler = slog.NewTextHandler(os.Stdout, options)
	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(component string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", component),
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logWithSource(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logWithSource(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logWithSource(slog.LevelDebug, msg, args...)
}

func (l *Logger) logWithSource(level slog.Level, msg string, args ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	// skip runtime.Callers, logWithSource and the level wrapper
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	if frame, _ := runtime.CallersFrames(pcs[:]).Next(); frame.File != "" {
		args = append(args, "source", fmt.Sprintf("%s:%d", frame.File, frame.Line))
	}
	l.inner.Log(context.Background(), level, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}
