package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Logger — обёртка над zap с контекстными методами.
type Logger struct {
	l *zap.Logger
}

func Init(level string, asJSON bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger: parse level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if !asJSON {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("logger: build: %w", err)
	}

	mu.Lock()
	global = l
	mu.Unlock()

	return nil
}

// SetNopLogger отключает логирование; используется в тестах.
func SetNopLogger() {
	mu.Lock()
	global = zap.NewNop()
	mu.Unlock()
}

func L() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &Logger{l: global}
}

func With(fields ...Field) *Logger {
	return &Logger{l: L().l.With(fields...)}
}

func (lg *Logger) With(fields ...Field) *Logger {
	return &Logger{l: lg.l.With(fields...)}
}

func (lg *Logger) Debug(_ context.Context, msg string, fields ...Field) {
	lg.l.Debug(msg, fields...)
}

func (lg *Logger) Info(_ context.Context, msg string, fields ...Field) {
	lg.l.Info(msg, fields...)
}

func (lg *Logger) Warn(_ context.Context, msg string, fields ...Field) {
	lg.l.Warn(msg, fields...)
}

func (lg *Logger) Error(_ context.Context, msg string, fields ...Field) {
	lg.l.Error(msg, fields...)
}

func (lg *Logger) Fatal(_ context.Context, msg string, fields ...Field) {
	lg.l.Fatal(msg, fields...)
}

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }
func Fatal(ctx context.Context, msg string, fields ...Field) { L().Fatal(ctx, msg, fields...) }
