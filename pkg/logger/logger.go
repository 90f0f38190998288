package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level       string
	ServiceName string
	Development bool
}

// Logger wraps zap.Logger with service-scoped fields
type Logger struct {
	l *zap.Logger
}

var (
	global *Logger
	mu     sync.RWMutex
)

// Init initializes the global logger
func Init(cfg *Config) error {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.MessageKey = "msg"
	zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	if cfg.Level != "" {
		if level, err := zapcore.ParseLevel(cfg.Level); err == nil {
			zapCfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	l, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}

	mu.Lock()
	global = &Logger{l: l}
	mu.Unlock()
	return nil
}

// Get returns the global logger, falling back to a no-op logger if Init
// was never called (keeps tests and tools safe).
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return &Logger{l: zap.NewNop()}
	}
	return global
}

// Sync flushes any buffered log entries
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return nil
	}
	return global.l.Sync()
}

// With returns a logger with additional fixed fields
func (log *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: log.l.With(fields...)}
}

func (log *Logger) Debug(msg string, fields ...zap.Field) { log.l.Debug(msg, fields...) }
func (log *Logger) Info(msg string, fields ...zap.Field)  { log.l.Info(msg, fields...) }
func (log *Logger) Warn(msg string, fields ...zap.Field)  { log.l.Warn(msg, fields...) }
func (log *Logger) Error(msg string, fields ...zap.Field) { log.l.Error(msg, fields...) }
func (log *Logger) Fatal(msg string, fields ...zap.Field) { log.l.Fatal(msg, fields...) }
