package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "yumexpress-be"

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// Init builds the global logger: JSON in production, colored console
// otherwise. LOG_LEVEL overrides the default level of either.
func Init(env string) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.InitialFields = map[string]interface{}{"service": serviceName}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl, ok := parseLevel(os.Getenv("LOG_LEVEL")); ok {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	Replace(l)
}

func parseLevel(s string) (zapcore.Level, bool) {
	if s == "" {
		return zapcore.InfoLevel, false
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, false
	}
	return lvl, true
}

// Replace swaps the global logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) (restore func()) {
	mu.Lock()
	prev := log
	log = l
	mu.Unlock()

	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}

// L returns the global logger, initializing it from APP_ENV on first use.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	Init(os.Getenv("APP_ENV"))
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Sync() {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
