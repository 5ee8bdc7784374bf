// Package logger, uygulama genelinde kullanılan yapılandırılmış (structured) logger'ı kurar.
//
// Log satırları JSON olarak stdout'a yazılır; seviye LOG_LEVEL env variable'ı ile ayarlanır.
// Her katman kendi alt logger'ını logger.Named("collection") gibi türetir.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

// New, JSON encoder'lı bir zap logger oluşturur.
// LOG_LEVEL boş veya geçersizse "info" kullanılır.
func New() (*zap.Logger, error) {
	return NewWithLevel(os.Getenv("LOG_LEVEL"))
}

// NewWithLevel, verilen seviye ile logger oluşturur (debug, info, warn, error).
func NewWithLevel(levelName string) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(levelName)))); err != nil {
		_ = level.UnmarshalText([]byte(defaultLevel))
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "message",
		TimeKey:       "timestamp",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	return cfg.Build()
}

// OrNop, nil logger yerine no-op logger döner.
// Constructor'lar opsiyonel logger parametresini bununla normalize eder.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
