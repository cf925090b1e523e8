package logger

import (
	"os"

	"github.com/hexanode/accounts/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger = zap.NewNop()

// InitLogger initializes the process-wide Zap logger.
func InitLogger(cfg *config.Config) error {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.DebugLevel
	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	if cfg.App.Environment == "production" {
		level = zapcore.InfoLevel
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	log = zap.New(core, zap.AddCaller())
	return nil
}

// GetLogger returns the process-wide logger. Safe to call before InitLogger;
// it yields a no-op logger until initialization.
func GetLogger() *zap.Logger {
	return log
}

// SetLogger swaps the process-wide logger. Used by tests.
func SetLogger(l *zap.Logger) {
	log = l
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}
