package logger

import (
	"context"
	"time"

	ctxutil "github.com/hexanode/accounts/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogBuilder accumulates structured fields for a single log entry.
// The entry is emitted when Log is called.
type LogBuilder struct {
	level   zapcore.Level
	message string
	fields  []zap.Field
}

func withContext(ctx context.Context, level zapcore.Level, message string) *LogBuilder {
	b := &LogBuilder{
		level:   level,
		message: message,
		fields:  make([]zap.Field, 0, 8),
	}

	if ctx == nil {
		return b
	}

	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		b.fields = append(b.fields, zap.String("request_id", requestID))
	}
	if clientIP := ctxutil.GetClientIP(ctx); clientIP != "" {
		b.fields = append(b.fields, zap.String("client_ip", clientIP))
	}
	if userID, ok := ctxutil.GetUserID(ctx); ok {
		b.fields = append(b.fields, zap.Uint("user_id", userID))
	}
	if module := ctxutil.GetModule(ctx); module != "" {
		b.fields = append(b.fields, zap.String("module", module))
	}
	if function := ctxutil.GetFunction(ctx); function != "" {
		b.fields = append(b.fields, zap.String("function", function))
	}

	return b
}

func DebugWithContext(ctx context.Context, message string) *LogBuilder {
	return withContext(ctx, zapcore.DebugLevel, message)
}

func InfoWithContext(ctx context.Context, message string) *LogBuilder {
	return withContext(ctx, zapcore.InfoLevel, message)
}

func WarnWithContext(ctx context.Context, message string) *LogBuilder {
	return withContext(ctx, zapcore.WarnLevel, message)
}

func ErrorWithContext(ctx context.Context, message string) *LogBuilder {
	return withContext(ctx, zapcore.ErrorLevel, message)
}

func (b *LogBuilder) String(key, value string) *LogBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *LogBuilder) Int(key string, value int) *LogBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *LogBuilder) Int64(key string, value int64) *LogBuilder {
	b.fields = append(b.fields, zap.Int64(key, value))
	return b
}

func (b *LogBuilder) Uint(key string, value uint) *LogBuilder {
	b.fields = append(b.fields, zap.Uint(key, value))
	return b
}

func (b *LogBuilder) Bool(key string, value bool) *LogBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *LogBuilder) Duration(value time.Duration) *LogBuilder {
	b.fields = append(b.fields, zap.Duration("duration", value))
	return b
}

func (b *LogBuilder) Err(err error) *LogBuilder {
	b.fields = append(b.fields, zap.Error(err))
	return b
}

// Log emits the accumulated entry at the builder's level.
func (b *LogBuilder) Log() {
	if ce := log.Check(b.level, b.message); ce != nil {
		ce.Write(b.fields...)
	}
}
