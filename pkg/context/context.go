package ctxutil

import (
	"context"
	"net/http"
	"time"

	"github.com/hexanode/accounts/internal/constants"
)

// ContextKey re-exports the shared key type.
type ContextKey = constants.ContextKey

// Re-export context keys
const (
	RequestIDKey = constants.CtxKeyRequestID
	UserIDKey    = constants.CtxKeyUserID
	ClientIPKey  = constants.CtxKeyClientIP
	UserAgentKey = constants.CtxKeyUserAgent
	StartTimeKey = constants.CtxKeyStartTime
	ModuleKey    = constants.CtxKeyModule
	FunctionKey  = constants.CtxKeyFunction
)

// WithOperation annotates the context with the module and function about to run.
func WithOperation(ctx context.Context, module, function string) context.Context {
	ctx = context.WithValue(ctx, ModuleKey, module)
	return context.WithValue(ctx, FunctionKey, function)
}

// WithUserID adds the authenticated user id to context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// NewContextWithRequest seeds a request-scoped context with client metadata
// for the structured logger.
func NewContextWithRequest(ctx context.Context, r *http.Request, module, function string) context.Context {
	ctx = WithOperation(ctx, module, function)
	ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	if r != nil {
		ctx = context.WithValue(ctx, UserAgentKey, r.UserAgent())
		if id := r.Header.Get(constants.HeaderXRequestID); id != "" {
			ctx = context.WithValue(ctx, RequestIDKey, id)
		}
	}
	return ctx
}

// Getter functions
func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(RequestIDKey).(string); ok {
		return val
	}
	return ""
}

func GetClientIP(ctx context.Context) string {
	if val, ok := ctx.Value(ClientIPKey).(string); ok {
		return val
	}
	return ""
}

func GetUserAgent(ctx context.Context) string {
	if val, ok := ctx.Value(UserAgentKey).(string); ok {
		return val
	}
	return ""
}

func GetUserID(ctx context.Context) (uint, bool) {
	val, ok := ctx.Value(UserIDKey).(uint)
	return val, ok
}

func GetModule(ctx context.Context) string {
	if val, ok := ctx.Value(ModuleKey).(string); ok {
		return val
	}
	return ""
}

func GetFunction(ctx context.Context) string {
	if val, ok := ctx.Value(FunctionKey).(string); ok {
		return val
	}
	return ""
}

// GetDuration returns the elapsed time since the request-start marker, if any.
func GetDuration(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}
