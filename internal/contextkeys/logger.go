package contextkeys

import (
	"context"

	"real-estate-marketplace/internal/core/port"
)

type loggerCtxKey struct{}

// discard подставляется там, где запрос пришел не через HTTP-middleware (тесты, фоновые задачи).
var discard port.LoggerPort = discardLogger{}

// ContextWithLogger кладет логгер запроса, обычно уже с trace_id в полях.
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// LoggerFromContext никогда не возвращает nil.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if l, ok := ctx.Value(loggerCtxKey{}).(port.LoggerPort); ok {
		return l
	}
	return discard
}

type discardLogger struct{}

func (discardLogger) Info(string, port.Fields)                 {}
func (discardLogger) Warn(string, port.Fields)                 {}
func (discardLogger) Error(string, error, port.Fields)         {}
func (discardLogger) Debug(string, port.Fields)                {}
func (d discardLogger) WithFields(port.Fields) port.LoggerPort { return d }
