package contextkeys

import (
	"context"
	"testing"

	"real-estate-marketplace/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	discardLogger
	fields port.Fields
}

func (r *recordingLogger) WithFields(f port.Fields) port.LoggerPort {
	return &recordingLogger{fields: f}
}

func TestLoggerFromContext(t *testing.T) {
	t.Run("empty context gets discard logger", func(t *testing.T) {
		l := LoggerFromContext(context.Background())
		require.NotNil(t, l)
		assert.Equal(t, discard, l.WithFields(port.Fields{"a": 1}))
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		rec := &recordingLogger{}
		ctx := ContextWithLogger(context.Background(), rec)
		assert.Same(t, rec, LoggerFromContext(ctx))
	})

	t.Run("nil logger is not stored", func(t *testing.T) {
		rec := &recordingLogger{}
		ctx := ContextWithLogger(context.Background(), rec)
		ctx = ContextWithLogger(ctx, nil)
		assert.Same(t, rec, LoggerFromContext(ctx))
	})
}
