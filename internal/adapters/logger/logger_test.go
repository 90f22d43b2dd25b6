package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"real-estate-marketplace/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPoster struct {
	tags    []string
	records []map[string]interface{}
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.tags = append(p.tags, tag)
	p.records = append(p.records, message.(port.Fields))
	return nil
}

func (p *recordingPoster) Close() error { return nil }

func TestSlogAdapter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelInfo, IsJSON: true})

	logger.WithFields(port.Fields{"component": "test"}).Error("boom", errors.New("bad"), port.Fields{"id": 7})
	logger.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "bad", entry["error"])
	assert.EqualValues(t, 7, entry["id"])
}

func TestFluentLoggerAdapter_LevelsAndFields(t *testing.T) {
	poster := &recordingPoster{}
	adapter, err := NewFluentLoggerAdapter(poster, slog.LevelWarn)
	require.NoError(t, err)

	scoped := adapter.WithFields(port.Fields{"service_name": "marketplace-service"})
	scoped.Info("skipped", nil)
	scoped.Warn("slow backend", port.Fields{"duration_ms": 1200})
	scoped.Error("failed", errors.New("timeout"), nil)

	require.Equal(t, []string{"warn", "error"}, poster.tags)
	assert.Equal(t, "marketplace-service", poster.records[0]["service_name"])
	assert.Equal(t, "slow backend", poster.records[0]["message"])
	assert.Equal(t, "timeout", poster.records[1]["error"])
}

func TestNewFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLogger_FansOut(t *testing.T) {
	first, second := &recordingPoster{}, &recordingPoster{}
	a, _ := NewFluentLoggerAdapter(first, slog.LevelDebug)
	b, _ := NewFluentLoggerAdapter(second, slog.LevelDebug)

	multi, err := NewMultiloggerAdapter(a, nil, b)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"k": "v"}).Debug("hello", nil)
	require.Len(t, first.records, 1)
	require.Len(t, second.records, 1)
	assert.Equal(t, "v", second.records[0]["k"])

	_, err = NewMultiloggerAdapter()
	assert.Error(t, err)
}
