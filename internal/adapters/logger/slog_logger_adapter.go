package logger_adapter

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"real-estate-marketplace/internal/core/port"

	"github.com/lmittmann/tint"
)

// SlogAdapter пишет логи через log/slog. Цветной вывод - через tint.
type SlogAdapter struct {
	logger *slog.Logger
}

type SlogConfig struct {
	// Writer по умолчанию os.Stdout.
	Writer    io.Writer
	Level     slog.Leveler
	AddSource bool
	IsJSON    bool
	UseColor  bool
}

func NewSlogAdapter(cfg SlogConfig) *SlogAdapter {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Level == nil {
		cfg.Level = slog.LevelInfo
	}

	var handler slog.Handler
	switch {
	case cfg.IsJSON:
		handler = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{AddSource: cfg.AddSource, Level: cfg.Level})
	case cfg.UseColor:
		handler = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	default:
		handler = slog.NewTextHandler(cfg.Writer, &slog.HandlerOptions{AddSource: cfg.AddSource, Level: cfg.Level})
	}

	return &SlogAdapter{logger: slog.New(handler)}
}

// attrs раскладывает поля в стабильном порядке ключей, чтобы строки логов было удобно сравнивать.
func attrs(fields port.Fields) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}

func (a *SlogAdapter) log(level slog.Level, msg string, fields port.Fields, extra ...any) {
	ctx := context.Background()
	if !a.logger.Enabled(ctx, level) {
		return
	}
	a.logger.Log(ctx, level, msg, append(attrs(fields), extra...)...)
}

func (a *SlogAdapter) Info(msg string, fields port.Fields)  { a.log(slog.LevelInfo, msg, fields) }
func (a *SlogAdapter) Warn(msg string, fields port.Fields)  { a.log(slog.LevelWarn, msg, fields) }
func (a *SlogAdapter) Debug(msg string, fields port.Fields) { a.log(slog.LevelDebug, msg, fields) }

func (a *SlogAdapter) Error(msg string, err error, fields port.Fields) {
	if err != nil {
		a.log(slog.LevelError, msg, fields, slog.String("error", err.Error()))
		return
	}
	a.log(slog.LevelError, msg, fields)
}

func (a *SlogAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &SlogAdapter{logger: a.logger.With(attrs(fields)...)}
}
