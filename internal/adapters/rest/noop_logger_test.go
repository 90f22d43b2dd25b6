package rest

import "real-estate-marketplace/internal/core/port"

type noopLogger struct{}

func (noopLogger) Info(string, port.Fields)         {}
func (noopLogger) Warn(string, port.Fields)         {}
func (noopLogger) Error(string, error, port.Fields) {}
func (noopLogger) Debug(string, port.Fields)        {}
func (n noopLogger) WithFields(port.Fields) port.LoggerPort {
	return n
}
