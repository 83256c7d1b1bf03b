// Package mocklogger provides a Logger that records every call for
// assertions in tests, instead of writing anywhere.
package mocklogger

import (
	"github.com/streamworks/kinesis-runtime/logger"
)

var _ logger.Logger = (*MockLogger)(nil)

type LogEntry struct {
	Level   logger.LogLevel
	Message string
	KV      []any
}

// MockLogger records log calls into a shared entry list. Loggers
// produced by With share the same underlying list as their parent, so
// assertions against the root logger see calls made through any
// derived, tagged logger too.
type MockLogger struct {
	entries *[]LogEntry
	tags    []any
}

func New() *MockLogger {
	return &MockLogger{entries: &[]LogEntry{}}
}

func (m *MockLogger) Entries() []LogEntry {
	return *m.entries
}

func (m *MockLogger) Log(level logger.LogLevel, msg string, kv ...any) {
	combined := make([]any, 0, len(m.tags)+len(kv))
	combined = append(combined, m.tags...)
	combined = append(combined, kv...)
	*m.entries = append(*m.entries, LogEntry{Level: level, Message: msg, KV: combined})
}

func (m *MockLogger) Level() logger.LogLevel {
	return logger.DebugLevel
}

func (m *MockLogger) With(kv ...any) logger.Logger {
	tags := make([]any, 0, len(m.tags)+len(kv))
	tags = append(tags, m.tags...)
	tags = append(tags, kv...)
	return &MockLogger{entries: m.entries, tags: tags}
}

func (m *MockLogger) Debug(msg string, kv ...any) {
	m.Log(logger.DebugLevel, msg, kv...)
}

func (m *MockLogger) Info(msg string, kv ...any) {
	m.Log(logger.InfoLevel, msg, kv...)
}

func (m *MockLogger) Warn(msg string, kv ...any) {
	m.Log(logger.WarnLevel, msg, kv...)
}

func (m *MockLogger) Error(msg string, kv ...any) {
	m.Log(logger.ErrorLevel, msg, kv...)
}
