package logging

import "sync"

// Entry records one logged message for inspection in tests.
type Entry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
	Err     error
}

// MockLogger records every message so tests can assert on telemetry events.
type MockLogger struct {
	mu      sync.Mutex
	entries *[]Entry
	fields  map[string]interface{}
	err     error
}

// NewMockLogger creates an empty recording logger.
func NewMockLogger() *MockLogger {
	entries := make([]Entry, 0)
	return &MockLogger{entries: &entries}
}

// Entries returns a copy of everything logged so far.
func (m *MockLogger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(*m.entries))
	copy(out, *m.entries)
	return out
}

// EntriesWithMessage returns all recorded entries with the given message.
func (m *MockLogger) EntriesWithMessage(msg string) []Entry {
	var out []Entry
	for _, e := range m.Entries() {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged := make(map[string]interface{}, len(m.fields)+len(fields))
	for k, v := range m.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	*m.entries = append(*m.entries, Entry{
		Level:   level,
		Message: msg,
		Fields:  merged,
		Err:     m.err,
	})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	child := m.child()
	child.err = err
	return child
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	child := m.child()
	child.fields[key] = value
	return child
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	child := m.child()
	for _, f := range fields {
		child.fields[f.Key] = f.Value
	}
	return child
}

// child shares the entry sink with the parent so derived loggers still record
// into the same slice.
func (m *MockLogger) child() *MockLogger {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := make(map[string]interface{}, len(m.fields))
	for k, v := range m.fields {
		fields[k] = v
	}
	return &MockLogger{entries: m.entries, fields: fields, err: m.err}
}
