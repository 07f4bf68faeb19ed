package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, rep *model.Report) error
	LastReport     *model.Report
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

var _ service.ReportWriter = (*MockWriter)(nil)

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error  error
	Report *model.Report
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, rep *model.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastReport = rep

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, rep)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Report: rep, Error: err})

	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastReport = nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to fail every subsequent Write.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, *model.Report) error {
		return err
	}
}
