package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// fakeSignals captures the channel the handler registers.
type fakeSignals struct {
	ch      chan chan<- os.Signal
	stopped chan struct{}
}

func newFakeSignals(h *InterruptHandler) *fakeSignals {
	f := &fakeSignals{ch: make(chan chan<- os.Signal, 1), stopped: make(chan struct{})}
	h.notify = func(c chan<- os.Signal) { f.ch <- c }
	h.stop = func(chan<- os.Signal) { close(f.stopped) }
	return f
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.interrupted)
		})
	}
}

func TestHandleInterrupts_Signal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)
	signals := newFakeSignals(handler)

	ctx := handler.HandleInterrupts(context.Background(), "Importação", "Execute novamente: erpdash import ofx")

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled before a signal")
	default:
	}

	sigChan := <-signals.ch
	sigChan <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled by the signal")
	}
	<-signals.stopped

	assert.True(t, handler.WasInterrupted())
	out := output.String()
	assert.Equal(t, 1, strings.Count(out, "Importação interrompido!"))
	assert.Contains(t, out, "Execute novamente: erpdash import ofx")
}

func TestHandleInterrupts_ParentCanceled(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)
	signals := newFakeSignals(handler)

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, "Exportação", "")
	cancel()

	<-ctx.Done()
	select {
	case <-signals.stopped:
	case <-time.After(time.Second):
		t.Fatal("signal handling did not stop")
	}

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestShowInterruptMessage(t *testing.T) {
	tests := []struct {
		name        string
		hint        string
		expected    []string
		notExpected []string
	}{
		{
			name:     "with hint",
			hint:     "Execute novamente: erpdash export sheets",
			expected: []string{"Exportação interrompido!", "Execute novamente", "Até logo!"},
		},
		{
			name:        "without hint",
			expected:    []string{"Exportação interrompido!", "Até logo!"},
			notExpected: []string{"Execute novamente"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := &InterruptHandler{writer: &output, operation: "Exportação", hint: tt.hint}

			handler.showInterruptMessage()

			out := output.String()
			for _, s := range tt.expected {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notExpected {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestHandleInterrupts_RealSignalSetup(t *testing.T) {
	handler := NewInterruptHandler(&syncBuffer{})
	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, "Avaliação", "")
	require.NotNil(t, ctx)
	cancel()
	<-ctx.Done()
}
