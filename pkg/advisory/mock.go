package advisory

import (
	"context"
	"sync"
	"time"
)

// Mock implements Client for testing.
type Mock struct {
	// RequestFunc is called when RequestAdvice is invoked.
	// If nil, a fixed instruction is returned.
	RequestFunc func(ctx context.Context, jpeg []byte) (string, error)

	// CloseFunc is called when Close is invoked. If nil, returns nil.
	CloseFunc func() error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a RequestAdvice invocation.
type MockCall struct {
	// Dispatched is when the request was issued.
	Dispatched time.Time

	// FrameSize is the length of the JPEG payload.
	FrameSize int
}

// NewMock creates a mock client returning a fixed cue.
func NewMock() *Mock {
	return &Mock{
		RequestFunc: func(ctx context.Context, jpeg []byte) (string, error) {
			return "Clear path ahead. Walk forward.", nil
		},
	}
}

// WithError returns a mock that always fails with the given error.
func WithError(err error) *Mock {
	return &Mock{
		RequestFunc: func(ctx context.Context, jpeg []byte) (string, error) {
			return "", err
		},
	}
}

// RequestAdvice calls RequestFunc and records the call.
func (m *Mock) RequestAdvice(ctx context.Context, jpeg []byte) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Dispatched: time.Now(), FrameSize: len(jpeg)})
	m.mu.Unlock()

	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, jpeg)
	}
	return "", WrapError("mock", ErrTransport)
}

// Close calls CloseFunc.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns all recorded requests.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of recorded requests.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Verify Mock implements Client at compile time.
var _ Client = (*Mock)(nil)
