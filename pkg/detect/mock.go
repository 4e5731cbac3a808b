package detect

import "sync"

// Mock implements Annotator for testing.
type Mock struct {
	// AnnotateFunc is called when Annotate is invoked.
	// If nil, the input is returned unchanged.
	AnnotateFunc func(jpeg []byte) ([]byte, error)

	mu    sync.Mutex
	calls int
}

// NewMock creates a pass-through mock annotator.
func NewMock() *Mock {
	return &Mock{}
}

// Annotate calls AnnotateFunc or returns the input unchanged.
func (m *Mock) Annotate(jpeg []byte) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(jpeg)
	}
	return jpeg, nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Calls returns the number of Annotate calls.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Verify Mock implements Annotator at compile time.
var _ Annotator = (*Mock)(nil)
