package camera

import (
	"sync"
	"time"
)

// Mock implements Source for testing.
// Method behavior can be customized via function fields.
type Mock struct {
	// OpenFunc is called when Open is invoked. If nil, Open succeeds.
	OpenFunc func() error

	// ReadFunc is called when Read is invoked.
	// If nil, Read returns a small synthetic frame.
	ReadFunc func() (*Frame, error)

	// ReleaseFunc is called when Release is invoked. If nil, Release succeeds.
	ReleaseFunc func() error

	mu       sync.Mutex
	opened   bool
	seq      uint64
	reads    int
	releases int
}

// NewMock creates a mock camera that produces synthetic frames.
func NewMock() *Mock {
	return &Mock{}
}

// Open calls OpenFunc and marks the device open.
func (m *Mock) Open() error {
	if m.OpenFunc != nil {
		if err := m.OpenFunc(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.opened = true
	m.mu.Unlock()
	return nil
}

// Read calls ReadFunc or produces a synthetic frame.
func (m *Mock) Read() (*Frame, error) {
	m.mu.Lock()
	m.reads++
	m.mu.Unlock()

	if m.ReadFunc != nil {
		return m.ReadFunc()
	}

	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	return &Frame{
		JPEG:       []byte{0xff, 0xd8, 0xff, 0xd9}, // minimal JPEG markers
		Width:      640,
		Height:     480,
		Seq:        seq,
		CapturedAt: time.Now(),
	}, nil
}

// Release calls ReleaseFunc and counts the release.
func (m *Mock) Release() error {
	m.mu.Lock()
	m.releases++
	m.opened = false
	m.mu.Unlock()

	if m.ReleaseFunc != nil {
		return m.ReleaseFunc()
	}
	return nil
}

// Opened reports whether the mock device is currently open.
func (m *Mock) Opened() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// Reads returns the number of Read calls.
func (m *Mock) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Releases returns the number of Release calls.
func (m *Mock) Releases() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releases
}

// Verify Mock implements Source at compile time.
var _ Source = (*Mock)(nil)
