package speech

import (
	"context"
	"sync"
	"time"
)

// Mock implements Engine for testing.
type Mock struct {
	// SayFunc is called when Say is invoked. If nil, Say succeeds.
	SayFunc func(ctx context.Context, text string) error

	mu         sync.Mutex
	utterances []Utterance
}

// Utterance records one Say invocation.
type Utterance struct {
	Text string
	Time time.Time
}

// NewMock creates a mock engine that records utterances.
func NewMock() *Mock {
	return &Mock{}
}

// WithError returns a mock that always fails with the given error.
func WithError(err error) *Mock {
	return &Mock{
		SayFunc: func(ctx context.Context, text string) error {
			return err
		},
	}
}

// Say records the utterance and calls SayFunc.
func (m *Mock) Say(ctx context.Context, text string) error {
	m.mu.Lock()
	m.utterances = append(m.utterances, Utterance{Text: text, Time: time.Now()})
	m.mu.Unlock()

	if m.SayFunc != nil {
		return m.SayFunc(ctx, text)
	}
	return nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Utterances returns all recorded utterances.
func (m *Mock) Utterances() []Utterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Utterance, len(m.utterances))
	copy(out, m.utterances)
	return out
}

// Spoke reports whether the given text was spoken.
func (m *Mock) Spoke(text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.utterances {
		if u.Text == text {
			return true
		}
	}
	return false
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
