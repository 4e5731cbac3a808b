// Package speech converts navigation cues to audible speech.
//
// Engines block the caller until the utterance finishes playing, which is what
// the advisory loop wants: the next cue is never spoken over the previous one.
// Engine implementations serialize internally, so an occasional overlapping
// call (e.g. the shutdown announcement) queues rather than corrupting playback.
//
// Example usage:
//
//	engine, _ := speech.NewLocal()
//	defer engine.Close()
//
//	engine.Say(ctx, "Clear path ahead. Walk forward.")
package speech

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for speech conditions.
var (
	// ErrNoEngine is returned when no usable speech backend is found.
	ErrNoEngine = errors.New("speech: no engine available")

	// ErrNoAPIKey is returned when a cloud engine is missing its API key.
	ErrNoAPIKey = errors.New("speech: API key required")

	// ErrAllEnginesFailed is returned when every engine in a chain fails.
	ErrAllEnginesFailed = errors.New("speech: all engines failed")
)

// Engine is the text-to-speech interface.
type Engine interface {
	// Say speaks the text, blocking until playback completes.
	Say(ctx context.Context, text string) error

	// Close releases any resources held by the engine.
	Close() error
}

// EngineError wraps an error with engine context.
type EngineError struct {
	Engine string
	Err    error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("speech [%s]: %v", e.Engine, e.Err)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with engine context.
func WrapError(engine string, err error) error {
	if err == nil {
		return nil
	}
	return &EngineError{Engine: engine, Err: err}
}
