package speech

import (
	"context"
	"log/slog"
)

// Chain implements Engine by trying multiple engines in order.
// The first engine to finish the utterance wins; if all fail, an aggregate
// error is returned.
type Chain struct {
	engines []Engine
	logger  *slog.Logger
}

// NewChain creates an engine chain that tries engines in order.
// At least one engine is required.
func NewChain(engines ...Engine) (*Chain, error) {
	if len(engines) == 0 {
		return nil, ErrNoEngine
	}
	return &Chain{
		engines: engines,
		logger:  slog.Default().With("component", "speech.chain"),
	}, nil
}

// Say tries each engine until one speaks the text.
func (c *Chain) Say(ctx context.Context, text string) error {
	var errs []error

	for i, e := range c.engines {
		err := e.Say(ctx, text)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback engine succeeded", "engine_index", i)
			}
			return nil
		}

		errs = append(errs, err)
		c.logger.Warn("engine failed, trying next", "engine_index", i, "error", err)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return &ChainError{Errors: errs}
}

// Close closes all engines.
func (c *Chain) Close() error {
	var lastErr error
	for _, e := range c.engines {
		if err := e.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// ChainError aggregates errors from all engines in a chain.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if len(e.Errors) == 0 {
		return "speech chain: no errors recorded"
	}
	return ErrAllEnginesFailed.Error()
}

// Unwrap returns the last error in the chain.
func (e *ChainError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}

// Verify Chain implements Engine at compile time.
var _ Engine = (*Chain)(nil)
