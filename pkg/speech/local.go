package speech

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/waypath/go-waypath/internal/log"
)

// localCommands are platform speech synthesizers, probed in order.
var localCommands = []string{"say", "espeak", "spd-say"}

// Local speaks through the platform text-to-speech command.
type Local struct {
	command string
	mu      sync.Mutex
}

// NewLocal probes for a platform speech command.
// Returns ErrNoEngine when none is installed.
func NewLocal() (*Local, error) {
	for _, cmd := range localCommands {
		if _, err := exec.LookPath(cmd); err == nil {
			log.Debug("local speech engine found", "command", cmd)
			return &Local{command: cmd}, nil
		}
	}
	return nil, WrapError("local", fmt.Errorf("%w: tried %v", ErrNoEngine, localCommands))
}

// Say runs the synthesizer and blocks until the utterance finishes.
func (l *Local) Say(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	args := l.buildArgs(text)
	cmd := exec.CommandContext(ctx, l.command, args...)
	if err := cmd.Run(); err != nil {
		return WrapError("local", fmt.Errorf("%s: %w", l.command, err))
	}
	return nil
}

// buildArgs adapts the text argument to the synthesizer's CLI.
func (l *Local) buildArgs(text string) []string {
	switch l.command {
	case "spd-say":
		// spd-say returns immediately unless asked to wait
		return []string{"--wait", text}
	default:
		return []string{text}
	}
}

// Close is a no-op for the local engine.
func (l *Local) Close() error { return nil }

// Verify Local implements Engine at compile time.
var _ Engine = (*Local)(nil)
