package speech_test

import (
	"context"
	"errors"
	"testing"

	"github.com/waypath/go-waypath/pkg/speech"
)

func TestMockRecordsUtterances(t *testing.T) {
	mock := speech.NewMock()
	ctx := context.Background()

	if err := mock.Say(ctx, "Clear path ahead. Walk forward."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.Say(ctx, "Stairs ahead. Stop."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	utterances := mock.Utterances()
	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utterances))
	}
	if utterances[0].Text != "Clear path ahead. Walk forward." {
		t.Errorf("unexpected first utterance: %q", utterances[0].Text)
	}
	if !mock.Spoke("Stairs ahead. Stop.") {
		t.Error("expected second utterance to be recorded")
	}
}

func TestChainRequiresEngines(t *testing.T) {
	_, err := speech.NewChain()
	if !errors.Is(err, speech.ErrNoEngine) {
		t.Fatalf("expected ErrNoEngine, got %v", err)
	}
}

func TestChainFallsBack(t *testing.T) {
	failing := speech.WithError(errors.New("synthesis failed"))
	working := speech.NewMock()

	chain, err := speech.NewChain(failing, working)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := chain.Say(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !working.Spoke("hello") {
		t.Error("expected fallback engine to speak")
	}
	if len(failing.Utterances()) != 1 {
		t.Error("expected primary engine to be tried first")
	}
}

func TestChainAllFail(t *testing.T) {
	first := speech.WithError(errors.New("first failed"))
	second := speech.WithError(errors.New("second failed"))

	chain, err := speech.NewChain(first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = chain.Say(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}

	var chainErr *speech.ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("expected ChainError, got %T", err)
	}
	if len(chainErr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(chainErr.Errors))
	}
}

func TestChainStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	first := speech.NewMock()
	first.SayFunc = func(ctx context.Context, text string) error {
		cancel()
		return errors.New("interrupted")
	}
	second := speech.NewMock()

	chain, err := speech.NewChain(first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := chain.Say(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(second.Utterances()) != 0 {
		t.Error("expected no fallback after cancellation")
	}
}
