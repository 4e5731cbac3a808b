package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/waypath/go-waypath/internal/httpc"
)

func testElevenLabs(t *testing.T, handler http.HandlerFunc) *ElevenLabs {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return &ElevenLabs{
		apiKey:  "test-key",
		voiceID: "test-voice",
		modelID: elevenLabsDefaultModel,
		baseURL: ts.URL,
		http:    httpc.NewClient(time.Second),
	}
}

func TestElevenLabsSynthesisError(t *testing.T) {
	e := testElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := e.synthesize(context.Background(), "hello")
	var engErr *EngineError
	if !errors.As(err, &engErr) {
		t.Fatalf("expected EngineError, got %T (%v)", err, err)
	}
	if engErr.Engine != "elevenlabs" {
		t.Errorf("unexpected engine: %q", engErr.Engine)
	}
}

func TestElevenLabsTruncatedAudio(t *testing.T) {
	e := testElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		// Declare more body than is sent so the read fails mid-stream
		w.Header().Set("Content-Length", "1024")
		w.Write([]byte("partial"))
	})

	_, err := e.synthesize(context.Background(), "hello")
	var engErr *EngineError
	if !errors.As(err, &engErr) {
		t.Fatalf("expected EngineError, got %T (%v)", err, err)
	}
}

func TestElevenLabsRequestShape(t *testing.T) {
	var gotKey, gotPath string
	e := testElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("xi-api-key")
		gotPath = r.URL.Path
		w.Write([]byte("mp3-bytes"))
	})

	audio, err := e.synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("unexpected audio payload: %q", audio)
	}
	if gotKey != "test-key" {
		t.Errorf("unexpected api key header: %q", gotKey)
	}
	if gotPath != "/text-to-speech/test-voice" {
		t.Errorf("unexpected path: %q", gotPath)
	}
}
