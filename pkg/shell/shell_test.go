package shell

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func decodeState(t *testing.T, resp *http.Response) State {
	t.Helper()
	var state State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func TestDispatchOrder(t *testing.T) {
	s := New("0", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	var got []int
	done := make(chan struct{})
	for i := 0; i < 100; i++ {
		i := i
		s.Dispatch(func() { got = append(got, i) })
	}
	s.Dispatch(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatched work never ran")
	}

	if len(got) != 100 {
		t.Fatalf("expected 100 executions, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at %d: got %d", i, v)
		}
	}
}

func TestStatusDefaults(t *testing.T) {
	s := New("0", t.TempDir())

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	state := decodeState(t, resp)
	if state.Running {
		t.Error("expected not running")
	}
	if state.Status != "Standing by..." {
		t.Errorf("unexpected status: %q", state.Status)
	}
}

func TestStartSession(t *testing.T) {
	s := New("0", t.TempDir())

	started := false
	s.OnStart = func() error {
		started = true
		return nil
	}

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/session/start", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !started {
		t.Error("expected OnStart to be invoked")
	}

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state := decodeState(t, resp); !state.Running {
		t.Error("expected running state after start")
	}
}

func TestStartSessionCameraFailure(t *testing.T) {
	s := New("0", t.TempDir())
	s.OnStart = func() error {
		return errors.New("device busy")
	}

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/session/start", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message for the panel dialog")
	}

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state := decodeState(t, resp); state.Running {
		t.Error("session must not be marked running after a failed start")
	}
}

func TestStopSession(t *testing.T) {
	s := New("0", t.TempDir())
	s.OnStart = func() error { return nil }

	stopped := false
	s.OnStop = func() { stopped = true }

	s.app.Test(httptest.NewRequest(http.MethodPost, "/api/session/start", nil))

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/session/stop", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !stopped {
		t.Error("expected OnStop to be invoked")
	}

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state := decodeState(t, resp); state.Running {
		t.Error("expected stopped state")
	}
}

func TestSessionEndedClearsRunning(t *testing.T) {
	s := New("0", t.TempDir())
	s.OnStart = func() error { return nil }

	s.app.Test(httptest.NewRequest(http.MethodPost, "/api/session/start", nil))
	s.SessionEnded()

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state := decodeState(t, resp); state.Running {
		t.Error("a self-terminated session must not report running")
	}
}

func TestSessionNotConfigured(t *testing.T) {
	s := New("0", t.TempDir())

	for _, path := range []string{"/api/session/start", "/api/session/stop"} {
		resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, path, nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", path, resp.StatusCode)
		}
	}
}
