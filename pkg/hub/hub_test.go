package hub

import "testing"

func TestBroadcastJSON(t *testing.T) {
	h := New("test")

	if err := h.BroadcastJSON(map[string]string{"status": "ok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := <-h.broadcast
	if msg.Type != JSONMessage {
		t.Errorf("expected JSON message type, got %v", msg.Type)
	}
	if string(msg.Data) != `{"status":"ok"}` {
		t.Errorf("unexpected payload: %s", msg.Data)
	}
}

func TestBroadcastJSONUnencodable(t *testing.T) {
	h := New("test")

	if err := h.BroadcastJSON(make(chan int)); err == nil {
		t.Fatal("expected encoding error")
	}
}

func TestBroadcastBinary(t *testing.T) {
	h := New("test")

	h.BroadcastBinary([]byte{0xff, 0xd8})

	msg := <-h.broadcast
	if msg.Type != BinaryMessage {
		t.Errorf("expected binary message type, got %v", msg.Type)
	}
	if len(msg.Data) != 2 {
		t.Errorf("unexpected payload length: %d", len(msg.Data))
	}
}

func TestBroadcastNeverBlocks(t *testing.T) {
	h := New("test")

	// Fill the queue well past capacity; overflow is dropped, not blocked on
	for i := 0; i < 1000; i++ {
		h.BroadcastBinary([]byte{byte(i)})
	}

	if h.ClientCount() != 0 {
		t.Errorf("expected no clients, got %d", h.ClientCount())
	}
}
