package detect

import "testing"

func TestDetectionCenter(t *testing.T) {
	d := Detection{X: 0.25, Y: 0.5, W: 0.5, H: 0.25}

	x, y := d.Center()
	if x != 0.5 {
		t.Errorf("expected center x 0.5, got %f", x)
	}
	if y != 0.625 {
		t.Errorf("expected center y 0.625, got %f", y)
	}
}

func TestDetectionArea(t *testing.T) {
	d := Detection{W: 0.5, H: 0.4}
	if area := d.Area(); area != 0.2 {
		t.Errorf("expected area 0.2, got %f", area)
	}
}

func TestClassName(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{0, "person"},
		{56, "chair"},
		{79, "toothbrush"},
		{-1, "object"},
		{80, "object"},
	}

	for _, tt := range tests {
		if got := className(tt.id); got != tt.want {
			t.Errorf("className(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ConfidenceThresh != 0.5 {
		t.Errorf("expected confidence 0.5, got %f", cfg.ConfidenceThresh)
	}
	if cfg.InputWidth != 640 || cfg.InputHeight != 640 {
		t.Errorf("expected 640x640 input, got %dx%d", cfg.InputWidth, cfg.InputHeight)
	}
}

func TestMockPassThrough(t *testing.T) {
	m := NewMock()

	in := []byte{1, 2, 3}
	out, err := m.Annotate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != string(in) {
		t.Error("expected pass-through")
	}
	if m.Calls() != 1 {
		t.Errorf("expected 1 call, got %d", m.Calls())
	}
}

func TestNewYOLOMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "testdata/does-not-exist.onnx"

	if _, err := NewYOLO(cfg); err == nil {
		t.Fatal("expected error for missing model file")
	}
}
