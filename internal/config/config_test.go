package config

import "testing"

func TestModelPath(t *testing.T) {
	t.Setenv("WAYPATH_MODEL", "")
	if got := ModelPath(); got != DefaultModelPath {
		t.Errorf("expected default %q, got %q", DefaultModelPath, got)
	}

	t.Setenv("WAYPATH_MODEL", "weights/custom.onnx")
	if got := ModelPath(); got != "weights/custom.onnx" {
		t.Errorf("expected override, got %q", got)
	}
}

func TestCameraID(t *testing.T) {
	t.Setenv("WAYPATH_CAMERA", "")
	if got := CameraID(); got != DefaultCameraID {
		t.Errorf("expected default %d, got %d", DefaultCameraID, got)
	}

	t.Setenv("WAYPATH_CAMERA", "2")
	if got := CameraID(); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}

	// Garbage falls back to the default
	t.Setenv("WAYPATH_CAMERA", "front")
	if got := CameraID(); got != DefaultCameraID {
		t.Errorf("expected default %d, got %d", DefaultCameraID, got)
	}
}

func TestShellPort(t *testing.T) {
	t.Setenv("WAYPATH_PORT", "")
	if got := ShellPort(); got != DefaultShellPort {
		t.Errorf("expected default %q, got %q", DefaultShellPort, got)
	}

	t.Setenv("WAYPATH_PORT", "9000")
	if got := ShellPort(); got != "9000" {
		t.Errorf("expected 9000, got %q", got)
	}
}
