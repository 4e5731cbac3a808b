// Package config provides environment-based configuration for waypath.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for the navigation assistant.
const (
	DefaultShellPort = "8742"
	DefaultModelPath = "models/yolov8n.onnx"
	DefaultCameraID  = 0
)

// GeminiAPIKeyRequired returns the Gemini API key from GEMINI_API_KEY.
// Exits with a usage message if not set.
func GeminiAPIKeyRequired() string {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "Get one at: https://aistudio.google.com/apikey")
		fmt.Fprintln(os.Stderr, "Usage: GEMINI_API_KEY=your-key go run ./cmd/waypath")
		os.Exit(1)
	}
	return key
}

// ModelPath returns the detector weights path from WAYPATH_MODEL or the default.
func ModelPath() string {
	if p := os.Getenv("WAYPATH_MODEL"); p != "" {
		return p
	}
	return DefaultModelPath
}

// CameraID returns the camera device index from WAYPATH_CAMERA or the default.
func CameraID() int {
	if v := os.Getenv("WAYPATH_CAMERA"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			return id
		}
	}
	return DefaultCameraID
}

// ShellPort returns the shell listen port from WAYPATH_PORT or the default.
func ShellPort() string {
	if p := os.Getenv("WAYPATH_PORT"); p != "" {
		return p
	}
	return DefaultShellPort
}

// ElevenLabsAPIKey returns the optional ElevenLabs API key.
// Empty means the local speech engine is used alone.
func ElevenLabsAPIKey() string {
	return os.Getenv("ELEVENLABS_API_KEY")
}

// ElevenLabsVoiceID returns the optional ElevenLabs voice ID.
func ElevenLabsVoiceID() string {
	return os.Getenv("ELEVENLABS_VOICE_ID")
}
