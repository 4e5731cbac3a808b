// Package camera provides webcam frame capture for the navigation session.
//
// A Source owns the camera device. Frames are immutable once returned, so a
// frame handed to one consumer can be shared with another without copying.
package camera

import (
	"errors"
	"time"
)

// Sentinel errors for capture conditions.
var (
	// ErrDeviceUnavailable is returned by Open when no camera can be acquired.
	ErrDeviceUnavailable = errors.New("camera: device unavailable")

	// ErrNoFrame is returned by Read on a transient capture failure.
	// Callers should skip the frame, not abort the session.
	ErrNoFrame = errors.New("camera: no frame")

	// ErrNotOpen is returned by Read when the device is not open.
	ErrNotOpen = errors.New("camera: device not open")
)

// Frame is a single captured image. Frames are never mutated after capture;
// consumers on other goroutines read them without synchronization.
type Frame struct {
	// JPEG is the encoded image data.
	JPEG []byte

	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int

	// Seq increments once per captured frame within a session.
	Seq uint64

	// CapturedAt is the capture timestamp.
	CapturedAt time.Time
}

// Source is the capture interface implemented by camera backends.
type Source interface {
	// Open acquires the camera device.
	// Returns ErrDeviceUnavailable if no camera can be opened.
	Open() error

	// Read captures one frame. Returns ErrNoFrame on a transient failure.
	Read() (*Frame, error)

	// Release frees the device. Idempotent; a later Open must succeed.
	Release() error
}
