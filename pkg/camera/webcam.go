package camera

import (
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Webcam captures frames from a local video device via gocv.
type Webcam struct {
	deviceID int

	mu  sync.Mutex
	cap *gocv.VideoCapture
	seq uint64
}

// NewWebcam creates a source for the given device index.
// The device is not acquired until Open is called.
func NewWebcam(deviceID int) *Webcam {
	return &Webcam{deviceID: deviceID}
}

// Open acquires the video device. Safe to call again after Release.
func (w *Webcam) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap != nil {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(w.deviceID)
	if err != nil {
		return fmt.Errorf("%w: device %d: %v", ErrDeviceUnavailable, w.deviceID, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return fmt.Errorf("%w: device %d", ErrDeviceUnavailable, w.deviceID)
	}

	w.cap = cap
	w.seq = 0
	return nil
}

// Read captures and JPEG-encodes one frame.
func (w *Webcam) Read() (*Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap == nil {
		return nil, ErrNotOpen
	}

	img := gocv.NewMat()
	defer img.Close()

	if ok := w.cap.Read(&img); !ok || img.Empty() {
		return nil, ErrNoFrame
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrNoFrame, err)
	}
	defer buf.Close()

	w.seq++
	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())

	return &Frame{
		JPEG:       jpeg,
		Width:      img.Cols(),
		Height:     img.Rows(),
		Seq:        w.seq,
		CapturedAt: time.Now(),
	}, nil
}

// Release frees the device. Idempotent.
func (w *Webcam) Release() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap == nil {
		return nil
	}

	err := w.cap.Close()
	w.cap = nil
	return err
}

// Verify Webcam implements Source at compile time.
var _ Source = (*Webcam)(nil)
