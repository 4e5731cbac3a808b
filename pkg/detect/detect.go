// Package detect provides object detection for the video preview.
//
// Detections are drawn onto frames for display only; the navigation advisory
// works from the raw frame.
package detect

// Detection represents a detected object.
type Detection struct {
	X, Y       float64 // Top-left position (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)
	ClassID    int     // COCO class ID
	ClassName  string  // Human-readable class name
}

// Center returns the center point of the detection.
func (d Detection) Center() (x, y float64) {
	return d.X + d.W/2, d.Y + d.H/2
}

// Area returns the area of the bounding box.
func (d Detection) Area() float64 {
	return d.W * d.H
}

// Annotator draws detections onto a JPEG frame for display.
type Annotator interface {
	// Annotate runs detection over the JPEG image and returns a copy with
	// boxes and labels drawn.
	Annotate(jpeg []byte) ([]byte, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float32 // Minimum confidence (default 0.5)
	NMSThresh        float32 // Non-max suppression threshold (default 0.45)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YOLOv8n.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/yolov8n.onnx",
		ConfidenceThresh: 0.5,
		NMSThresh:        0.45,
		InputWidth:       640,
		InputHeight:      640,
	}
}
