// Package session orchestrates the navigation assistant's two loops.
//
// A session runs a capture/display loop as short re-dispatched ticks on the
// shell's UI loop and an advisory polling loop on one worker goroutine. The
// only state shared between them is the running flag, the advisory timestamp,
// and a single-slot latest-frame buffer, all accessed atomically.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/waypath/go-waypath/pkg/advisory"
	"github.com/waypath/go-waypath/pkg/camera"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/speech"
)

// Status text shown in the shell's status region.
const (
	StatusStandingBy = "Standing by..."
	StatusActivating = "Activating systems..."
	StatusAnalyzing  = "Analyzing scene..."
	StatusOffline    = "System offline. Press Start to begin."
	StatusAIError    = "AI Error: Could not get navigation cue."
	StatusCameraLost = "Camera lost. Navigation stopped."

	// CuePrefix precedes every advisory cue in the status region.
	CuePrefix = "AI Cue: "
)

// Spoken announcements at session boundaries.
const (
	speakActivated = "Navigation system activated."
	speakShutdown  = "Navigation system shutting down."
)

// Display is the UI surface driven by the controller. Dispatch schedules
// work on the UI loop in submission order; the remaining methods must only
// be invoked from that loop.
type Display interface {
	Dispatch(fn func())
	ShowFrame(jpeg []byte)
	ShowStatus(text string)

	// SessionEnded reports that the session stopped on its own, so the
	// panel can re-enable Start without a user-issued stop.
	SessionEnded()
}

// Config holds session timing parameters.
type Config struct {
	// TickInterval is the capture/display cadence.
	TickInterval time.Duration

	// AdvisoryInterval is the minimum spacing between advisory requests,
	// measured from the previous request's dispatch time.
	AdvisoryInterval time.Duration

	// PollInterval is the advisory loop's idle sleep.
	PollInterval time.Duration

	// MaxCaptureFailures bounds consecutive failed ticks before the
	// session declares the camera lost and stops itself.
	MaxCaptureFailures int

	// SpeechTimeout bounds a single utterance.
	SpeechTimeout time.Duration
}

// DefaultConfig returns production timing: 50 Hz capture, 4 s advisory
// cadence, 500 ms polling.
func DefaultConfig() Config {
	return Config{
		TickInterval:       20 * time.Millisecond,
		AdvisoryInterval:   4 * time.Second,
		PollInterval:       500 * time.Millisecond,
		MaxCaptureFailures: 250,
		SpeechTimeout:      30 * time.Second,
	}
}

// Controller owns the run/stop state and the two session loops.
type Controller struct {
	cfg       Config
	source    camera.Source
	annotator detect.Annotator
	advisor   advisory.Client
	speaker   speech.Engine
	display   Display
	logger    *slog.Logger

	// Cross-loop shared state
	running      atomic.Bool
	latest       atomic.Pointer[camera.Frame]
	lastAdvisory atomic.Int64 // unix nanos of the last request dispatch

	// captureFails is touched only from the UI loop.
	captureFails int

	// lifecycleMu serializes Start and Stop against each other.
	lifecycleMu  sync.Mutex
	sessionID    string
	cancelWorker context.CancelFunc
	workerDone   chan struct{}
}

// New creates a controller. The camera is not opened until Start.
func New(cfg Config, source camera.Source, annotator detect.Annotator, advisor advisory.Client, speaker speech.Engine, display Display) *Controller {
	return &Controller{
		cfg:       cfg,
		source:    source,
		annotator: annotator,
		advisor:   advisor,
		speaker:   speaker,
		display:   display,
		logger:    slog.Default().With("component", "session"),
	}
}

// Start opens the camera and launches both loops. A Start while running is
// ignored. On camera.ErrDeviceUnavailable the session never begins and no
// goroutine is spawned.
func (c *Controller) Start() error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.running.Load() {
		return nil
	}

	// Join the previous session's worker so its in-flight request can never
	// overlap the new session's. Stop cancels the request, so this is brief.
	if c.workerDone != nil {
		<-c.workerDone
	}

	if err := c.source.Open(); err != nil {
		c.logger.Error("camera open failed", "error", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelWorker = cancel

	c.sessionID = uuid.NewString()
	c.latest.Store(nil)
	c.lastAdvisory.Store(0)
	c.captureFails = 0
	c.workerDone = make(chan struct{})
	c.running.Store(true)

	c.display.Dispatch(func() { c.display.ShowStatus(StatusActivating) })

	go c.advisoryLoop(ctx, c.workerDone)
	c.display.Dispatch(c.tick)

	c.logger.Info("session started", "session_id", c.sessionID)
	return nil
}

// Stop clears the running flag, releases the camera synchronously (serialized
// with capture ticks through the UI loop), and speaks the shutdown
// announcement. Idempotent; cancelling the session context aborts any
// in-flight advisory request, so the worker winds down promptly.
func (c *Controller) Stop() {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.cancelWorker()

	released := make(chan struct{})
	c.display.Dispatch(func() {
		if err := c.source.Release(); err != nil {
			c.logger.Warn("camera release failed", "error", err)
		}
		c.latest.Store(nil)
		c.display.ShowStatus(StatusOffline)
		close(released)
	})
	<-released

	c.say(speakShutdown)
	c.logger.Info("session stopped", "session_id", c.sessionID)
}

// Running reports whether a session is active.
func (c *Controller) Running() bool {
	return c.running.Load()
}

// LastAdvisory returns the dispatch time of the most recent advisory
// request, or the zero time if none was issued this session.
func (c *Controller) LastAdvisory() time.Time {
	nanos := c.lastAdvisory.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

// SessionID returns the current session's identifier.
func (c *Controller) SessionID() string {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	return c.sessionID
}

// tick is one unit of the capture/display loop. It always runs on the UI
// loop and must stay well under one tick's budget.
func (c *Controller) tick() {
	if !c.running.Load() {
		// Stopped; do not reschedule
		return
	}

	frame, err := c.source.Read()
	if err != nil {
		c.captureFails++
		if c.cfg.MaxCaptureFailures > 0 && c.captureFails >= c.cfg.MaxCaptureFailures {
			c.deviceLost()
			return
		}
		// Transient failure: skip this tick
	} else {
		c.captureFails = 0
		c.latest.Store(frame)

		annotated, aerr := c.annotator.Annotate(frame.JPEG)
		if aerr != nil {
			// Show the raw frame rather than dropping the tick
			c.logger.Debug("annotate failed", "error", aerr)
			annotated = frame.JPEG
		}
		c.display.ShowFrame(annotated)
	}

	time.AfterFunc(c.cfg.TickInterval, func() {
		c.display.Dispatch(c.tick)
	})
}

// deviceLost ends the session from the UI loop after too many consecutive
// capture failures. Runs on the UI loop, so the camera is released inline.
func (c *Controller) deviceLost() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.cancelWorker()
	c.logger.Error("camera lost", "consecutive_failures", c.captureFails)

	if err := c.source.Release(); err != nil {
		c.logger.Warn("camera release failed", "error", err)
	}
	c.latest.Store(nil)
	c.display.ShowStatus(StatusCameraLost)
	c.display.SessionEnded()
}

// advisoryLoop polls for advisory windows on a dedicated worker goroutine.
// The context is this session's; cancellation aborts an in-flight request, so
// a worker never outlives its session into the next one.
func (c *Controller) advisoryLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	c.say(speakActivated)

	for ctx.Err() == nil {
		c.maybeAdvise(ctx)

		select {
		case <-ctx.Done():
		case <-time.After(c.cfg.PollInterval):
		}
	}
}

// maybeAdvise issues one advisory request when the cadence window has
// elapsed and a frame is available. The loop is single-threaded with respect
// to itself, so at most one request is ever in flight.
func (c *Controller) maybeAdvise(ctx context.Context) {
	last := c.lastAdvisory.Load()
	if last != 0 && time.Since(time.Unix(0, last)) <= c.cfg.AdvisoryInterval {
		return
	}

	frame := c.latest.Load()
	if frame == nil {
		return
	}

	// Spacing is measured from dispatch, not completion
	c.lastAdvisory.Store(time.Now().UnixNano())
	c.publishStatus(StatusAnalyzing)

	cue, err := c.advisor.RequestAdvice(ctx, frame.JPEG)
	if ctx.Err() != nil {
		// Session ended while the request was in flight
		return
	}
	if err != nil {
		c.logger.Warn("advisory request failed", "error", err)
		c.publishStatus(StatusAIError)
		return
	}

	cue = advisory.CleanCue(cue)
	c.publishStatus(CuePrefix + cue)
	c.say(cue)
}

// publishStatus marshals a status update onto the UI loop.
// Updates after Stop are suppressed so they cannot overwrite the offline
// status.
func (c *Controller) publishStatus(text string) {
	if !c.running.Load() {
		return
	}
	c.display.Dispatch(func() {
		c.display.ShowStatus(text)
	})
}

// say speaks the text, logging failures. Speech errors never end the session.
func (c *Controller) say(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.SpeechTimeout)
	defer cancel()

	if err := c.speaker.Say(ctx, text); err != nil {
		c.logger.Warn("speech failed", "error", err)
	}
}
