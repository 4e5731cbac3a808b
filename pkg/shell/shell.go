// Package shell presents the navigation assistant's panel: Start/Stop
// controls, a live annotated video region, and a status text region, served
// locally over HTTP with websocket push updates.
//
// The shell also owns the UI loop: a single goroutine that executes
// dispatched work in order. Session loops marshal every UI-facing update
// through Dispatch, so frame and status writes are never applied from a
// worker goroutine.
package shell

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/hub"
)

// State is the panel snapshot pushed to status clients.
type State struct {
	Running bool   `json:"running"`
	Status  string `json:"status"`
}

// Server is the shell HTTP server and UI dispatcher.
type Server struct {
	app    *fiber.App
	port   string
	webDir string

	// UI loop
	tasks chan func()

	// Panel state
	state   State
	stateMu sync.RWMutex

	// Broadcast hubs, one per update channel
	frameHub  *hub.Hub
	statusHub *hub.Hub

	// Session triggers, wired by main
	OnStart func() error
	OnStop  func()
}

// New creates the shell server. webDir holds the static panel files.
func New(port, webDir string) *Server {
	s := &Server{
		port:      port,
		webDir:    webDir,
		tasks:     make(chan func(), 256),
		state:     State{Status: "Standing by..."},
		frameHub:  hub.New("camera"),
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "waypath",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Static("/", webDir)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/session/start", s.handleStart)
	api.Post("/session/stop", s.handleStop)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Run drives the UI loop. Dispatched work executes here, in order, until the
// context is cancelled. Call this in its own goroutine before Listen.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-s.tasks:
			fn()
		}
	}
}

// Dispatch schedules fn on the UI loop.
func (s *Server) Dispatch(fn func()) {
	s.tasks <- fn
}

// ShowFrame publishes an annotated frame to video clients.
// Must be called on the UI loop.
func (s *Server) ShowFrame(jpeg []byte) {
	s.frameHub.BroadcastBinary(jpeg)
}

// ShowStatus overwrites the status text and pushes the new state.
// Must be called on the UI loop.
func (s *Server) ShowStatus(text string) {
	s.stateMu.Lock()
	s.state.Status = text
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// SessionEnded records that the session stopped itself (e.g. the camera was
// lost) and pushes the stopped state so the panel re-enables Start.
// Must be called on the UI loop.
func (s *Server) SessionEnded() {
	s.setRunning(false)
}

// Listen starts the hubs and serves the panel. Blocks.
func (s *Server) Listen() error {
	go s.frameHub.Run()
	go s.statusHub.Run()

	log.Info("shell listening", "addr", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// setRunning records the session state and pushes it to status clients.
func (s *Server) setRunning(running bool) {
	s.stateMu.Lock()
	s.state.Running = running
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// handleStatus returns the current panel state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleStart begins a session. A device failure aborts the start and is
// surfaced to the panel as an error dialog; the session never begins.
func (s *Server) handleStart(c *fiber.Ctx) error {
	if s.OnStart == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "session not configured",
		})
	}

	if err := s.OnStart(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Could not access the webcam. Please ensure it is connected and not in use by another application.",
		})
	}

	s.setRunning(true)
	return c.JSON(fiber.Map{"running": true})
}

// handleStop ends the session. Responds only after the camera is released,
// so the panel re-enables Start no earlier than that.
func (s *Server) handleStop(c *fiber.Ctx) error {
	if s.OnStop == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "session not configured",
		})
	}

	s.OnStop()
	s.setRunning(false)
	return c.JSON(fiber.Map{"running": false})
}

// handleCameraWS streams annotated frames to a panel client.
func (s *Server) handleCameraWS(c *websocket.Conn) {
	hub.NewClient(s.frameHub, c).Run()
}

// handleStatusWS streams state updates to a panel client, seeding it with
// the current state.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	s.stateMu.RLock()
	state := s.state
	s.stateMu.RUnlock()
	c.WriteJSON(state)

	hub.NewClient(s.statusHub, c).Run()
}
