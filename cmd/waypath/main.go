// waypath - AI indoor navigation assistant
//
// Captures webcam frames, annotates them with YOLOv8 object detection, asks
// Gemini for a short navigation cue every few seconds, and speaks the cue
// aloud. The panel is served at http://localhost:8742 by default.
//
// Required environment:
//
//	GEMINI_API_KEY    Gemini API key
//
// Optional environment:
//
//	WAYPATH_MODEL         detector weights path (default models/yolov8n.onnx)
//	WAYPATH_CAMERA        camera device index (default 0)
//	WAYPATH_PORT          shell port (default 8742)
//	ELEVENLABS_API_KEY    enables cloud speech with local fallback
//	ELEVENLABS_VOICE_ID   ElevenLabs voice override
//	LOG_LEVEL             debug, info, warn, error
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/waypath/go-waypath/internal/config"
	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/advisory"
	"github.com/waypath/go-waypath/pkg/camera"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/session"
	"github.com/waypath/go-waypath/pkg/shell"
	"github.com/waypath/go-waypath/pkg/speech"
)

func main() {
	log.Init(os.Getenv("LOG_LEVEL"))

	apiKey := config.GeminiAPIKeyRequired()

	detectCfg := detect.DefaultConfig()
	detectCfg.ModelPath = config.ModelPath()

	detector, err := detect.NewYOLO(detectCfg)
	if err != nil {
		log.Fatal("detector init failed", "error", err, "model", detectCfg.ModelPath)
	}
	defer detector.Close()

	advisor, err := advisory.NewGemini(advisory.WithAPIKey(apiKey))
	if err != nil {
		log.Fatal("advisory client init failed", "error", err)
	}
	defer advisor.Close()

	speaker := buildSpeaker()
	defer speaker.Close()

	source := camera.NewWebcam(config.CameraID())

	panel := shell.New(config.ShellPort(), "./web")

	controller := session.New(session.DefaultConfig(), source, detector, advisor, speaker, panel)
	panel.OnStart = controller.Start
	panel.OnStop = controller.Stop

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go panel.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		controller.Stop()
		panel.Shutdown()
	}()

	if err := panel.Listen(); err != nil {
		log.Fatal("shell server failed", "error", err)
	}
}

// buildSpeaker assembles the speech engine: ElevenLabs chained before the
// platform synthesizer when a key is present, platform-only otherwise, and a
// silent mock as the last resort so speech problems never block startup.
func buildSpeaker() speech.Engine {
	var engines []speech.Engine

	if key := config.ElevenLabsAPIKey(); key != "" {
		cloud, err := speech.NewElevenLabs(key, config.ElevenLabsVoiceID())
		if err != nil {
			log.Warn("cloud speech unavailable", "error", err)
		} else {
			engines = append(engines, cloud)
		}
	}

	local, err := speech.NewLocal()
	if err != nil {
		log.Warn("local speech unavailable", "error", err)
	} else {
		engines = append(engines, local)
	}

	if len(engines) == 0 {
		log.Warn("no speech engine available, cues will be silent")
		return speech.NewMock()
	}

	chain, err := speech.NewChain(engines...)
	if err != nil {
		return speech.NewMock()
	}
	return chain
}
