package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"sync"

	"github.com/waypath/go-waypath/internal/httpc"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

	// Rachel, a clear general-purpose voice
	elevenLabsDefaultVoice = "21m00Tcm4TlvDq8ikWAM"

	elevenLabsDefaultModel = "eleven_turbo_v2_5"
)

// audioPlayers are MP3 playback commands, probed in order.
var audioPlayers = []string{"afplay", "mpg123", "ffplay"}

// ElevenLabs synthesizes speech through the ElevenLabs API and plays it
// through a local audio player. Higher quality than the platform engine,
// but needs network and a credential; chain it before Local as a fallback.
type ElevenLabs struct {
	apiKey  string
	voiceID string
	modelID string
	baseURL string
	player  string
	http    *http.Client
	mu      sync.Mutex
}

// NewElevenLabs creates the cloud speech engine.
// Returns ErrNoAPIKey without a key and ErrNoEngine without a local player.
func NewElevenLabs(apiKey, voiceID string) (*ElevenLabs, error) {
	if apiKey == "" {
		return nil, WrapError("elevenlabs", ErrNoAPIKey)
	}
	if voiceID == "" {
		voiceID = elevenLabsDefaultVoice
	}

	player := ""
	for _, p := range audioPlayers {
		if _, err := exec.LookPath(p); err == nil {
			player = p
			break
		}
	}
	if player == "" {
		return nil, WrapError("elevenlabs", fmt.Errorf("%w: no audio player, tried %v", ErrNoEngine, audioPlayers))
	}

	return &ElevenLabs{
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: elevenLabsDefaultModel,
		baseURL: elevenLabsBaseURL,
		player:  player,
		http:    httpc.Client,
	}, nil
}

// Say synthesizes and plays the text, blocking until playback completes.
func (e *ElevenLabs) Say(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	audio, err := e.synthesize(ctx, text)
	if err != nil {
		return err
	}
	return e.play(ctx, audio)
}

// synthesize fetches MP3 audio for the text.
func (e *ElevenLabs) synthesize(ctx context.Context, text string) ([]byte, error) {
	payload := map[string]interface{}{
		"text":     text,
		"model_id": e.modelID,
		"voice_settings": map[string]interface{}{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError("elevenlabs", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", e.baseURL, e.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError("elevenlabs", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, WrapError("elevenlabs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, WrapError("elevenlabs", fmt.Errorf("synthesis failed: status %d: %s", resp.StatusCode, msg))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError("elevenlabs", fmt.Errorf("read audio: %w", err))
	}
	return audio, nil
}

// play writes the audio to a temp file and plays it with the local player.
func (e *ElevenLabs) play(ctx context.Context, audio []byte) error {
	f, err := os.CreateTemp("", "waypath-cue-*.mp3")
	if err != nil {
		return WrapError("elevenlabs", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return WrapError("elevenlabs", err)
	}
	f.Close()

	args := []string{f.Name()}
	if e.player == "ffplay" {
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", f.Name()}
	}

	if err := exec.CommandContext(ctx, e.player, args...).Run(); err != nil {
		return WrapError("elevenlabs", fmt.Errorf("playback: %w", err))
	}
	return nil
}

// Close releases client resources.
func (e *ElevenLabs) Close() error {
	e.http.CloseIdleConnections()
	return nil
}

// Verify ElevenLabs implements Engine at compile time.
var _ Engine = (*ElevenLabs)(nil)
