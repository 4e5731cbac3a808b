// Package advisory requests short navigation cues from a cloud
// vision-language model.
//
// One fixed instructional prompt plus the most recent camera frame per call.
// The client never retries; the session's polling cadence is the retry policy.
//
// Example usage:
//
//	client, _ := advisory.NewGemini(
//	    advisory.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	)
//	defer client.Close()
//
//	cue, _ := client.RequestAdvice(ctx, frame.JPEG)
package advisory

import (
	"context"
	"strings"
)

// NavigationPrompt is the fixed instruction sent with every frame.
const NavigationPrompt = `You are an expert navigation assistant for a visually impaired user.
Your task is to analyze the provided image of an indoor scene and give ONE SINGLE, SHORT, and CLEAR instruction for safe navigation.
Focus on immediate obstacles and the clearest path forward.
Use clock-face directions (e.g., "chair at 2 o'clock") when useful.
Your response must be a direct command.

Examples:
- "Clear path ahead. Walk forward."
- "Obstacle detected. Proceed with caution."
- "Stairs ahead. Stop."
- "Door is slightly to your left."
- "Table at your 1 o'clock. go right."`

// Client is the advisory interface implemented by vision-language backends.
type Client interface {
	// RequestAdvice sends the navigation prompt and a JPEG frame, returning
	// a cleaned instruction string. Fails with ErrTimeout, ErrTransport, or
	// ErrMalformedResponse.
	RequestAdvice(ctx context.Context, jpeg []byte) (string, error)

	// Close releases any resources held by the client.
	Close() error
}

// CleanCue normalizes model output for display and speech: surrounding
// whitespace and markup emphasis characters are removed.
func CleanCue(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "*", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	return cleaned
}
