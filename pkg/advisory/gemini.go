package advisory

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/waypath/go-waypath/internal/httpc"
)

const providerGemini = "gemini"

// Gemini implements Client against Google's Gemini generateContent API.
type Gemini struct {
	config *Config
	http   *http.Client
	logger *slog.Logger
}

// NewGemini creates a Gemini advisory client.
func NewGemini(opts ...Option) (*Gemini, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, WrapError(providerGemini, err)
	}

	return &Gemini{
		config: cfg,
		http:   httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "advisory.gemini"),
	}, nil
}

// RequestAdvice sends the navigation prompt and JPEG frame to Gemini.
func (g *Gemini) RequestAdvice(ctx context.Context, jpeg []byte) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": g.config.Prompt},
					{"inline_data": map[string]string{
						"mime_type": "image/jpeg",
						"data":      base64.StdEncoding.EncodeToString(jpeg),
					}},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     g.config.Temperature,
			"maxOutputTokens": g.config.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", WrapError(providerGemini, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.config.BaseURL, g.config.Model, g.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", WrapError(providerGemini, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", g.parseError(resp)
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", WrapError(providerGemini, fmt.Errorf("%w: decode: %v", ErrMalformedResponse, err))
	}

	if result.Error.Message != "" {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    result.Error.Message,
			Provider:   providerGemini,
		}
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", WrapError(providerGemini, fmt.Errorf("%w: no candidates", ErrMalformedResponse))
	}

	cue := CleanCue(result.Candidates[0].Content.Parts[0].Text)
	if cue == "" {
		return "", WrapError(providerGemini, fmt.Errorf("%w: empty instruction", ErrMalformedResponse))
	}

	g.logger.Debug("advice received",
		"latency_ms", time.Since(start).Milliseconds(),
		"chars", len(cue),
	)
	return cue, nil
}

// parseError converts a non-200 response into an APIError.
func (g *Gemini) parseError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)

	msg := apiErr.Error.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Provider:   providerGemini,
	}
}

// classifyTransport maps a request error onto the advisory taxonomy.
func classifyTransport(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return WrapError(providerGemini, fmt.Errorf("%w: %v", ErrTimeout, err))
	}
	if errors.Is(err, context.Canceled) {
		return WrapError(providerGemini, err)
	}
	return WrapError(providerGemini, fmt.Errorf("%w: %v", ErrTransport, err))
}

// Close releases client resources.
func (g *Gemini) Close() error {
	g.http.CloseIdleConnections()
	return nil
}

// geminiResponse is the response structure from the Gemini API.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Verify Gemini implements Client at compile time.
var _ Client = (*Gemini)(nil)
