// Package transcribe adapts an external speech-to-text engine. It holds no
// state and does no caching; an audio stream goes in, text and segment
// metadata come out.
package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meetz/backend/internal/apperr"

	"github.com/hashicorp/go-retryablehttp"
)

// Segment is one timed span of transcribed speech, as the engine reports it.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the full transcription of one audio stream.
type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// Engine turns an audio stream into a transcription result.
type Engine interface {
	Transcribe(ctx context.Context, audio io.Reader) (*Result, error)
}

// HTTPEngine talks to a speech-to-text service over HTTP. Transient transport
// failures are retried by the client; anything that still fails surfaces as
// apperr.ErrTranscriptionFailed so callers can distinguish it from evidence
// retrieval failures.
type HTTPEngine struct {
	Endpoint string
	client   *retryablehttp.Client
}

func NewHTTPEngine(endpoint string, timeout time.Duration) *HTTPEngine {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.Logger = nil
	c.HTTPClient.Timeout = timeout
	return &HTTPEngine{Endpoint: endpoint, client: c}
}

// Transcribe posts the audio stream to the engine and decodes its response.
func (e *HTTPEngine) Transcribe(ctx context.Context, audio io.Reader) (*Result, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, audio)
	if err != nil {
		return nil, fmt.Errorf("building transcription request: %v: %w", err, apperr.ErrTranscriptionFailed)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription engine unreachable: %v: %w", err, apperr.ErrTranscriptionFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription engine returned %d: %w", resp.StatusCode, apperr.ErrTranscriptionFailed)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding transcription response: %v: %w", err, apperr.ErrTranscriptionFailed)
	}
	return &result, nil
}
