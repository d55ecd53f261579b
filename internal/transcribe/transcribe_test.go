package transcribe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meetz/backend/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func fastEngine(endpoint string) *HTTPEngine {
	e := NewHTTPEngine(endpoint, 5*time.Second)
	e.client.RetryMax = 0
	e.client.RetryWaitMin = time.Millisecond
	e.client.RetryWaitMax = time.Millisecond
	return e
}

func TestTranscribe_Success(t *testing.T) {
	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hello there","segments":[{"start":0,"end":1.5,"text":"hello there"}]}`))
	}))
	defer server.Close()

	e := fastEngine(server.URL)

	result, err := e.Transcribe(context.Background(), strings.NewReader("audio-bytes"))

	assert.NoError(t, err)
	assert.Equal(t, "hello there", result.Text)
	assert.Len(t, result.Segments, 1)
	assert.Equal(t, 1.5, result.Segments[0].End)
	assert.Equal(t, "audio-bytes", gotBody)
	assert.Equal(t, "application/octet-stream", gotContentType)
}

func TestTranscribe_EngineError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported codec", http.StatusBadRequest)
	}))
	defer server.Close()

	e := fastEngine(server.URL)

	_, err := e.Transcribe(context.Background(), strings.NewReader("audio-bytes"))

	assert.ErrorIs(t, err, apperr.ErrTranscriptionFailed)
	assert.Contains(t, err.Error(), "400")
}

func TestTranscribe_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens here anymore

	e := fastEngine(server.URL)

	_, err := e.Transcribe(context.Background(), strings.NewReader("audio-bytes"))

	assert.ErrorIs(t, err, apperr.ErrTranscriptionFailed)
}

func TestTranscribe_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	e := fastEngine(server.URL)

	_, err := e.Transcribe(context.Background(), strings.NewReader("audio-bytes"))

	assert.ErrorIs(t, err, apperr.ErrTranscriptionFailed)
}
