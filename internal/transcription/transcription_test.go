package transcription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribeMockMode(t *testing.T) {
	c := &Client{UseMock: true}
	text, err := c.Transcribe(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Canon EOS R5")
}

func TestTranscribeEmptyAudio(t *testing.T) {
	c := &Client{APIURL: "http://localhost:1", Timeout: time.Second}
	_, err := c.Transcribe(context.Background(), nil)
	assert.EqualError(t, err, "no audio supplied")
}

func TestTranscribeHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transcribe", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		_, header, err := r.FormFile("audio")
		require.NoError(t, err)
		assert.Equal(t, "recording.webm", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "  a Sony FX6 cinema camera  "}`))
	}))
	defer srv.Close()

	c := &Client{APIURL: srv.URL, APIKey: "test-key", Model: "whisper-1", Timeout: 5 * time.Second}
	text, err := c.Transcribe(context.Background(), []byte("fake-webm-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "a Sony FX6 cinema camera", text)
}

func TestTranscribeEmptyTextIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": ""}`))
	}))
	defer srv.Close()

	c := &Client{APIURL: srv.URL, Timeout: 5 * time.Second}
	_, err := c.Transcribe(context.Background(), []byte("fake"))
	assert.EqualError(t, err, "transcription returned empty text")
}

func TestTranscribeRejectedRequestNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad audio format", http.StatusUnsupportedMediaType)
	}))
	defer srv.Close()

	c := &Client{APIURL: srv.URL, Timeout: 2 * time.Second}
	_, err := c.Transcribe(context.Background(), []byte("fake"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcription rejected")
	assert.Equal(t, 1, calls)
}
