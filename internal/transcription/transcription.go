// Package transcription uploads recorded audio to a Whisper-style
// transcription service and returns plain text.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"camo-inv-go/internal/logger"
	"camo-inv-go/internal/samples"
)

type transcribeResponse struct {
	Text string `json:"text"`
}

// Client talks to an OpenAI-compatible audio transcription endpoint.
// Mock mode via USE_MOCK_TRANSCRIBE=true returns a canned intake
// description without touching the network.
type Client struct {
	APIURL  string
	APIKey  string
	Model   string
	UseMock bool
	Timeout time.Duration
}

func NewFromEnv() *Client {
	model := os.Getenv("TRANSCRIBE_MODEL")
	if model == "" {
		model = "whisper-1"
	}
	return &Client{
		APIURL:  os.Getenv("TRANSCRIBE_URL"),
		APIKey:  os.Getenv("TRANSCRIBE_API_KEY"),
		Model:   model,
		UseMock: os.Getenv("USE_MOCK_TRANSCRIBE") == "true",
		Timeout: 25 * time.Second,
	}
}

// Transcribe converts an audio byte stream into text. Empty audio and empty
// transcription results are errors.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	log := logger.Component("transcription")

	if c.UseMock {
		log.Info("mock transcribe mode ON - returning canned intake description")
		return samples.Default().Transcription, nil
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio supplied")
	}
	if c.APIURL == "" {
		return "", fmt.Errorf("TRANSCRIBE_URL not set")
	}

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	part, err := w.CreateFormFile("audio", "recording.webm")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	_ = w.WriteField("model", c.Model)
	_ = w.Close()

	endpoint := strings.TrimRight(c.APIURL, "/") + "/transcribe"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	var resp transcribeResponse
	if err := c.doJSON(req, &resp); err != nil {
		log.WithError(err).Error("transcription request failed")
		return "", err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("transcription returned empty text")
	}
	log.WithField("chars", len(text)).Info("transcription completed")
	return text, nil
}

func (c *Client) doJSON(req *http.Request, target interface{}) error {
	httpClient := &http.Client{Timeout: c.Timeout}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.Timeout
	var lastErr error
	op := func() error {
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("transcription rejected: %s", string(body))
			return backoff.Permanent(lastErr)
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, bo); err != nil {
		return lastErr
	}
	return nil
}
