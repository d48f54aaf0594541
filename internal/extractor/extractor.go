package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"camo-inv-go/internal/logger"
	"camo-inv-go/internal/samples"
	"camo-inv-go/internal/types"
)

// ExtractionError means the transcription carried no recognizable equipment
// reference, or the model's output could not be shaped into a valid record.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "extraction failed: " + e.Reason
}

// Extractor turns transcribed speech into a structured EquipmentRecord via
// an OpenAI-compatible chat gateway. With UseMock it answers from the bundled
// sample library instead, for offline demos.
type Extractor struct {
	GatewayURL string
	APIKey     string
	Model      string
	UseMock    bool

	// Catalog is optional known-equipment context (brands, categories)
	// embedded into the prompt as ground truth. Any JSON-marshallable value.
	Catalog any

	HTTPTimeout  time.Duration
	MaxRetryTime time.Duration
}

// NewFromEnv builds an Extractor from the same environment variables the
// rest of the service uses.
func NewFromEnv() *Extractor {
	return &Extractor{
		GatewayURL:   os.Getenv("LLM_GATEWAY_URL"),
		APIKey:       os.Getenv("LLM_API_KEY"),
		Model:        os.Getenv("LLM_MODEL"),
		UseMock:      os.Getenv("USE_MOCK_LLM") == "true",
		HTTPTimeout:  25 * time.Second,
		MaxRetryTime: 45 * time.Second,
	}
}

// Extract populates an EquipmentRecord from transcription text. name, brand,
// model and category are guaranteed non-empty on success.
func (e *Extractor) Extract(ctx context.Context, transcription string) (types.EquipmentRecord, error) {
	log := logger.Component("extractor")

	if strings.TrimSpace(transcription) == "" {
		return types.EquipmentRecord{}, &ExtractionError{Reason: "empty transcription"}
	}

	if e.UseMock {
		s, ok := samples.Match(transcription)
		if !ok {
			return types.EquipmentRecord{}, &ExtractionError{Reason: "no recognizable equipment in transcription"}
		}
		log.WithField("sample", s.Key).Info("mock LLM mode ON - answering from sample library")
		rec := s.Clone()
		// mock records carry pre-scraped specs; extraction alone would not
		rec.Specifications = nil
		return rec, nil
	}

	if e.GatewayURL == "" || e.APIKey == "" {
		return types.EquipmentRecord{}, fmt.Errorf("llm gateway not configured")
	}

	prompt := BuildPrompt(transcription, e.Catalog)
	reqBody := map[string]any{
		"model": e.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.0,
	}
	data, _ := json.Marshal(reqBody)

	var raw rawRecord
	var lastErr error

	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, e.HTTPTimeout)
		defer cancel()

		req, _ := http.NewRequestWithContext(callCtx, "POST", e.GatewayURL, bytes.NewReader(data))
		req.Header.Set("Authorization", "Bearer "+e.APIKey)
		req.Header.Set("Content-Type", "application/json")

		client := &http.Client{Timeout: e.HTTPTimeout}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		log.WithField("http_status", resp.StatusCode).Debug("llm raw response received")

		if inner := extractContentFromChoices(body); inner != "" {
			if err := json.Unmarshal([]byte(inner), &raw); err == nil {
				lastErr = nil
				return nil
			}
		}
		if fallback := extractJSON(string(body)); fallback != "" {
			if err := json.Unmarshal([]byte(fallback), &raw); err == nil {
				lastErr = nil
				return nil
			}
		}

		lastErr = fmt.Errorf("no JSON found in LLM output")
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(lastErr)
		}
		return lastErr
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = e.MaxRetryTime
	if err := backoff.Retry(op, bo); err != nil {
		return types.EquipmentRecord{}, fmt.Errorf("llm extract failed: %w", lastErr)
	}

	rec, err := normalize(raw)
	if err != nil {
		return types.EquipmentRecord{}, err
	}
	log.WithField("name", rec.Name).WithField("category", rec.Category).Info("equipment record extracted")
	return rec, nil
}

// extractContentFromChoices reads openai-style choices[0].message.content.
func extractContentFromChoices(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return ""
	}
	c0, _ := choices[0].(map[string]any)
	if c0 == nil {
		return ""
	}
	msg, _ := c0["message"].(map[string]any)
	if msg == nil {
		return ""
	}
	content, _ := msg["content"].(string)
	return extractJSON(content)
}

// extractJSON finds the first balanced JSON object in a string, stripping
// common markdown fences first.
func extractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, r := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, r, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
