// Package search is the HTTP client for the external specification
// search/scrape service.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"camo-inv-go/internal/logger"
)

// Client posts a query to the search API and expects a flat JSON object of
// specification name to value. Mock mode (USE_MOCK_SEARCH=true) answers with
// a canned spec set for offline demos.
type Client struct {
	APIURL  string
	UseMock bool
	Timeout time.Duration
}

func NewFromEnv() *Client {
	return &Client{
		APIURL:  os.Getenv("SEARCH_API_URL"),
		UseMock: os.Getenv("USE_MOCK_SEARCH") == "true",
		Timeout: 12 * time.Second,
	}
}

func (c *Client) Search(ctx context.Context, query string) (map[string]string, error) {
	log := logger.Component("search-client").WithField("query", query)

	if c.UseMock {
		log.Info("mock search mode ON")
		return map[string]string{
			"source":    "mock",
			"sensor":    "Full-frame CMOS",
			"connector": "USB-C",
		}, nil
	}
	if c.APIURL == "" {
		return nil, fmt.Errorf("SEARCH_API_URL not configured")
	}

	payload, _ := json.Marshal(map[string]string{"query": query})

	var specs map[string]string
	var lastErr error
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()

		req, _ := http.NewRequestWithContext(callCtx, "POST", c.APIURL, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		client := &http.Client{Timeout: c.Timeout}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("search server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("search request rejected: %s", string(body))
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, &specs); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.Timeout
	if err := backoff.Retry(op, bo); err != nil {
		log.WithError(lastErr).Warn("search API failed")
		return nil, lastErr
	}
	return specs, nil
}
