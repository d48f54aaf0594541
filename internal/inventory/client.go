// Package inventory is the HTTP client for the persistence service that
// stores assembled form payloads.
package inventory

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
	"camo-inv-go/internal/types"
)

// SKU is the catalog-level product the inventory service tracks items under.
type SKU struct {
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Category        string  `json:"category"`
	Description     string  `json:"description,omitempty"`
	PricePerDay     float64 `json:"price_per_day,omitempty"`
	SecurityDeposit float64 `json:"security_deposit,omitempty"`
}

type createResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Client posts to the inventory service's create endpoints. Both operations
// return the generated document identifier.
type Client struct {
	BaseURL string
	Timeout time.Duration
}

func NewFromEnv() *Client {
	return &Client{
		BaseURL: os.Getenv("INVENTORY_API_URL"),
		Timeout: 15 * time.Second,
	}
}

// Configured reports whether a persistence service address is set.
func (c *Client) Configured() bool {
	return c.BaseURL != ""
}

// CreateItem stores one assembled form payload and returns the generated
// inventory ID.
func (c *Client) CreateItem(ctx context.Context, payload types.FormPayload) (string, error) {
	return c.create(ctx, "/api/inventory", payload)
}

// CreateSKU registers the catalog entry for a payload's brand+model and
// returns the generated SKU ID.
func (c *Client) CreateSKU(ctx context.Context, sku SKU) (string, error) {
	return c.create(ctx, "/api/skus", sku)
}

// SKUFromPayload derives the catalog entry for an assembled payload.
func SKUFromPayload(p types.FormPayload) SKU {
	return SKU{
		Name:            p.Name,
		Brand:           p.Brand,
		Model:           p.Model,
		Category:        p.Category,
		Description:     p.Description,
		PricePerDay:     p.PricePerDay,
		SecurityDeposit: p.SecurityDeposit,
	}
}

func (c *Client) create(ctx context.Context, path string, body any) (string, error) {
	log := logger.Component("inventory-client").WithField("path", path)

	if c.BaseURL == "" {
		return "", fmt.Errorf("INVENTORY_API_URL not set")
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + path

	var out createResponse
	var lastErr error
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()

		req, _ := http.NewRequestWithContext(callCtx, "POST", endpoint, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")

		client := &http.Client{Timeout: c.Timeout}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(respBody))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("request rejected: %s", string(respBody))
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(respBody, &out); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(respBody))
			return lastErr
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.Timeout
	if err := backoff.Retry(op, bo); err != nil {
		log.WithError(lastErr).Error("create failed")
		return "", lastErr
	}
	if !out.Success {
		return "", fmt.Errorf("create failed: %s", out.Error)
	}
	log.WithField("id", out.ID).Info("created")
	return out.ID, nil
}
