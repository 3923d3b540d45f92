// Package provider implements the SEO data provider client. Responses are
// nested JSON with no trusted schema; extraction defaults every missing or
// mistyped field instead of failing the batch.
package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/jsonx"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

const (
	statusOK       = 20000
	requestTimeout = 120 * time.Second

	defaultLocationCode = 2356 // India
	defaultLanguage     = "en"
)

type Client struct {
	baseURL      string
	login        string
	password     string
	maxPages     int
	keywordLimit int
	client       *http.Client
	logger       logger.Logger
}

func NewClient(cfg config.ProviderConfig, log logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("provider base URL is required")
	}
	if cfg.Login == "" || cfg.Password == "" {
		return nil, errors.New("provider credentials are required")
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		login:        cfg.Login,
		password:     cfg.Password,
		maxPages:     cfg.MaxCrawlPages,
		keywordLimit: cfg.KeywordLimit,
		client:       &http.Client{Timeout: requestTimeout},
		logger:       log,
	}, nil
}

func (c *Client) authHeader() string {
	credentials := fmt.Sprintf("%s:%s", c.login, c.password)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// post sends a single-element task payload and returns the decoded envelope
// after validating the provider status code.
func (c *Client) post(ctx context.Context, path string, task map[string]any) (map[string]any, error) {
	body, err := json.Marshal([]map[string]any{task})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path)
}

func (c *Client) get(ctx context.Context, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())

	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) (map[string]any, error) {
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response %s: %w", path, err)
	}

	c.logger.Debug("Provider request completed",
		logger.String("path", path),
		logger.Int("status_code", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider request %s: unexpected status %d", path, resp.StatusCode)
	}

	var envelope map[string]any
	if decodeErr := json.Unmarshal(raw, &envelope); decodeErr != nil {
		return nil, fmt.Errorf("decode provider response %s: %w", path, decodeErr)
	}

	if code := jsonx.Int(envelope, "status_code"); code != statusOK {
		msg := jsonx.String(envelope, "status_message")
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("provider error %s: %s (%d)", path, msg, code)
	}
	if len(jsonx.Slice(envelope, "tasks")) == 0 {
		return nil, fmt.Errorf("provider error %s: empty task list", path)
	}

	return envelope, nil
}

// firstResult returns tasks[0].result[0] from the envelope, or an empty map
// when the result list is missing or malformed.
func firstResult(envelope map[string]any) map[string]any {
	task := jsonx.First(envelope, "tasks")
	if task == nil {
		return map[string]any{}
	}
	result := jsonx.First(task, "result")
	if result == nil {
		return map[string]any{}
	}
	return result
}
