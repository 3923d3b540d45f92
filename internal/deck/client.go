package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

const clientTimeout = 60 * time.Second

// Result is returned to the caller after a deck has been rendered and
// shared.
type Result struct {
	PresentationID  string `json:"presentation_id"`
	PresentationURL string `json:"presentation_url"`
	SlideCount      int    `json:"slide_count"`
}

// Client talks to the presentation rendering API and its file store. All
// slide content is pushed in a single atomic batch update so a failed call
// leaves no half-built deck behind.
type Client struct {
	baseURL      string
	driveBaseURL string
	token        string
	client       *http.Client
	assembler    *Assembler
	logger       logger.Logger
}

func NewClient(cfg config.SlidesConfig, assembler *Assembler, log logger.Logger) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		driveBaseURL: cfg.DriveBaseURL,
		token:        cfg.AccessToken,
		client:       &http.Client{Timeout: clientTimeout},
		assembler:    assembler,
		logger:       log,
	}
}

// Generate creates the presentation, renders every slide in one batch and
// opens read access.
func (c *Client) Generate(ctx context.Context, in BuildInput) (*Result, error) {
	start := time.Now()
	title := fmt.Sprintf("SEO Strategy Deck - %s", in.Domain)

	pid, defaultSlides, err := c.createPresentation(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("creating presentation: %w", err)
	}

	reqs, units := c.assembler.Build(in)

	// The create call seeds a blank slide; drop it in the same batch.
	batch := make([]Request, 0, len(reqs)+len(defaultSlides))
	for _, sid := range defaultSlides {
		batch = append(batch, Request{"deleteObject": map[string]any{"objectId": sid}})
	}
	batch = append(batch, reqs...)

	if err := c.batchUpdate(ctx, pid, batch); err != nil {
		return nil, fmt.Errorf("rendering slides: %w", err)
	}

	if err := c.sharePublic(ctx, pid); err != nil {
		return nil, fmt.Errorf("sharing presentation: %w", err)
	}

	c.logger.Info("deck generated",
		logger.String("domain", in.Domain),
		logger.String("presentation_id", pid),
		logger.Int("slides", units),
		logger.Duration("duration", time.Since(start)),
	)

	return &Result{
		PresentationID:  pid,
		PresentationURL: fmt.Sprintf("https://docs.google.com/presentation/d/%s/edit", pid),
		SlideCount:      units,
	}, nil
}

func (c *Client) createPresentation(ctx context.Context, title string) (string, []string, error) {
	var decoded struct {
		PresentationID string `json:"presentationId"`
		Slides         []struct {
			ObjectID string `json:"objectId"`
		} `json:"slides"`
	}
	if err := c.post(ctx, c.baseURL+"/presentations", map[string]any{"title": title}, &decoded); err != nil {
		return "", nil, err
	}
	if decoded.PresentationID == "" {
		return "", nil, fmt.Errorf("presentation create returned no id")
	}
	ids := make([]string, 0, len(decoded.Slides))
	for _, s := range decoded.Slides {
		ids = append(ids, s.ObjectID)
	}
	return decoded.PresentationID, ids, nil
}

func (c *Client) batchUpdate(ctx context.Context, pid string, reqs []Request) error {
	url := fmt.Sprintf("%s/presentations/%s:batchUpdate", c.baseURL, pid)
	return c.post(ctx, url, map[string]any{"requests": reqs}, nil)
}

func (c *Client) sharePublic(ctx context.Context, pid string) error {
	url := fmt.Sprintf("%s/files/%s/permissions", c.driveBaseURL, pid)
	return c.post(ctx, url, map[string]any{"type": "anyone", "role": "reader"}, nil)
}

func (c *Client) post(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("rendering api call",
		logger.String("url", url),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
