package deck

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

const uploadTimeout = 60 * time.Second

// ImageStore hosts deck screenshots on the drive file store so the rendering
// API can fetch them by URL.
type ImageStore struct {
	uploadURL    string
	driveBaseURL string
	token        string
	client       *http.Client
	logger       logger.Logger
}

func NewImageStore(cfg config.SlidesConfig, log logger.Logger) *ImageStore {
	return &ImageStore{
		uploadURL:    strings.Replace(cfg.DriveBaseURL, "/drive/", "/upload/drive/", 1),
		driveBaseURL: cfg.DriveBaseURL,
		token:        cfg.AccessToken,
		client:       &http.Client{Timeout: uploadTimeout},
		logger:       log,
	}
}

// UploadAll stores every decodable screenshot and returns key to public URL.
// Individual failures are logged and skipped so one bad image never blocks
// the deck; the affected slide falls back to its synthesized variant.
func (s *ImageStore) UploadAll(ctx context.Context, screenshots map[string]string) map[string]string {
	urls := make(map[string]string, len(screenshots))
	for key, payload := range screenshots {
		if payload == "" {
			continue
		}
		if strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") {
			urls[key] = payload
			continue
		}
		url, err := s.upload(ctx, key, payload)
		if err != nil {
			s.logger.Warn("screenshot upload failed, slide will fall back",
				logger.String("key", key),
				logger.Error(err),
			)
			continue
		}
		urls[key] = url
	}
	return urls
}

func (s *ImageStore) upload(ctx context.Context, name, payload string) (string, error) {
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := writer.CreatePart(metaHeader)
	if err != nil {
		return "", fmt.Errorf("building upload metadata: %w", err)
	}
	meta := map[string]string{"name": name + ".png"}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return "", fmt.Errorf("encoding upload metadata: %w", err)
	}

	imgHeader := textproto.MIMEHeader{}
	imgHeader.Set("Content-Type", "image/png")
	imgPart, err := writer.CreatePart(imgHeader)
	if err != nil {
		return "", fmt.Errorf("building upload body: %w", err)
	}
	if _, err := imgPart.Write(raw); err != nil {
		return "", fmt.Errorf("writing image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing upload body: %w", err)
	}

	url := s.uploadURL + "/files?uploadType=multipart&fields=id,webContentLink"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+writer.Boundary())
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d uploading image", resp.StatusCode)
	}

	var decoded struct {
		ID             string `json:"id"`
		WebContentLink string `json:"webContentLink"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if decoded.ID == "" {
		return "", fmt.Errorf("upload returned no file id")
	}

	if err := s.sharePublic(ctx, decoded.ID); err != nil {
		return "", err
	}

	if decoded.WebContentLink != "" {
		return decoded.WebContentLink, nil
	}
	return fmt.Sprintf("https://drive.google.com/uc?id=%s&export=download", decoded.ID), nil
}

func (s *ImageStore) sharePublic(ctx context.Context, fileID string) error {
	payload, err := json.Marshal(map[string]string{"type": "anyone", "role": "reader"})
	if err != nil {
		return fmt.Errorf("encoding permission: %w", err)
	}

	url := fmt.Sprintf("%s/files/%s/permissions", s.driveBaseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building permission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("setting permission: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d setting permission", resp.StatusCode)
	}
	return nil
}
