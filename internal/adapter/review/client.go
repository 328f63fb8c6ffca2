package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Store receives authorized review content. The engine keeps only the
// dedup marker; the content itself lives in the catalog service.
type Store interface {
	Add(ctx context.Context, productID int64, rating int, content string) error
}

// HTTPStore implements Store via the catalog service HTTP API.
type HTTPStore struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the JSON payload sent to the catalog service.
type request struct {
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Content   string `json:"content,omitempty"`
}

// NewHTTPStore creates HTTP review store client with default timeout.
func NewHTTPStore(baseURL string, logger *slog.Logger) (*HTTPStore, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse review store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("review store url must be absolute")
	}
	return &HTTPStore{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Add posts the review content to the catalog service.
func (s *HTTPStore) Add(ctx context.Context, productID int64, rating int, content string) error {
	target := *s.baseURL
	target.Path = path.Join(target.Path, "/api/reviews")

	body, err := json.Marshal(request{ProductID: productID, Rating: rating, Content: content})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		s.logger.Error("review store request failed",
			slog.Int64("product_id", productID),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)))
		return fmt.Errorf("review store error: %s", resp.Status)
	}
	return nil
}
