package payment

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
	"strconv"
	"time"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
)

// TooManyRequestsError represents rate limiting signal from the payment
// provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Unwrap classifies rate limiting as an upstream failure so callers
// can match it with errors.Is.
func (e TooManyRequestsError) Unwrap() error {
	return domainErrors.ErrUpstreamFailure
}

// Gateway settles money movements at the payment provider.
type Gateway interface {
	Capture(ctx context.Context, reference string, amount int64) error
	Refund(ctx context.Context, reference string, amount int64) error
}

// HTTPGateway implements Gateway via HTTP API.
type HTTPGateway struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the JSON payload sent to the payment provider.
type request struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
}

// NewHTTPGateway creates HTTP payment gateway client with default timeout.
func NewHTTPGateway(baseURL string, logger *slog.Logger) (*HTTPGateway, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPGateway{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Capture charges the buyer for the referenced amount.
func (g *HTTPGateway) Capture(ctx context.Context, reference string, amount int64) error {
	return g.post(ctx, "/api/payments/capture", reference, amount)
}

// Refund returns the referenced amount to the buyer.
func (g *HTTPGateway) Refund(ctx context.Context, reference string, amount int64) error {
	return g.post(ctx, "/api/payments/refund", reference, amount)
}

func (g *HTTPGateway) post(ctx context.Context, endpoint, reference string, amount int64) error {
	target := *g.baseURL
	target.Path = path.Join(target.Path, endpoint)

	body, err := json.Marshal(request{Reference: reference, Amount: amount})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		respBody, _ := io.ReadAll(resp.Body)
		g.logger.Error("payment request failed",
			slog.String("reference", reference),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)))
		return fmt.Errorf("%w: payment provider returned %s", domainErrors.ErrUpstreamFailure, resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
