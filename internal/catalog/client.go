// Package catalog provides a client for the governance catalog REST API:
// applications, technologies and the application-technology association.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/apperrors"
	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// DefaultTimeout is the maximum time to wait for a catalog response.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 4096

// StatusError is returned when the catalog answers with an unexpected status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client provides access to the catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a catalog client for the API rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.Named("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListApplications returns every application record (GET /api/aplicacoes).
func (c *Client) ListApplications(ctx context.Context) ([]model.Application, error) {
	endpoint, err := buildURL(c.baseURL, nil, "api", "aplicacoes")
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	var apps []model.Application
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// SearchTechnologies returns the technologies the server considers a match
// for name (GET /api/tecnologias?nome=). The server may match more broadly
// than the exact name; callers filter.
func (c *Client) SearchTechnologies(ctx context.Context, name string) ([]model.Technology, error) {
	endpoint, err := buildURL(c.baseURL, url.Values{"nome": {name}}, "api", "tecnologias")
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	var techs []model.Technology
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &techs); err != nil {
		return nil, err
	}
	return techs, nil
}

// CreateTechnology posts a new technology and returns the stored record.
// A 409 response is reported as apperrors.ErrConflict.
func (c *Client) CreateTechnology(ctx context.Context, tech *model.Technology) (*model.Technology, error) {
	endpoint, err := buildURL(c.baseURL, nil, "api", "tecnologias")
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	var created model.Technology
	if err := c.do(ctx, http.MethodPost, endpoint, tech, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("catalog created technology %q without an id", tech.Nome)
	}
	return &created, nil
}

// AssociateTechnology links a technology to an application
// (POST /api/aplicacoes/{id}/tecnologias). The call is not idempotent; the
// server decides what to do with duplicates.
func (c *Client) AssociateTechnology(ctx context.Context, applicationID, technologyID string) error {
	endpoint, err := buildURL(c.baseURL, nil, "api", "aplicacoes", applicationID, "tecnologias")
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	body := map[string]string{"idTecnologia": technologyID}
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// Associate is the pipeline form of AssociateTechnology: failures are logged
// and reported as false, never returned.
func (c *Client) Associate(ctx context.Context, applicationID, technologyID string) bool {
	if err := c.AssociateTechnology(ctx, applicationID, technologyID); err != nil {
		c.logger.Warn("Failed to associate technology",
			zap.String("application_id", applicationID),
			zap.String("technology_id", technologyID),
			zap.Error(err))
		return false
	}
	return true
}

// do executes a JSON request. in is marshalled as the body when non-nil;
// out receives the decoded response when non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Calling catalog",
		zap.String("method", method),
		zap.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call catalog: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBody),
		}
		switch resp.StatusCode {
		case http.StatusConflict:
			return fmt.Errorf("%w: %w", apperrors.ErrConflict, statusErr)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", apperrors.ErrNotFound, statusErr)
		}
		c.logger.Debug("Catalog returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", statusErr.Body))
		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// IsConflict reports whether err carries a 409 from the catalog.
func IsConflict(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}

// buildURL constructs a URL by parsing the base and joining path segments.
func buildURL(baseURL string, query url.Values, pathSegments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	segments := append([]string{u.Path}, pathSegments...)
	u.Path = path.Join(segments...)
	u.RawPath = ""
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
