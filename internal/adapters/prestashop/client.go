// Package prestashop implements ports.OrderSource over the PrestaShop
// webservice API. The API has two quirks this adapter absorbs: numeric fields
// arrive as JSON strings, and collection responses flip between a bare array
// and a singular-wrapped object depending on result count.
package prestashop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tonycardosa/afiliados-rst/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	orderPageSize  = 25
)

// activeOrderStates are the upstream order statuses worth importing: paid,
// prepared, shipped, delivered and their remote-payment equivalents.
const activeOrderStates = "[2|4|5|9|11|15|17|26]"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("module", "sync", "layer", "adapter", "adapter", "prestashop"),
	}
}

// errAbsent marks a 404 from the upstream so callers can map "no such record"
// separately from transport failures.
var errAbsent = fmt.Errorf("upstream record absent")

// get performs one authenticated webservice call and returns the raw body.
// The API key travels as the basic-auth username with an empty password.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("output_format", "JSON")

	endpoint := fmt.Sprintf("%s/api/%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: call %s: %w", domain.ErrSourceUnavailable, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errAbsent
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: call %s: status %d", domain.ErrSourceUnavailable, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnavailable, path, err)
	}
	return body, nil
}

// getJSON fetches and decodes a singular resource response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
