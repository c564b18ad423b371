package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/search"
)

// Custom Search JSON API. The engine id (cx) is usually embedded in the
// configured base URL; only the key is passed separately.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = search.DefaultTimeout
	}

	return &Client{
		baseURL: search.NormalizeBaseURL(cfg.BaseURL),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type googleResponse struct {
	Items []googleItem `json:"items"`
}

type googleItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: google api key missing", search.ErrInvalidConfig)
	}

	max := search.ClampResults(query.MaxResults)

	// num is capped at 10 by the API; surplus is requested per page anyway
	// and the response is truncated client-side.
	num := max
	if num > 10 {
		num = 10
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query.Text)
	params.Set("num", strconv.Itoa(num))

	body, status, err := search.Get(ctx, c.client, search.JoinQuery(c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		c.logger.Warn("google custom search failed", zap.Int("status", status))
		return nil, &search.BackendError{StatusCode: status}
	}

	var resp googleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	results := make([]search.Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, search.Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: search.Snippet(item.Snippet),
		})
	}

	return search.Truncate(results, max), nil
}

var _ search.Provider = (*Client)(nil)
