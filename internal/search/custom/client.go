package custom

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

// Client talks to any backend exposing the generic JSON contract:
// GET {base_url}?q=...&count=... returning {"results":[{title,url,content}]}.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = search.DefaultTimeout
	}

	return &Client{
		baseURL: search.NormalizeBaseURL(cfg.BaseURL),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type customResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	max := search.ClampResults(query.MaxResults)

	params := url.Values{}
	params.Set("q", query.Text)
	params.Set("count", strconv.Itoa(max))

	body, status, err := search.Get(ctx, c.client, search.JoinQuery(c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		c.logger.Warn("custom search failed", zap.Int("status", status))
		return nil, &search.BackendError{StatusCode: status}
	}

	// The contract is strict: a 2xx body without a "results" array is a
	// malformed response, distinct from an empty results list.
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	raw, ok := payload["results"]
	if !ok {
		return nil, fmt.Errorf("%w: missing results key", search.ErrMalformedResponse)
	}

	var items []customResult
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	results := make([]search.Result, 0, len(items))
	for _, item := range items {
		results = append(results, search.Result{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: search.Snippet(item.Content),
		})
	}

	return search.Truncate(results, max), nil
}

var _ search.Provider = (*Client)(nil)
