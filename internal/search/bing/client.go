package bing

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

type bingResponse struct {
	WebPages struct {
		Value []bingPage `json:"value"`
	} `json:"webPages"`
}

type bingPage struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: bing subscription key missing", search.ErrInvalidConfig)
	}

	max := search.ClampResults(query.MaxResults)

	params := url.Values{}
	params.Set("q", query.Text)
	params.Set("count", strconv.Itoa(max))

	header := http.Header{}
	header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	body, status, err := search.Get(ctx, c.client, search.JoinQuery(c.baseURL, params.Encode()), header)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		c.logger.Warn("bing web search failed", zap.Int("status", status))
		return nil, &search.BackendError{StatusCode: status}
	}

	var resp bingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	results := make([]search.Result, 0, len(resp.WebPages.Value))
	for _, page := range resp.WebPages.Value {
		results = append(results, search.Result{
			Title:   page.Name,
			URL:     page.URL,
			Snippet: search.Snippet(page.Snippet),
		})
	}

	return search.Truncate(results, max), nil
}

var _ search.Provider = (*Client)(nil)
