package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/search"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	searchURL string
	client    *http.Client
	logger    *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = search.DefaultTimeout
	}

	return &Client{
		searchURL: normalizeSearchURL(cfg.BaseURL),
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// normalizeSearchURL ensures the instance URL ends in /search and strips the
// legacy "<query>" placeholder some frontends embed in the configured URL.
func normalizeSearchURL(raw string) string {
	u := search.NormalizeBaseURL(raw)

	if strings.Contains(u, "<query>") {
		u = strings.SplitN(u, "?", 2)[0]
		u = strings.TrimRight(u, "/")
	}

	if !strings.HasSuffix(u, "/search") {
		u += "/search"
	}
	return u
}

type searxngResponse struct {
	Results []searxngResult `json:"results"`
}

type searxngResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	max := search.ClampResults(query.MaxResults)

	params := url.Values{}
	params.Set("q", query.Text)
	params.Set("format", "json")
	params.Set("pageno", "1")
	params.Set("safesearch", "1")
	params.Set("language", "en-US")

	body, status, err := search.Get(ctx, c.client, search.JoinQuery(c.searchURL, params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		// 403 is the documented symptom of an instance without the JSON
		// output format enabled in its settings.
		c.logger.Warn("searxng request rejected",
			zap.Int("status", status),
			zap.String("url", c.searchURL),
		)
		return nil, &search.BackendError{StatusCode: status}
	}

	var resp searxngResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	// Instances return results in engine order; rank by score before
	// truncating so the best hits survive the cap.
	sort.SliceStable(resp.Results, func(i, j int) bool {
		return resp.Results[i].Score > resp.Results[j].Score
	})

	results := make([]search.Result, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, search.Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: search.Snippet(r.Content),
		})
	}

	return search.Truncate(results, max), nil
}

var _ search.Provider = (*Client)(nil)
