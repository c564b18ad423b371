package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/search"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

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
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = search.DefaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type wikiResponse struct {
	Query struct {
		Search []wikiPage `json:"search"`
	} `json:"query"`
}

type wikiPage struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	max := search.ClampResults(query.MaxResults)

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", query.Text)
	params.Set("srlimit", strconv.Itoa(max))

	body, status, err := search.Get(ctx, c.client, search.JoinQuery(c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		c.logger.Warn("wikipedia search failed", zap.Int("status", status))
		return nil, &search.BackendError{StatusCode: status}
	}

	var resp wikiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	results := make([]search.Result, 0, len(resp.Query.Search))
	for _, page := range resp.Query.Search {
		results = append(results, search.Result{
			Title:   page.Title,
			URL:     pageURL(page.Title),
			Snippet: search.Snippet(stripMarkup(page.Snippet)),
		})
	}

	return search.Truncate(results, max), nil
}

func pageURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_")
}

// stripMarkup removes the searchmatch highlighting the API wraps around
// matched terms in snippets.
func stripMarkup(snippet string) string {
	snippet = strings.ReplaceAll(snippet, `<span class="searchmatch">`, "")
	return strings.ReplaceAll(snippet, "</span>", "")
}

var _ search.Provider = (*Client)(nil)
