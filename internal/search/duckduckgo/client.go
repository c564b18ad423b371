package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/search"
)

// Instant Answer API. There is no configurable endpoint and no result-count
// parameter; the payload is truncated client-side.
const defaultBaseURL = "https://api.duckduckgo.com/"

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

type instantAnswer struct {
	Heading       string         `json:"Heading"`
	Abstract      string         `json:"Abstract"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	max := search.ClampResults(query.MaxResults)

	params := url.Values{}
	params.Set("q", query.Text)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	params.Set("no_redirect", "1")

	body, status, err := search.Get(ctx, c.client, search.JoinQuery(c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		c.logger.Warn("duckduckgo request failed", zap.Int("status", status))
		return nil, &search.BackendError{StatusCode: status}
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err)
	}

	var results []search.Result

	if answer.Abstract != "" {
		title := answer.Heading
		if title == "" {
			title = query.Text
		}
		results = append(results, search.Result{
			Title:   title,
			URL:     answer.AbstractURL,
			Snippet: search.Snippet(answer.Abstract),
		})
	}

	results = appendTopics(results, answer.RelatedTopics, max)

	// An empty instant-answer payload is a valid outcome, not an error.
	return search.Truncate(results, max), nil
}

// appendTopics flattens RelatedTopics, including nested category groups.
func appendTopics(results []search.Result, topics []relatedTopic, max int) []search.Result {
	for _, topic := range topics {
		if len(results) >= max {
			break
		}
		if len(topic.Topics) > 0 {
			results = appendTopics(results, topic.Topics, max)
			continue
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, search.Result{
			Title:   topicTitle(topic.Text),
			URL:     topic.FirstURL,
			Snippet: search.Snippet(topic.Text),
		})
	}
	return results
}

// topicTitle takes the part before the first " - " separator, which is how
// the instant-answer API prefixes topic names.
func topicTitle(text string) string {
	if title, _, ok := strings.Cut(text, " - "); ok {
		return title
	}
	return text
}

var _ search.Provider = (*Client)(nil)
