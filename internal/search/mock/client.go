package mock

import (
	"context"
	"sync"
	"time"

	"github.com/akudrin/websearch-bot/internal/search"
)

type Client struct {
	Results []search.Result
	Error   error
	Delay   time.Duration

	CallCount  int
	LastQuery  search.Query
	AllQueries []search.Query

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResults(results []search.Result) *Client {
	c.Results = results
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastQuery = query
	c.AllQueries = append(c.AllQueries, query)
	delay := c.Delay
	err := c.Error
	results := c.Results
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	return search.Truncate(results, search.ClampResults(query.MaxResults)), nil
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastQuery = search.Query{}
	c.AllQueries = nil
}

var _ search.Provider = (*Client)(nil)
