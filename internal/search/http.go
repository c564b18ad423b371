package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

const (
	userAgent     = "websearch-bot/1.0"
	snippetMaxLen = 300
)

// Do executes an HTTP request and reads the full body. Client timeouts and
// context deadlines are mapped to ErrTimeout so callers only deal with the
// search error taxonomy.
func Do(client *http.Client, req *http.Request) ([]byte, int, error) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, 0, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// Get builds and executes a GET request with the given query parameters.
func Get(ctx context.Context, client *http.Client, rawURL string, header http.Header) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return Do(client, req)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Snippet normalizes free-text content for prompt injection: newlines are
// flattened to spaces (the result block is line-oriented) and the text is
// capped at 300 characters on a rune boundary.
func Snippet(content string) string {
	content = strings.ReplaceAll(content, "\r\n", " ")
	content = strings.ReplaceAll(content, "\n", " ")

	runes := []rune(content)
	if len(runes) > snippetMaxLen {
		return string(runes[:snippetMaxLen]) + "..."
	}
	return content
}

// NormalizeBaseURL trims trailing slashes and defaults the scheme when the
// configured URL omits it: http for local addresses, https otherwise.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return u
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	for _, local := range []string{"localhost", "127.0.0.1", "192.168.", "10.", "172."} {
		if strings.HasPrefix(u, local) {
			return "http://" + u
		}
	}
	return "https://" + u
}

// JoinQuery appends an encoded query string to a base URL that may already
// carry its own parameters (e.g. a Google CSE URL with cx embedded).
func JoinQuery(baseURL, encoded string) string {
	if strings.Contains(baseURL, "?") {
		return baseURL + "&" + encoded
	}
	return baseURL + "?" + encoded
}
