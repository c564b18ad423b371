package search

import (
	"context"
	"time"
)

const (
	DefaultResultCount = 5
	MaxResultCount     = 20
	DefaultTimeout     = 10 * time.Second
)

// Kind identifies a concrete search backend.
type Kind string

const (
	KindSearXNG    Kind = "searxng"
	KindDuckDuckGo Kind = "duckduckgo"
	KindGoogle     Kind = "google"
	KindBing       Kind = "bing"
	KindCustom     Kind = "custom"
	KindWikipedia  Kind = "wikipedia"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindSearXNG, KindDuckDuckGo, KindGoogle, KindBing, KindCustom, KindWikipedia:
		return true
	}
	return false
}

// Provider executes a query against one backend.
type Provider interface {
	Search(ctx context.Context, query Query) ([]Result, error)
}

type Query struct {
	Text       string
	MaxResults int
}

// Result - один нормализованный результат поиска. Все три поля всегда
// присутствуют (возможно, пустые строки); имена полей конкретного бэкенда
// не просачиваются за границу провайдера.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// ProviderConfig is the per-agent search configuration. It is read once per
// conversation turn and never mutated afterwards.
type ProviderConfig struct {
	Kind        Kind
	BaseURL     string
	APIKey      string
	ResultCount int
	Timeout     time.Duration
}

// ClampResults normalizes a requested result count into the 1..20 range.
func ClampResults(n int) int {
	if n <= 0 {
		return DefaultResultCount
	}
	if n > MaxResultCount {
		return MaxResultCount
	}
	return n
}

// Truncate caps a result slice at max entries, preserving order.
func Truncate(results []Result, max int) []Result {
	if len(results) > max {
		return results[:max]
	}
	return results
}
