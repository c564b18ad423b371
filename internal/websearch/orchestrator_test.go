package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/search"
	"github.com/akudrin/websearch-bot/internal/search/registry"
)

const basePrompt = "You are a helpful assistant."

func newTestAugmenter(t *testing.T) *Augmenter {
	t.Helper()
	logger := zap.NewNop()
	reg := registry.New(logger)
	t.Cleanup(reg.Close)
	return New(reg, logger, nil)
}

func TestAugmenter_InjectsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"title": "Go 1.25", "url": "https://go.dev/doc/go1.25", "content": "Release notes", "score": 3.0},
			{"title": "Go Blog", "url": "https://go.dev/blog", "content": "Announcements", "score": 2.0},
			{"title": "Go Wiki", "url": "https://go.dev/wiki", "content": "Community docs", "score": 1.0}
		]}`))
	}))
	defer server.Close()

	a := newTestAugmenter(t)
	cfg := search.ProviderConfig{Kind: search.KindSearXNG, BaseURL: server.URL, ResultCount: 3}

	got := a.Augment(context.Background(), "search for go release notes", cfg, basePrompt)

	if !strings.HasPrefix(got, basePrompt) {
		t.Errorf("augmented context should keep the base prompt, got %q", got)
	}
	for _, want := range []string{"Go 1.25", "https://go.dev/blog", "Community docs"} {
		if !strings.Contains(got, want) {
			t.Errorf("augmented context missing %q", want)
		}
	}

	parsed := ParseResults(got)
	if len(parsed) != 3 {
		t.Errorf("augmented context carries %d results, want 3", len(parsed))
	}
}

func TestAugmenter_NoTriggerPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be reached for a non-triggering utterance")
	}))
	defer server.Close()

	a := newTestAugmenter(t)
	cfg := search.ProviderConfig{Kind: search.KindSearXNG, BaseURL: server.URL, ResultCount: 3}

	got := a.Augment(context.Background(), "turn on the kitchen light", cfg, basePrompt)

	if got != basePrompt {
		t.Errorf("Augment() = %q, want base prompt unchanged", got)
	}
}

func TestAugmenter_BackendErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	a := newTestAugmenter(t)
	cfg := search.ProviderConfig{Kind: search.KindSearXNG, BaseURL: server.URL, ResultCount: 3}

	got := a.Augment(context.Background(), "latest go news", cfg, basePrompt)

	if got != basePrompt {
		t.Errorf("Augment() = %q, want base prompt unchanged on 403", got)
	}
}

func TestAugmenter_MalformedResponseFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer server.Close()

	a := newTestAugmenter(t)
	cfg := search.ProviderConfig{Kind: search.KindCustom, BaseURL: server.URL, ResultCount: 3}

	got := a.Augment(context.Background(), "search for something", cfg, basePrompt)

	if got != basePrompt {
		t.Errorf("Augment() = %q, want base prompt unchanged on malformed response", got)
	}
}

func TestAugmenter_EmptyResultsFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	a := newTestAugmenter(t)
	cfg := search.ProviderConfig{Kind: search.KindSearXNG, BaseURL: server.URL, ResultCount: 3}

	got := a.Augment(context.Background(), "latest updates on the merger", cfg, basePrompt)

	if got != basePrompt {
		t.Errorf("Augment() = %q, want base prompt unchanged on empty results", got)
	}
}

func TestAugmenter_InvalidConfigFallsBack(t *testing.T) {
	a := newTestAugmenter(t)
	cfg := search.ProviderConfig{Kind: search.KindSearXNG, ResultCount: 3}

	got := a.Augment(context.Background(), "search for anything", cfg, basePrompt)

	if got != basePrompt {
		t.Errorf("Augment() = %q, want base prompt unchanged on invalid config", got)
	}
}

func TestAugmenter_RespectsResultCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"title": "A", "url": "https://a.example", "content": "a", "score": 5.0},
			{"title": "B", "url": "https://b.example", "content": "b", "score": 4.0},
			{"title": "C", "url": "https://c.example", "content": "c", "score": 3.0},
			{"title": "D", "url": "https://d.example", "content": "d", "score": 2.0}
		]}`))
	}))
	defer server.Close()

	a := newTestAugmenter(t)
	cfg := search.ProviderConfig{Kind: search.KindSearXNG, BaseURL: server.URL, ResultCount: 2}

	got := a.Augment(context.Background(), "search for letters", cfg, basePrompt)

	parsed := ParseResults(got)
	if len(parsed) != 2 {
		t.Fatalf("augmented context carries %d results, want 2", len(parsed))
	}
	if parsed[0].Title != "A" || parsed[1].Title != "B" {
		t.Errorf("highest-scored results should survive the cap, got %+v", parsed)
	}
}
