package websearch

import (
	"strings"
	"testing"

	"github.com/akudrin/websearch-bot/internal/search"
)

func TestFormatResults(t *testing.T) {
	results := []search.Result{
		{Title: "Go 1.25 Release Notes", URL: "https://go.dev/doc/go1.25", Snippet: "What's new in Go 1.25."},
		{Title: "Go Blog", URL: "https://go.dev/blog", Snippet: "Official Go project blog."},
	}

	block := FormatResults(results)

	if !strings.HasPrefix(block, resultsHeader) {
		t.Errorf("block should start with the header, got %q", block)
	}
	if !strings.Contains(block, "1. **Go 1.25 Release Notes**") {
		t.Error("first entry missing numbered bold title")
	}
	if !strings.Contains(block, "   URL: https://go.dev/blog") {
		t.Error("second entry missing URL line")
	}
}

func TestFormatResults_Empty(t *testing.T) {
	if got := FormatResults(nil); got != "No search results found." {
		t.Errorf("FormatResults(nil) = %q", got)
	}
}

func TestParseResults_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		results []search.Result
	}{
		{
			name: "single result",
			results: []search.Result{
				{Title: "Go", URL: "https://go.dev", Snippet: "The Go programming language."},
			},
		},
		{
			name: "multiple results",
			results: []search.Result{
				{Title: "First", URL: "https://example.com/1", Snippet: "one"},
				{Title: "Second", URL: "https://example.com/2", Snippet: "two"},
				{Title: "Third", URL: "https://example.com/3", Snippet: "three"},
			},
		},
		{
			name: "empty snippet",
			results: []search.Result{
				{Title: "Bare", URL: "https://example.com", Snippet: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseResults(FormatResults(tt.results))

			if len(parsed) != len(tt.results) {
				t.Fatalf("round trip got %d results, want %d", len(parsed), len(tt.results))
			}
			for i, want := range tt.results {
				if parsed[i] != want {
					t.Errorf("result %d = %+v, want %+v", i, parsed[i], want)
				}
			}
		})
	}
}

func TestParseResults_RoundTrip_MultilineSnippet(t *testing.T) {
	results := []search.Result{
		{Title: "First", URL: "https://example.com/1", Snippet: "line one\n\nline two"},
		{Title: "Second", URL: "https://example.com/2", Snippet: "plain"},
	}

	parsed := ParseResults(FormatResults(results))

	if len(parsed) != 2 {
		t.Fatalf("round trip got %d results, want 2", len(parsed))
	}
	if parsed[0].Snippet != "line one  line two" {
		t.Errorf("snippet = %q, want newlines flattened", parsed[0].Snippet)
	}
	if parsed[1] != results[1] {
		t.Errorf("result 1 = %+v, want %+v", parsed[1], results[1])
	}
}

func TestParseResults_GarbageInput(t *testing.T) {
	if got := ParseResults("no entries here\njust prose"); len(got) != 0 {
		t.Errorf("ParseResults() = %v, want empty", got)
	}
}

func TestMergeContext(t *testing.T) {
	block := "Here are some relevant search results:\n\n1. **Go**\n   URL: https://go.dev\n   Text\n"

	merged := MergeContext("You are a helpful assistant.", block)

	if !strings.HasPrefix(merged, "You are a helpful assistant.") {
		t.Error("base context must be preserved at the front")
	}
	if !strings.Contains(merged, "IMPORTANT: Use the following current web search results") {
		t.Error("merged context missing the instruction preface")
	}
	if !strings.HasSuffix(strings.TrimRight(merged, "\n"), "Text") {
		t.Errorf("merged context should end with the block, got %q", merged)
	}
}

func TestMergeContext_EmptyBase(t *testing.T) {
	merged := MergeContext("", "block")

	if !strings.HasPrefix(merged, "IMPORTANT:") {
		t.Errorf("MergeContext with empty base = %q", merged)
	}
}
