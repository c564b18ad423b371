package websearch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akudrin/websearch-bot/internal/search"
)

const (
	resultsHeader = "Here are some relevant search results:"

	// Prefixed to the formatted block when merging into the system prompt.
	searchInstruction = "IMPORTANT: Use the following current web search results to inform your response. " +
		"These are real-time search results that provide current information:"
)

// FormatResults renders results as a numbered block, one entry per record:
// title, url, snippet. The layout is stable so ParseResults can invert it.
func FormatResults(results []search.Result) string {
	if len(results) == 0 {
		return "No search results found."
	}

	var sb strings.Builder
	sb.WriteString(resultsHeader)
	sb.WriteString("\n")

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n%d. **%s**\n", i+1, r.Title))
		sb.WriteString(fmt.Sprintf("   URL: %s\n", r.URL))
		sb.WriteString(fmt.Sprintf("   %s\n", flattenLines(r.Snippet)))
	}

	return sb.String()
}

// flattenLines keeps a snippet on a single line so the block layout stays
// unambiguous. Provider snippets are already flat; this covers results that
// arrive from elsewhere.
func flattenLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

var entryPattern = regexp.MustCompile(`^(\d+)\. \*\*(.*)\*\*$`)

// ParseResults recovers the (title, url, snippet) triples from a block
// produced by FormatResults, in order.
func ParseResults(block string) []search.Result {
	var results []search.Result

	lines := strings.Split(block, "\n")
	for i := 0; i < len(lines); i++ {
		m := entryPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		r := search.Result{Title: m[2]}

		if i+1 < len(lines) {
			if url, ok := strings.CutPrefix(lines[i+1], "   URL: "); ok {
				r.URL = url
				i++
			}
		}

		var snippetLines []string
		for i+1 < len(lines) {
			next := lines[i+1]
			if next == "" || entryPattern.MatchString(next) {
				break
			}
			snippetLines = append(snippetLines, strings.TrimPrefix(next, "   "))
			i++
		}
		r.Snippet = strings.Join(snippetLines, "\n")

		results = append(results, r)
	}

	return results
}

// MergeContext appends the formatted search block to an existing system
// prompt. The base context is never replaced, only extended.
func MergeContext(base, block string) string {
	section := searchInstruction + "\n\n" + block
	if base == "" {
		return section
	}
	return base + "\n\n" + section
}
