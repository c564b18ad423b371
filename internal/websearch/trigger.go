package websearch

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/akudrin/websearch-bot/internal/search"
)

// triggerPhrases are matched as case-insensitive substrings, so trailing
// punctuation ("latest news?") never defeats a match.
var triggerPhrases = []string{
	// explicit search verbs
	"search for",
	"look up",
	"find information about",
	// informational openers
	"what is",
	"what are",
	"tell me about",
	// freshness markers
	"latest news",
	"current events",
	"recent",
	"news",
	"updates",
	"today",
	"this week",
	"this month",
	"this year",
	"latest",
	"current",
	"new",
	"happening",
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// Classify decides whether an utterance warrants a web search and extracts
// the query text. The full utterance is kept as the query: stripping the
// trigger phrase tends to lose context ("search for X near Y").
// Pure function of the utterance and the clock (bare-year triggers).
func Classify(utterance string) (search.Query, bool) {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return search.Query{}, false
	}

	lower := strings.ToLower(trimmed)

	for _, phrase := range triggerPhrases {
		if strings.Contains(lower, phrase) {
			return search.Query{Text: trimmed}, true
		}
	}

	if containsRecentYear(lower, time.Now().Year()) {
		return search.Query{Text: trimmed}, true
	}

	return search.Query{}, false
}

// containsRecentYear reports whether the text mentions a bare 4-digit year
// in the [current-1, current+1] window, a cheap freshness signal.
func containsRecentYear(text string, currentYear int) bool {
	for _, m := range yearPattern.FindAllStringSubmatch(text, -1) {
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year >= currentYear-1 && year <= currentYear+1 {
			return true
		}
	}
	return false
}
