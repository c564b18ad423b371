package websearch

import (
	"fmt"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      bool
	}{
		{
			name:      "explicit search verb",
			utterance: "search for cheap flights to Lisbon",
			want:      true,
		},
		{
			name:      "look up",
			utterance: "can you look up the capital of Mongolia",
			want:      true,
		},
		{
			name:      "informational opener",
			utterance: "what is quantum entanglement",
			want:      true,
		},
		{
			name:      "freshness marker",
			utterance: "any news about the election",
			want:      true,
		},
		{
			name:      "uppercase phrase",
			utterance: "SEARCH FOR cats",
			want:      true,
		},
		{
			name:      "trailing punctuation",
			utterance: "what's the latest news?",
			want:      true,
		},
		{
			name:      "phrase mid-sentence",
			utterance: "I wonder what is happening in Paris",
			want:      true,
		},
		{
			name:      "smart home command",
			utterance: "turn on the kitchen light",
			want:      false,
		},
		{
			name:      "plain chit-chat",
			utterance: "thanks, that was helpful",
			want:      false,
		},
		{
			name:      "empty utterance",
			utterance: "",
			want:      false,
		},
		{
			name:      "whitespace only",
			utterance: "   ",
			want:      false,
		},
		{
			name:      "old year alone does not trigger",
			utterance: "the battle of 1812",
			want:      false,
		},
		{
			name:      "year inside a longer number",
			utterance: fmt.Sprintf("order #99%d7 status", time.Now().Year()),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, got := Classify(tt.utterance)
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.utterance, got, tt.want)
			}
			if got && query.Text == "" {
				t.Error("triggered classification must carry the query text")
			}
		})
	}
}

func TestClassify_KeepsFullUtterance(t *testing.T) {
	utterance := "  search for coffee shops near the station  "

	query, triggered := Classify(utterance)
	if !triggered {
		t.Fatal("Classify() = false, want true")
	}
	if query.Text != "search for coffee shops near the station" {
		t.Errorf("query.Text = %q, want trimmed full utterance", query.Text)
	}
}

func TestClassify_CurrentYear(t *testing.T) {
	year := time.Now().Year()

	for _, y := range []int{year - 1, year, year + 1} {
		utterance := fmt.Sprintf("best laptops %d", y)
		if _, triggered := Classify(utterance); !triggered {
			t.Errorf("Classify(%q) = false, want true", utterance)
		}
	}

	utterance := fmt.Sprintf("best laptops %d", year-5)
	if _, triggered := Classify(utterance); triggered {
		t.Errorf("Classify(%q) = true, want false", utterance)
	}
}

func TestContainsRecentYear(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"elections in 2025", true},
		{"elections in 2024", true},
		{"elections in 2026", true},
		{"elections in 2020", false},
		{"room 20255 is free", false},
		{"no digits here", false},
	}

	for _, tt := range tests {
		if got := containsRecentYear(tt.text, 2025); got != tt.want {
			t.Errorf("containsRecentYear(%q, 2025) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
