package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/llm"
)

func TestClient_CompleteWithSystem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}

		var req llm.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream must be false")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("messages = %+v, want system then user", req.Messages)
		}

		json.NewEncoder(w).Encode(chatResponse{
			Message: llm.Message{Role: "assistant", Content: "The capital is Ulaanbaatar."},
			Done:    true,
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Model: "llama3.2"}, zap.NewNop())

	answer, err := client.CompleteWithSystem(context.Background(), "You are helpful.", "capital of Mongolia?")
	if err != nil {
		t.Fatalf("CompleteWithSystem() error = %v", err)
	}
	if answer != "The capital is Ulaanbaatar." {
		t.Errorf("answer = %q", answer)
	}
}

func TestClient_CompleteWithSystem_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"role": "assistant", "content": ""}, "done": true}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, zap.NewNop())

	_, err := client.CompleteWithSystem(context.Background(), "sys", "prompt")
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Errorf("CompleteWithSystem() error = %v, want ErrEmptyResponse", err)
	}
}

func TestClient_CompleteWithSystem_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, zap.NewNop())

	_, err := client.CompleteWithSystem(context.Background(), "sys", "prompt")
	if !errors.Is(err, llm.ErrRequestFailed) {
		t.Errorf("CompleteWithSystem() error = %v, want ErrRequestFailed", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New(Config{}, zap.NewNop())

	if client.baseURL != "http://localhost:11434" {
		t.Errorf("baseURL = %q", client.baseURL)
	}
	if client.model != "llama3.2" {
		t.Errorf("model = %q", client.model)
	}
}
