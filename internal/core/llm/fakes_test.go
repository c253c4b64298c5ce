package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// modelReply scripts one model of the fake OpenAI-compatible server.
type modelReply struct {
	status     int
	content    string
	retryAfter string
}

type fakeGroq struct {
	*httptest.Server
	mu      sync.Mutex
	replies map[string]modelReply
	calls   []string
}

func newFakeGroq(t *testing.T, replies map[string]modelReply) *fakeGroq {
	t.Helper()
	f := &fakeGroq{replies: replies}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		f.calls = append(f.calls, req.Model)
		reply, ok := f.replies[req.Model]
		f.mu.Unlock()
		if !ok {
			reply = modelReply{status: http.StatusNotFound}
		}

		w.Header().Set("Content-Type", "application/json")
		if reply.retryAfter != "" {
			w.Header().Set("Retry-After", reply.retryAfter)
		}
		if reply.status != 0 && reply.status != http.StatusOK {
			w.WriteHeader(reply.status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": http.StatusText(reply.status), "type": "test_error"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply.content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGroq) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGroq) provider(t *testing.T) Provider {
	t.Helper()
	p, err := NewProvider(&ProviderConfig{Type: ProviderGroq, APIKey: "test-key", BaseURL: f.URL})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

// fakeOllama answers /api/chat with answer, and translation requests with
// translation (or 500 when translation is empty).
type fakeOllama struct {
	*httptest.Server
	mu          sync.Mutex
	answer      string
	translation string
	requests    []ollamaChatRequest
	tags        []string
}

func newFakeOllama(t *testing.T, answer, translation string) *fakeOllama {
	t.Helper()
	f := &fakeOllama{answer: answer, translation: translation, tags: []string{"llama3.2:latest"}}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			models := make([]map[string]string, 0, len(f.tags))
			for _, name := range f.tags {
				models = append(models, map[string]string{"name": name})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"models": models})
			return
		case "/api/chat":
		default:
			http.NotFound(w, r)
			return
		}

		var req ollamaChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		content := f.answer
		if len(req.Messages) == 1 && strings.HasPrefix(req.Messages[0].Content, "Translate the following") {
			if f.translation == "" {
				http.Error(w, "translation unavailable", http.StatusInternalServerError)
				return
			}
			content = f.translation
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": content},
			"done":    true,
		})
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeOllama) Requests() []ollamaChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ollamaChatRequest(nil), f.requests...)
}

func (f *fakeOllama) ollama() *Ollama {
	return NewOllama(OllamaConfig{BaseURL: f.URL, Model: "llama3.2"})
}

// closedURL returns the address of a server that no longer listens.
func closedURL(t *testing.T) string {
	t.Helper()
	s := httptest.NewServer(http.NotFoundHandler())
	u := s.URL
	s.Close()
	return u
}
