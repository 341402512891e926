package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompletion spins up a chat-completions endpoint that always answers
// with the given message content.
func fakeCompletion(t *testing.T, content string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Model)

		resp := map[string]any{
			"id": "chatcmpl-1",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "test-model", 5*time.Second)
	c.base = srv.URL
	return c
}

func TestChatReturnsContent(t *testing.T) {
	c := fakeCompletion(t, "hello")
	got, err := c.Chat(context.Background(), ChatRequest{
		Messages: []map[string]string{{"role": "user", "content": "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "test-model", 5*time.Second)
	c.base = srv.URL

	_, err := c.Chat(context.Background(), ChatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateQuestionsRepairsSloppyOutput(t *testing.T) {
	// prose wrapper, trailing comma and a raw newline inside a string: the
	// usual model sins, all at once
	raw := "Here are the questions:\n[{\"question\":\"What is a goroutine?\",\"answer\":\"Line 1\nLine 2\"},]\nGood luck!"
	c := fakeCompletion(t, raw)

	qs, err := c.GenerateQuestions(context.Background(), "Backend Engineer", "2 years", "Go, concurrency", 1)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "What is a goroutine?", qs[0].Question)
	assert.Equal(t, "Line 1\nLine 2", qs[0].Answer)
}

func TestGenerateQuestionsUnparseable(t *testing.T) {
	c := fakeCompletion(t, "I cannot answer that.")
	_, err := c.GenerateQuestions(context.Background(), "Backend Engineer", "2 years", "Go", 3)
	require.Error(t, err)
}

func TestExplainConcept(t *testing.T) {
	raw := "```json\n{\"title\":\"Goroutines\",\"explanation\":\"Lightweight threads. ```go\ngo f()\n``` That is it.\"}\n```"
	c := fakeCompletion(t, raw)

	exp, err := c.ExplainConcept(context.Background(), "What is a goroutine?")
	require.NoError(t, err)
	assert.Equal(t, "Goroutines", exp.Title)
	// normalization padded the fence with blank lines
	assert.Contains(t, exp.Explanation, "\n\n```go\ngo f()\n```\n\n")
}
