package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSendsMessageAndHeaders(t *testing.T) {
	var gotReq anthropicRequest
	var gotAPIKey, gotVersion string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "Eat more vegetables."},
			},
		})
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "test-key", "claude-sonnet-4-20250514")

	answer, err := client.Complete(context.Background(), "What should I eat?")
	require.NoError(t, err)
	assert.Equal(t, "Eat more vegetables.", answer)

	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, "claude-sonnet-4-20250514", gotReq.Model)
	assert.Equal(t, 1000, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "What should I eat?", gotReq.Messages[0].Content)
}

func TestCompleteNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "test-key", "claude-sonnet-4-20250514")

	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Contains(t, err.Error(), "status")
}

func TestCompleteEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "test-key", "claude-sonnet-4-20250514")

	_, err := client.Complete(context.Background(), "hello")
	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
}
