package cohere_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketscan/internal/config"
	"ticketscan/internal/generation"
	"ticketscan/internal/generation/cohere"
)

func newTestGenerator(serverURL string) *cohere.Generator {
	return cohere.NewGeneratorWithEndpoint(&config.GenerationProviderConfig{
		Provider:    "cohere",
		APIKey:      "co-test-key",
		TimeoutSecs: 5,
	}, serverURL)
}

func TestCohereGenerator_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer co-test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "command", reqBody["model"])
		assert.Equal(t, "OCR prompt", reqBody["prompt"])
		assert.Equal(t, float64(600), reqBody["max_tokens"])
		assert.Equal(t, 0.3, reqBody["temperature"])
		assert.Equal(t, []interface{}{"\n\n"}, reqBody["stop_sequences"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"generations": []map[string]interface{}{{"text": `{"storeName": "Walmart"}`}},
		})
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Generate(context.Background(), "OCR prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"storeName": "Walmart"}`, out.Text)
	assert.Equal(t, "command", out.Model)
	assert.Equal(t, "cohere", out.Provider)
}

func TestCohereGenerator_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message": "slow down"}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "p")

	var rlErr *generation.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "cohere", rlErr.Provider)
	assert.Equal(t, 12*time.Second, rlErr.RetryAfter)
}

func TestCohereGenerator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal"))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "p")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestCohereGenerator_EmptyGenerations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generations": []}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, generation.ErrEmptyCompletion)
}

func TestCohereGenerator_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestGenerator(server.URL).Generate(ctx, "p")

	assert.Error(t, err)
}

func TestCohereGenerator_Registered(t *testing.T) {
	g, err := generation.NewGenerator(&config.GenerationProviderConfig{Provider: "cohere"})

	require.NoError(t, err)
	assert.IsType(t, &cohere.Generator{}, g)
}
