package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/excuse-api/internal/config"
	"github.com/phrazzld/excuse-api/internal/domain"
	"github.com/phrazzld/excuse-api/internal/generation"
)

// recordingObserver captures normalization strategy observations.
type recordingObserver struct {
	strategies []string
}

func (r *recordingObserver) ObserveNormalize(strategy string) {
	r.strategies = append(r.strategies, strategy)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func testLLMConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Provider:       "databricks",
		EndpointURL:    endpoint,
		APIToken:       "test-token",
		MaxTokens:      1000,
		Temperature:    0.7,
		TimeoutSeconds: 5,
	}
}

func testExcuseRequest(t *testing.T) *domain.ExcuseRequest {
	t.Helper()
	req, err := domain.NewExcuseRequest("Running late", domain.ToneSincere, 3, "Alex", "Sam", "noon")
	require.NoError(t, err)
	return req
}

func TestNewGenerator(t *testing.T) {
	t.Run("nil_logger", func(t *testing.T) {
		gen, err := NewGenerator(nil, testLLMConfig("http://example.com"), nil)
		assert.Error(t, err)
		assert.Nil(t, gen)
	})

	t.Run("empty_endpoint", func(t *testing.T) {
		cfg := testLLMConfig("")
		gen, err := NewGenerator(testLogger(), cfg, nil)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.Nil(t, gen)
	})

	t.Run("missing_token_is_not_a_constructor_error", func(t *testing.T) {
		cfg := testLLMConfig("http://example.com")
		cfg.APIToken = ""
		gen, err := NewGenerator(testLogger(), cfg, nil)
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})
}

func TestGenerator_GenerateExcuse_Success(t *testing.T) {
	var gotAuth string
	var gotPayload chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"subject\":\"Re: Running late\",\"body\":\"Dear Alex,\\nSorry.\\nBest,\\nSam\"}"}}]}`))
	}))
	defer server.Close()

	observer := &recordingObserver{}
	gen, err := NewGenerator(testLogger(), testLLMConfig(server.URL), observer)
	require.NoError(t, err)

	result, err := gen.GenerateExcuse(context.Background(), testExcuseRequest(t))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Re: Running late", result.Subject)
	assert.Equal(t, "Dear Alex,\nSorry.\nBest,\nSam", result.Body)

	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, gotPayload.Messages, 1)
	assert.Equal(t, "user", gotPayload.Messages[0].Role)
	assert.Contains(t, gotPayload.Messages[0].Content, "Category: Running late")
	assert.Equal(t, 1000, gotPayload.MaxTokens)
	assert.InDelta(t, 0.7, gotPayload.Temperature, 0.0001)

	require.Len(t, observer.strategies, 1)
	assert.NotEmpty(t, observer.strategies[0])
}

func TestGenerator_GenerateExcuse_UnparseableResponseIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"I cannot help with that."}}]}`))
	}))
	defer server.Close()

	gen, err := NewGenerator(testLogger(), testLLMConfig(server.URL), nil)
	require.NoError(t, err)

	result, err := gen.GenerateExcuse(context.Background(), testExcuseRequest(t))

	require.NoError(t, err, "a well-formed call with garbage content is not a transport error")
	assert.False(t, result.Success)
	assert.Contains(t, result.Diagnostic, "could not extract email")
}

func TestGenerator_GenerateExcuse_MissingCredential(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := testLLMConfig(server.URL)
	cfg.APIToken = ""
	gen, err := NewGenerator(testLogger(), cfg, nil)
	require.NoError(t, err)

	_, err = gen.GenerateExcuse(context.Background(), testExcuseRequest(t))

	assert.ErrorIs(t, err, generation.ErrMissingCredential)
	assert.False(t, called, "no request should reach the endpoint without a credential")
}

func TestGenerator_GenerateExcuse_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model overloaded"))
	}))
	defer server.Close()

	gen, err := NewGenerator(testLogger(), testLLMConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = gen.GenerateExcuse(context.Background(), testExcuseRequest(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrUpstream)

	var upstream *generation.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	assert.Equal(t, "model overloaded", upstream.Body)
}

func TestGenerator_GenerateExcuse_UpstreamBodyExcerptBounded(t *testing.T) {
	longBody := bytes.Repeat([]byte("a"), 2048)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(longBody)
	}))
	defer server.Close()

	gen, err := NewGenerator(testLogger(), testLLMConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = gen.GenerateExcuse(context.Background(), testExcuseRequest(t))

	var upstream *generation.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Len(t, upstream.Body, upstreamBodyExcerpt)
}

func TestGenerator_GenerateExcuse_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels the request context; otherwise Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	gen, err := NewGenerator(testLogger(), testLLMConfig(server.URL), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = gen.GenerateExcuse(ctx, testExcuseRequest(t))

	assert.ErrorIs(t, err, generation.ErrUpstreamTimeout)
}

func TestGenerator_GenerateExcuse_ConnectionRefused(t *testing.T) {
	// Grab a port that is not listening.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	gen, err := NewGenerator(testLogger(), testLLMConfig(url), nil)
	require.NoError(t, err)

	_, err = gen.GenerateExcuse(context.Background(), testExcuseRequest(t))

	assert.ErrorIs(t, err, generation.ErrTransport)
}
