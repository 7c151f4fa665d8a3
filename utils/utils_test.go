package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateETag(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a := GenerateETag("DON-1", at)
	assert.True(t, strings.HasPrefix(a, `"`))
	assert.True(t, strings.HasSuffix(a, `"`))

	assert.Equal(t, a, GenerateETag("DON-1", at), "same inputs, same tag")
	assert.NotEqual(t, a, GenerateETag("DON-2", at))
	assert.NotEqual(t, a, GenerateETag("DON-1", at.Add(time.Second)))
}

func TestImpactMessageFallbackWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	msg := ImpactMessage(context.Background(), 7)
	assert.Contains(t, msg, "7 trees")
}

func TestImpactMessageFromAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"You just made the world greener!"}]}}]}`))
	}))
	defer srv.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_URL", srv.URL)

	msg := ImpactMessage(context.Background(), 3)
	assert.Equal(t, "You just made the world greener!", msg)
}

func TestImpactMessageFallbackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_URL", srv.URL)

	msg := ImpactMessage(context.Background(), 12)
	assert.Contains(t, msg, "12 trees")
}

func TestExtractPublicID(t *testing.T) {
	id, err := extractPublicID("https://res.cloudinary.com/demo/image/upload/v1234567890/donation-proofs/abc123.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, "donation-proofs/abc123"))
}
