package genai_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claynova-backend/internal/genai"
)

func geminiResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func TestGenerate_NoCredentialShortCircuits(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "", "gemini-1.5-flash")
	result := client.GenerateWithFallback([]byte("img"), "image/jpeg", 299, 399)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not configured")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no network I/O without a credential")
}

func TestGenerate_ParsesJSONEmbeddedInProse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiResponse("Sure! Here is your content:\n{\"title\": \"Coral Charm\", \"description\": \"A tiny reef on your keys.\", \"category\": \"sea\"}\nEnjoy!")))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "test-key", "gemini-1.5-flash")
	result := client.GenerateProductContent([]byte("img"), "image/jpeg", 299, 399)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "Coral Charm", result.Title)
	assert.Equal(t, "A tiny reef on your keys.", result.Description)
	assert.Equal(t, "sea", result.Category)
}

func TestGenerate_CoercesUnknownCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiResponse(`{"title": "Star Charm", "description": "Shiny.", "category": "galaxy"}`)))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "test-key", "gemini-1.5-flash")
	result := client.GenerateProductContent([]byte("img"), "image/jpeg", 299, 399)

	require.True(t, result.Success)
	assert.Equal(t, "kawaii", result.Category)
}

func TestGenerate_MissingRequiredKeyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiResponse(`{"title": "Star Charm", "category": "kawaii"}`)))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "test-key", "gemini-1.5-flash")
	result := client.GenerateProductContent([]byte("img"), "image/jpeg", 299, 399)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "parse")
}

func TestGenerate_NoJSONFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiResponse("I cannot describe this image.")))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "test-key", "gemini-1.5-flash")
	result := client.GenerateProductContent([]byte("img"), "image/jpeg", 299, 399)

	assert.False(t, result.Success)
}

func TestGenerateWithFallback_RetriesOnceWithSimplerPrompt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Write([]byte(geminiResponse("no json here")))
			return
		}
		w.Write([]byte(geminiResponse(`{"title": "Snow Pal", "description": "Cozy winter friend.", "category": "winter"}`)))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "test-key", "gemini-1.5-flash")
	result := client.GenerateWithFallback([]byte("img"), "image/jpeg", 299, 399)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "Snow Pal", result.Title)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGenerateWithFallback_RetryFillsMissingFields(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(geminiResponse(`{"title": "Wave Rider"}`)))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "test-key", "gemini-1.5-flash")
	result := client.GenerateWithFallback([]byte("img"), "image/jpeg", 299, 399)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "Wave Rider", result.Title)
	assert.Equal(t, genai.FallbackDescription, result.Description)
	assert.Equal(t, "kawaii", result.Category)
}

func TestGenerateWithFallback_BothAttemptsFailReturnsSecondFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(geminiResponse("still no json")))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL+"/", "test-key", "gemini-1.5-flash")
	result := client.GenerateWithFallback([]byte("img"), "image/jpeg", 299, 399)

	assert.False(t, result.Success)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "exactly one retry, no backoff loop")
	// The second attempt's diagnostic wins, not the first HTTP error.
	assert.Contains(t, result.Error, "parse")
	assert.Equal(t, "kawaii", result.Category)
}
