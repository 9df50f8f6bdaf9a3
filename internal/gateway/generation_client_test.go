package gateway

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

func TestGenerateSuccess(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt = body["prompt"]
		json.NewEncoder(w).Encode(map[string]string{"imageUrl": "https://img.example.com/out.png"})
	}))
	defer server.Close()

	client := NewGenerationClient(server.URL, 5*time.Second)
	imageURL, err := client.Generate(context.Background(), "a friendly dragon")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/out.png", imageURL)
	assert.Equal(t, "a friendly dragon", gotPrompt)
}

func TestGenerateNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewGenerationClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "a castle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGenerateMissingImageURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewGenerationClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "a castle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image URL")
}

func TestGenerateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewGenerationClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "a castle")
	require.Error(t, err)
}

func TestGenerateTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewGenerationClient(server.URL, 50*time.Millisecond)

	start := time.Now()
	_, err := client.Generate(context.Background(), "a castle")
	require.Error(t, err)
	// Fail fast, not hang: well under a second for a 50ms timeout.
	assert.Less(t, time.Since(start), time.Second)
}

func TestGenerateUnconfiguredURL(t *testing.T) {
	client := NewGenerationClient("", time.Second)
	_, err := client.Generate(context.Background(), "a castle")
	require.Error(t, err)
}
