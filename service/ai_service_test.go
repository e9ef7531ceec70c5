package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_jobs_go/config"
)

func newTestAIService(baseURL string) *AIService {
	env := &config.EnvConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
	}
	return NewAIService(env, config.AIConfig{Introduce: "五年Go后端经验"})
}

func aiServerResponding(t *testing.T, content string, capture *aiRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		resp := map[string]interface{}{
			"id":    "chatcmpl-1",
			"model": "test-model",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateGreeting(t *testing.T) {
	var captured aiRequest
	srv := aiServerResponding(t, "您好，我有五年Go开发经验，期待沟通。", &captured)
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	greeting, ok := svc.GenerateGreeting("负责后端服务开发", "Golang工程师", "您好", "golang")

	require.True(t, ok)
	assert.Equal(t, "您好，我有五年Go开发经验，期待沟通。", greeting)
	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "Golang工程师")
	assert.Contains(t, captured.Messages[1].Content, "五年Go后端经验")
}

func TestGenerateGreetingFalseSentinel(t *testing.T) {
	for _, sentinel := range []string{"false", "FALSE", `"false"`, ""} {
		srv := aiServerResponding(t, sentinel, nil)

		svc := newTestAIService(srv.URL)
		greeting, ok := svc.GenerateGreeting("岗位描述", "岗位", "您好", "golang")

		assert.False(t, ok, "sentinel=%q", sentinel)
		assert.Empty(t, greeting)
		srv.Close()
	}
}

func TestGenerateGreetingTruncatesDescription(t *testing.T) {
	var captured aiRequest
	srv := aiServerResponding(t, "招呼语", &captured)
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	longDesc := strings.Repeat("岗", 3000)
	_, ok := svc.GenerateGreeting(longDesc, "岗位", "您好", "golang")

	require.True(t, ok)
	assert.LessOrEqual(t, strings.Count(captured.Messages[1].Content, "岗"), 1600)
}

func TestGenerateGreetingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	_, ok := svc.GenerateGreeting("描述", "岗位", "您好", "golang")
	assert.False(t, ok)
}

func TestGenerateGreetingMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	_, ok := svc.GenerateGreeting("描述", "岗位", "您好", "golang")
	assert.False(t, ok)
}

func TestGenerateGreetingUnconfigured(t *testing.T) {
	svc := NewAIService(&config.EnvConfig{}, config.AIConfig{})
	assert.False(t, svc.Configured())

	_, ok := svc.GenerateGreeting("描述", "岗位", "您好", "golang")
	assert.False(t, ok)
}

func TestBuildEndpoint(t *testing.T) {
	svc := newTestAIService("https://api.example.com/v1")
	assert.Equal(t, "https://api.example.com/v1/chat/completions", svc.buildEndpoint())

	svc = newTestAIService("https://api.example.com")
	assert.Equal(t, "https://api.example.com/v1/chat/completions", svc.buildEndpoint())
}
