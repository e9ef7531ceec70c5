package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_jobs_go/config"
)

func TestNotifyWeChatPayload(t *testing.T) {
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer srv.Close()

	svc := NewBotService(
		config.BotConfig{IsSend: true},
		&config.EnvConfig{HookURL: srv.URL},
	)
	svc.Notify("投递汇总", "共投递3个岗位")

	require.NotNil(t, payload)
	assert.Equal(t, "markdown", payload["msgtype"])

	markdown, ok := payload["markdown"].(map[string]interface{})
	require.True(t, ok)
	content, _ := markdown["content"].(string)
	assert.Contains(t, content, "投递汇总")
	assert.Contains(t, content, "共投递3个岗位")
	assert.Contains(t, content, "Reported at:")
}

func TestNotifyBarkEscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	svc := NewBotService(
		config.BotConfig{IsBarkSend: true},
		&config.EnvConfig{BarkURL: srv.URL},
	)
	svc.Notify("标题", "内容 带空格/斜杠")

	require.NotEmpty(t, gotPath)
	assert.Contains(t, gotPath, "标题")
	assert.Contains(t, gotPath, "内容 带空格")
}

func TestNotifyDisabledChannelsSendNothing(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	svc := NewBotService(
		config.BotConfig{},
		&config.EnvConfig{HookURL: srv.URL, BarkURL: srv.URL},
	)
	svc.Notify("标题", "内容")

	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestNotifySurvivesUnreachableEndpoint(t *testing.T) {
	svc := NewBotService(
		config.BotConfig{IsSend: true, IsBarkSend: true},
		&config.EnvConfig{
			HookURL: "http://127.0.0.1:1/hook",
			BarkURL: "http://127.0.0.1:1/bark",
		},
	)

	// 通道失败只记日志，调用不会panic也不会返回错误
	assert.NotPanics(t, func() {
		svc.Notify("标题", "内容")
	})
}
