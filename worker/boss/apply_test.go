package boss

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_jobs_go/config"
	"auto_jobs_go/model"
	"auto_jobs_go/service"
)

func stubAIServer(t *testing.T, content string, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt64(calls, 1)
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func stubAIService(baseURL string) *service.AIService {
	env := &config.EnvConfig{BaseURL: baseURL, APIKey: "test-key", Model: "test-model"}
	return service.NewAIService(env, config.AIConfig{})
}

func TestGreetingDefaultWhenAIDisabled(t *testing.T) {
	b := newTestBoss(t)
	b.cfg.SayHi = "您好"
	b.cfg.EnableAI = false

	assert.Equal(t, "您好", b.greeting(&model.Job{JobInfo: "岗位描述"}))
}

func TestGreetingUsesAIResult(t *testing.T) {
	srv := stubAIServer(t, "AI生成的招呼语", nil)
	defer srv.Close()

	b := newTestBoss(t)
	b.cfg.SayHi = "您好"
	b.cfg.EnableAI = true
	b.ai = stubAIService(srv.URL)

	assert.Equal(t, "AI生成的招呼语", b.greeting(&model.Job{JobInfo: "岗位描述"}))
}

func TestGreetingFallsBackOnDecline(t *testing.T) {
	srv := stubAIServer(t, "false", nil)
	defer srv.Close()

	b := newTestBoss(t)
	b.cfg.SayHi = "您好"
	b.cfg.EnableAI = true
	b.ai = stubAIService(srv.URL)

	assert.Equal(t, "您好", b.greeting(&model.Job{JobInfo: "岗位描述"}))
}

func TestGreetingConsultsAIWithEmptyDescription(t *testing.T) {
	var calls int64
	srv := stubAIServer(t, "针对空描述的招呼语", &calls)
	defer srv.Close()

	b := newTestBoss(t)
	b.cfg.SayHi = "您好"
	b.cfg.EnableAI = true
	b.ai = stubAIService(srv.URL)

	// 详情页没抓到描述也照常请求AI，由AI决定是否给出招呼语
	greeting := b.greeting(&model.Job{JobName: "Golang开发", JobInfo: ""})
	require.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, "针对空描述的招呼语", greeting)
}
