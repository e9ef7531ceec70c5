package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"auto_jobs_go/config"
	"auto_jobs_go/utils"
)

// 岗位描述传给AI前的截断长度
const maxJobDescChars = 1500

const systemPrompt = "You are a helpful assistant that crafts concise job application greetings. " +
	"If the job is not a match, respond with only the word 'false'."

// AIService 调用OpenAI兼容接口生成定制招呼语
type AIService struct {
	baseURL   string
	apiKey    string
	model     string
	introduce string
	prompt    string
	client    *http.Client
}

type aiRequest struct {
	Model       string      `json:"model"`
	Messages    []aiMessage `json:"messages"`
	MaxTokens   int         `json:"max_tokens"`
	Temperature float64     `json:"temperature"`
}

type aiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type aiResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func NewAIService(env *config.EnvConfig, aiCfg config.AIConfig) *AIService {
	return &AIService{
		baseURL:   strings.TrimSuffix(env.BaseURL, "/"),
		apiKey:    env.APIKey,
		model:     env.Model,
		introduce: aiCfg.Introduce,
		prompt:    aiCfg.Prompt,
		client: &http.Client{
			// AI服务可能很慢，上限45秒
			Timeout: 45 * time.Second,
		},
	}
}

// Configured 是否具备调用条件
func (s *AIService) Configured() bool {
	return s.baseURL != "" && s.apiKey != "" && s.model != ""
}

// GenerateGreeting 生成定制招呼语。
// 第二个返回值为false时表示AI未给出可用结果（未配置、明确不匹配、或调用失败），
// 调用方应回退到默认招呼语。
func (s *AIService) GenerateGreeting(jobDesc, jobName, reference, keyword string) (string, bool) {
	if !s.Configured() {
		log.Warn("AI服务未配置（缺少API key、base URL或model），使用默认招呼语")
		return "", false
	}

	if len([]rune(jobDesc)) > maxJobDescChars {
		jobDesc = string([]rune(jobDesc)[:maxJobDescChars])
	}

	payload := aiRequest{
		Model: s.model,
		Messages: []aiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: s.buildPrompt(keyword, jobName, jobDesc, reference)},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	}

	content, err := s.sendRequest(s.buildEndpoint(), payload)
	if err != nil {
		log.Errorf("AI请求失败: %v", err)
		return "", false
	}

	trimmed := strings.TrimSpace(content)
	switch strings.ToLower(trimmed) {
	case "", "false", `"false"`, `'false'`:
		log.Info("AI判定岗位不匹配或未返回内容")
		return "", false
	}
	return trimmed, true
}

func (s *AIService) sendRequest(endpoint string, payload aiRequest) (string, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("序列化请求数据失败: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("发送AI请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应体失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI服务返回错误状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var aiResp aiResponse
	if err := json.Unmarshal(body, &aiResp); err != nil {
		return "", fmt.Errorf("解析AI响应失败: %w", err)
	}

	log.Debugf("AI响应: id=%s, model=%s, totalTokens=%d",
		aiResp.ID, aiResp.Model, aiResp.Usage.TotalTokens)

	if len(aiResp.Choices) == 0 {
		return "", nil
	}
	return aiResp.Choices[0].Message.Content, nil
}

func (s *AIService) buildEndpoint() string {
	if strings.Contains(s.baseURL, "/v1") {
		return s.baseURL + "/chat/completions"
	}
	return s.baseURL + "/v1/chat/completions"
}

// buildPrompt 构建提示词，配置了模板则按模板填充
func (s *AIService) buildPrompt(keyword, jobName, jobDesc, reference string) string {
	introduce := utils.DefaultIfEmpty(s.introduce, "具备相关技能和经验")
	if s.prompt != "" && strings.Contains(s.prompt, "%s") {
		return fmt.Sprintf(s.prompt, introduce, keyword, jobName, jobDesc, reference)
	}
	return fmt.Sprintf(`请基于以下信息生成简洁友好的中文打招呼语，不超过60字：

个人介绍：%s
关键词：%s
职位名称：%s
职位描述：%s
参考语：%s

请生成专业、简洁的打招呼语，突出个人优势与职位匹配度。如果岗位明显不匹配，只回复false。`,
		introduce, keyword, jobName, jobDesc, reference)
}
