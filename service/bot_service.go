package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"auto_jobs_go/config"
)

// BotService 运行结果通知服务。
// 所有通道都是尽力而为：发送失败只记日志，从不向上传播。
type BotService struct {
	cfg     config.BotConfig
	hookURL string
	barkURL string
	bot     *tgbotapi.BotAPI
	client  *http.Client
}

func NewBotService(cfg config.BotConfig, env *config.EnvConfig) *BotService {
	s := &BotService{
		cfg:     cfg,
		hookURL: env.HookURL,
		barkURL: env.BarkURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	if cfg.IsTelegramSend && env.TelegramToken != "" {
		bot, err := tgbotapi.NewBotAPI(env.TelegramToken)
		if err != nil {
			log.Errorf("初始化Telegram机器人失败: %v", err)
		} else {
			s.bot = bot
		}
	}
	return s
}

// Notify 向所有已启用的通道发送通知
func (s *BotService) Notify(title, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fullMessage := fmt.Sprintf("%s\n\n*Reported at: %s*", message, timestamp)

	log.Infof("通知: %s | %s", title, message)

	s.sendWeChat(title, fullMessage)
	s.sendBark(title, fullMessage)
	s.sendTelegram(title, fullMessage)
}

// 企业微信群机器人webhook，markdown格式
func (s *BotService) sendWeChat(title, message string) {
	if !s.cfg.IsSend || s.hookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"msgtype": "markdown",
		"markdown": map[string]string{
			"content": fmt.Sprintf("**%s**\n%s", title, message),
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("序列化微信通知失败: %v", err)
		return
	}

	resp, err := s.client.Post(s.hookURL, "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Errorf("发送微信通知失败: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Errorf("微信通知返回状态码: %d", resp.StatusCode)
		return
	}
	log.Infof("微信通知已发送: %s", title)
}

// Bark推送，标题和内容走URL路径
func (s *BotService) sendBark(title, message string) {
	if !s.cfg.IsBarkSend || s.barkURL == "" {
		return
	}

	barkAPI := fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(s.barkURL, "/"),
		url.PathEscape(title),
		url.PathEscape(message))

	resp, err := s.client.Get(barkAPI)
	if err != nil {
		log.Errorf("发送Bark通知失败: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Errorf("Bark通知返回状态码: %d", resp.StatusCode)
		return
	}
	log.Infof("Bark通知已发送: %s", title)
}

func (s *BotService) sendTelegram(title, message string) {
	if s.bot == nil {
		return
	}

	msg := tgbotapi.NewMessage(s.cfg.TelegramChatID,
		fmt.Sprintf("<b>%s</b>\n%s", title, message))
	msg.ParseMode = "HTML"
	if _, err := s.bot.Send(msg); err != nil {
		log.Errorf("发送Telegram通知失败: %v", err)
		return
	}
	log.Infof("Telegram通知已发送: %s", title)
}
