package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// 全局配置结构体
type GlobalConfig struct {
	// 本次运行的目标平台：boss 或 zhilian
	Platform string        `mapstructure:"platform" yaml:"platform"`
	Boss     BossConfig    `mapstructure:"boss" yaml:"boss"`
	Zhilian  ZhilianConfig `mapstructure:"zhilian" yaml:"zhilian"`
	AI       AIConfig      `mapstructure:"ai" yaml:"ai"`
	Bot      BotConfig     `mapstructure:"bot" yaml:"bot"`
	DB       DBConfig      `mapstructure:"db" yaml:"db"`
}

// AI 配置
type AIConfig struct {
	Introduce string `mapstructure:"introduce" yaml:"introduce"`
	Prompt    string `mapstructure:"prompt" yaml:"prompt"`
}

// Bot 通知配置
type BotConfig struct {
	IsSend         bool  `mapstructure:"is_send" yaml:"is_send"`
	IsBarkSend     bool  `mapstructure:"is_bark_send" yaml:"is_bark_send"`
	IsTelegramSend bool  `mapstructure:"is_telegram_send" yaml:"is_telegram_send"`
	TelegramChatID int64 `mapstructure:"telegram_chat_id" yaml:"telegram_chat_id"`
}

// DB 配置：开启后将抓取到的岗位数据归档到MySQL
type DBConfig struct {
	Enable bool   `mapstructure:"enable" yaml:"enable"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// 智联招聘配置
type ZhilianConfig struct {
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`
	CityCode string   `mapstructure:"city_code" yaml:"city_code"`
	Salary   string   `mapstructure:"salary" yaml:"salary"`
}

// 环境变量配置（密钥类配置不进配置文件，走 data/.env）
type EnvConfig struct {
	HookURL       string
	BarkURL       string
	BaseURL       string
	APIKey        string
	Model         string
	TelegramToken string
}

// Boss直聘城市编码，可被 custom_city_code 覆盖
var BossCityCodes = map[string]string{
	"全国": "100010000",
	"北京": "c101010100",
	"上海": "c101020100",
	"广州": "c101280100",
	"深圳": "c101280600",
	"杭州": "c101210100",
	"成都": "c101270100",
}

const UnlimitedOption = "不限"

const (
	PlatformBoss    = "boss"
	PlatformZhilian = "zhilian"
)

// InitConfig 初始化配置
// 配置文件不存在时先落一份默认模板再读取
func InitConfig() (*GlobalConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	// 布尔默认值无法在Unmarshal后区分“未配置”和“显式false”，放在viper层
	viper.SetDefault("boss.filter_dead_hr", true)
	viper.SetDefault("boss.send_img_resume", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if werr := writeDefaultConfig("./config/config.yaml"); werr != nil {
			return nil, fmt.Errorf("生成默认配置文件失败: %w", werr)
		}
		log.Warn("未找到配置文件，已生成默认模板 config/config.yaml，请按需修改")
		if rerr := viper.ReadInConfig(); rerr != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", rerr)
		}
	}

	var config GlobalConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyDefaults(&config)
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadEnv 读取 data/.env 及进程环境变量
func LoadEnv(dataDir string) *EnvConfig {
	envPath := filepath.Join(dataDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Debugf("未加载 %s: %v", envPath, err)
	}
	return &EnvConfig{
		HookURL:       os.Getenv("HOOK_URL"),
		BarkURL:       os.Getenv("BARK_URL"),
		BaseURL:       os.Getenv("BASE_URL"),
		APIKey:        os.Getenv("API_KEY"),
		Model:         os.Getenv("MODEL"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}
}

func applyDefaults(c *GlobalConfig) {
	if c.Platform == "" {
		c.Platform = PlatformBoss
	}
	c.Boss.applyDefaults()
}

func validate(c *GlobalConfig) error {
	switch c.Platform {
	case PlatformBoss, PlatformZhilian:
	default:
		return fmt.Errorf("不支持的平台: %s", c.Platform)
	}
	if n := len(c.Boss.ExpectedSalary); n > 2 {
		return fmt.Errorf("expected_salary 最多两个元素（下限、上限），当前%d个", n)
	}
	if c.DB.Enable && c.DB.DSN == "" {
		return fmt.Errorf("已开启数据库归档但未配置 dsn")
	}
	return nil
}

func writeDefaultConfig(path string) error {
	def := GlobalConfig{Platform: PlatformBoss}
	applyDefaults(&def)
	def.Boss.Keywords = []string{"Golang"}
	def.Boss.CityCode = []string{"上海"}
	def.Zhilian.Keywords = []string{"Golang"}
	def.Zhilian.CityCode = "538"

	data, err := yaml.Marshal(&def)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
