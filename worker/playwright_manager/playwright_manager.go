package playwright_manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// Manager 浏览器自动化管理器。
// 浏览器上下文（cookie、页面）归本管理器独占，工作流按引用取用。
type Manager struct {
	playwright *playwright.Playwright
	browser    playwright.Browser
	context    playwright.BrowserContext
	page       playwright.Page

	dataDir  string
	headless bool
}

func NewManager(dataDir string, headless bool) *Manager {
	return &Manager{
		dataDir:  dataDir,
		headless: headless,
	}
}

// Init 初始化浏览器实例并打开主页面
func (m *Manager) Init() error {
	log.Info("初始化浏览器自动化引擎...")

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("启动Playwright失败: %w", err)
	}
	m.playwright = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.headless),
		Args: []string{
			"--start-maximized",
		},
	})
	if err != nil {
		return fmt.Errorf("启动浏览器失败: %w", err)
	}
	m.browser = browser

	context, err := browser.NewContext()
	if err != nil {
		return fmt.Errorf("创建浏览器上下文失败: %w", err)
	}
	m.context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("创建主页面失败: %w", err)
	}
	page.SetDefaultTimeout(30000)
	m.page = page

	log.Info("✓ 浏览器自动化引擎初始化完成")
	return nil
}

// Page 返回主页面（搜索页）
func (m *Manager) Page() playwright.Page {
	return m.page
}

// NewPage 打开一个新页面，用于岗位详情，用完由调用方关闭
func (m *Manager) NewPage() (playwright.Page, error) {
	if m.context == nil {
		return nil, fmt.Errorf("浏览器上下文未初始化")
	}
	return m.context.NewPage()
}

func (m *Manager) cookiePath(site string) string {
	return filepath.Join(m.dataDir, site+"_cookies.json")
}

// LoadCookies 从cookie文件恢复会话
func (m *Manager) LoadCookies(site string) error {
	data, err := os.ReadFile(m.cookiePath(site))
	if err != nil {
		return fmt.Errorf("读取%s cookie文件失败: %w", site, err)
	}

	var cookies []playwright.OptionalCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("解析%s cookie失败: %w", site, err)
	}
	if len(cookies) == 0 {
		return fmt.Errorf("%s cookie文件为空", site)
	}

	if err := m.context.AddCookies(cookies); err != nil {
		return fmt.Errorf("添加%s cookie到浏览器失败: %w", site, err)
	}
	log.Infof("已加载%s cookie，共%d条", site, len(cookies))
	return nil
}

// SaveCookies 将当前会话cookie落盘
func (m *Manager) SaveCookies(site string) error {
	if m.context == nil {
		return fmt.Errorf("浏览器上下文未初始化")
	}
	cookies, err := m.context.Cookies()
	if err != nil {
		return fmt.Errorf("获取%s cookie失败: %w", site, err)
	}
	data, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("序列化%s cookie失败: %w", site, err)
	}
	if err := os.WriteFile(m.cookiePath(site), data, 0o600); err != nil {
		return fmt.Errorf("写入%s cookie文件失败: %w", site, err)
	}
	log.Infof("已保存%s cookie，共%d条", site, len(cookies))
	return nil
}

// Screenshot 保存诊断截图，失败只记日志
func (m *Manager) Screenshot(page playwright.Page, name string) {
	if page == nil {
		return
	}
	dir := filepath.Join(m.dataDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Errorf("创建截图目录失败: %v", err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102_150405")))
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Errorf("保存截图失败: %v", err)
		return
	}
	log.Infof("诊断截图已保存: %s", path)
}

// Close 清理浏览器资源
func (m *Manager) Close() {
	if m.page != nil {
		m.page.Close()
	}
	if m.context != nil {
		m.context.Close()
	}
	if m.browser != nil {
		m.browser.Close()
	}
	if m.playwright != nil {
		m.playwright.Stop()
	}
	log.Info("浏览器资源已释放")
}
