package boss

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"

	locators "auto_jobs_go/Locators"
)

const (
	homeURL            = "https://www.zhipin.com"
	loginURL           = "https://www.zhipin.com/web/user/?ka=header-login"
	recommendURL       = "https://www.zhipin.com/web/geek/job-recommend"
	postLoginIndicator = "/web/geek/"

	// 二维码渲染等待上限
	qrRenderTimeout = 20 * time.Second
	// 扫码确认轮询间隔与总窗口
	loginPollInterval = 3 * time.Second
	loginWindow       = 120 * time.Second
)

// loginState 登录状态机
type loginState int

const (
	stateUnauthenticated loginState = iota
	statePendingVerification
	stateAuthenticated
	stateFailed
)

func (s loginState) String() string {
	switch s {
	case stateUnauthenticated:
		return "未登录"
	case statePendingVerification:
		return "等待扫码确认"
	case stateAuthenticated:
		return "已登录"
	case stateFailed:
		return "登录失败"
	default:
		return "未知"
	}
}

func (b *Boss) setLoginState(s loginState) {
	if b.loginState != s {
		b.loginState = s
		log.Infof("登录状态: %s", s)
	}
}

// login 登录状态机：
// 未登录 → (cookie恢复成功) → 已登录
// 未登录 → 等待扫码确认 → 已登录 | 登录失败
func (b *Boss) login() error {
	b.setLoginState(stateUnauthenticated)

	if b.tryRestoreSession() {
		b.setLoginState(stateAuthenticated)
		return nil
	}

	if _, err := b.page.Goto(loginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		b.setLoginState(stateFailed)
		return fmt.Errorf("打开登录页失败: %w", err)
	}

	if _, err := b.page.WaitForSelector(locators.QR_CODE_IMAGE, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(qrRenderTimeout.Milliseconds())),
	}); err != nil {
		b.setLoginState(stateFailed)
		return fmt.Errorf("登录二维码未出现: %w", err)
	}

	b.setLoginState(statePendingVerification)
	log.Infof("请使用Boss直聘APP扫码登录，等待%s...", loginWindow)

	deadline := time.Now().Add(loginWindow)
	for time.Now().Before(deadline) {
		if b.isLoggedIn() {
			b.setLoginState(stateAuthenticated)
			if err := b.pm.SaveCookies(siteName); err != nil {
				log.Warnf("登录后保存cookie失败: %v", err)
			}
			log.Info("扫码登录成功！")
			return nil
		}
		time.Sleep(loginPollInterval)
	}

	b.setLoginState(stateFailed)
	return fmt.Errorf("扫码登录超时（%s内未确认）", loginWindow)
}

// tryRestoreSession 用已保存的cookie恢复会话
func (b *Boss) tryRestoreSession() bool {
	if err := b.pm.LoadCookies(siteName); err != nil {
		log.Infof("未能恢复会话: %v", err)
		return false
	}
	if _, err := b.page.Goto(recommendURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		log.Warnf("导航到推荐页失败: %v", err)
		return false
	}
	time.Sleep(time.Second)
	if b.isLoggedIn() {
		log.Info("cookie会话有效，跳过扫码登录")
		return true
	}
	return false
}

// isLoggedIn URL特征加页面元素双重判断
func (b *Boss) isLoggedIn() bool {
	u := b.page.URL()
	urlOK := strings.Contains(u, postLoginIndicator) && !strings.Contains(u, "login")
	if urlOK {
		for _, p := range []string{"/web/geek/job", "/web/geek/chat", "/web/geek/mine"} {
			if strings.Contains(u, p) {
				return true
			}
		}
	}

	avatar := b.page.Locator(locators.USER_AVATAR).First()
	visible, err := avatar.IsVisible()
	return err == nil && visible
}
