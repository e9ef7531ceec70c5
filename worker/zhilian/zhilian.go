package zhilian

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"auto_jobs_go/config"
	"auto_jobs_go/service"
	"auto_jobs_go/utils"
)

const (
	siteName = "zhilian"

	loginURL  = "https://passport.zhaopin.com/login"
	searchURL = "https://sou.zhaopin.com/?"
	maxPage   = 50
)

// deliveredJob 记录一条批量投递结果，用于任务结束后的汇总输出
type deliveredJob struct {
	JobName     string `json:"jobName"`
	Salary      string `json:"salary"`
	CompanyName string `json:"companyName"`
	CompanyTag  string `json:"companyTag"`
	JobInfo     string `json:"jobInfo"`
}

func (j deliveredJob) String() string {
	return fmt.Sprintf("【%s @ %s】薪资【%s】要求【%s】", j.JobName, j.CompanyName, j.Salary, j.JobInfo)
}

// ZhiLian 智联招聘投递worker。智联支持按页全选批量投递，
// 所以没有逐岗位的过滤和沟通流程，按页勾选后统一提交。
type ZhiLian struct {
	cfg       *config.ZhilianConfig
	bot       *service.BotService
	dataDir   string
	ctx       context.Context
	cancel    context.CancelFunc
	isLimit   bool
	delivered []deliveredJob
	startTime time.Time
}

func New(cfg *config.ZhilianConfig, bot *service.BotService, dataDir string) *ZhiLian {
	ctx, cancel := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", false),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		)...)

	ctx, cancel = chromedp.NewContext(ctx)
	return &ZhiLian{
		cfg:       cfg,
		bot:       bot,
		dataDir:   dataDir,
		ctx:       ctx,
		cancel:    cancel,
		delivered: make([]deliveredJob, 0),
		startTime: time.Now(),
	}
}

func (z *ZhiLian) Run() error {
	defer z.cancel()

	if err := z.login(); err != nil {
		return fmt.Errorf("智联登录失败: %w", err)
	}

	for _, keyword := range z.cfg.Keywords {
		if z.isLimit {
			break
		}
		if err := z.submitJobs(keyword); err != nil {
			log.Errorf("关键词【%s】投递失败: %v", keyword, err)
			continue
		}
	}

	z.report()
	return nil
}

func (z *ZhiLian) login() error {
	if err := chromedp.Run(z.ctx, chromedp.Navigate(loginURL)); err != nil {
		return err
	}

	// 先尝试用上次保存的cookie恢复会话
	if err := z.loadCookie(); err == nil {
		if err := chromedp.Run(z.ctx, chromedp.Reload()); err != nil {
			return err
		}
		time.Sleep(time.Second)
	}

	var currentURL string
	if err := chromedp.Run(z.ctx, chromedp.Location(&currentURL)); err != nil {
		return err
	}

	if !strings.Contains(currentURL, "i.zhaopin.com") {
		if err := z.scanLogin(); err != nil {
			return err
		}
	}
	return nil
}

func (z *ZhiLian) scanLogin() error {
	log.Info("等待扫码登录中...")
	err := chromedp.Run(z.ctx,
		chromedp.Click(`//div[@class='zppp-panel-normal-bar__img']`),
		chromedp.WaitVisible(`//div[@class='zp-main__personal']`),
	)
	if err != nil {
		return fmt.Errorf("扫码登录失败: %w", err)
	}

	log.Info("扫码登录成功！")
	return z.saveCookie()
}

func (z *ZhiLian) cookiePath() string {
	return filepath.Join(z.dataDir, siteName+"_cookies.json")
}

func (z *ZhiLian) loadCookie() error {
	data, err := os.ReadFile(z.cookiePath())
	if err != nil {
		return err
	}

	var cookies []*network.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return err
	}

	params := make([]*network.CookieParam, len(cookies))
	for i, c := range cookies {
		params[i] = &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
	}

	return chromedp.Run(z.ctx, network.SetCookies(params))
}

func (z *ZhiLian) saveCookie() error {
	var cookies []*network.Cookie
	if err := chromedp.Run(z.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().Do(ctx)
		if err != nil {
			return fmt.Errorf("获取cookie失败: %w", err)
		}
		return nil
	})); err != nil {
		return err
	}

	data, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("序列化cookie失败: %w", err)
	}

	if err := os.WriteFile(z.cookiePath(), data, 0644); err != nil {
		return fmt.Errorf("写入cookie文件失败: %w", err)
	}

	log.Info("Cookie保存成功！")
	return nil
}

func (z *ZhiLian) getSearchURL(keyword string, page int) string {
	query := utils.AppendParam("jl", z.cfg.CityCode) +
		utils.AppendParam("kw", keyword) +
		utils.AppendParam("sl", z.cfg.Salary) +
		utils.AppendParam("p", strconv.Itoa(page))
	return searchURL + strings.TrimPrefix(query, "&")
}

func (z *ZhiLian) submitJobs(keyword string) error {
	url := z.getSearchURL(keyword, 1)
	if err := chromedp.Run(z.ctx, chromedp.Navigate(url)); err != nil {
		return err
	}

	if err := chromedp.Run(z.ctx,
		chromedp.WaitVisible(`//div[contains(@class, 'joblist-box__item')]`),
	); err != nil {
		return err
	}

	for page := 1; page <= maxPage; page++ {
		if page != 1 {
			url = z.getSearchURL(keyword, page)
			if err := chromedp.Run(z.ctx, chromedp.Navigate(url)); err != nil {
				return err
			}
		}

		log.Infof("开始投递【%s】关键词，第【%d】页...", keyword, page)

		// 等待岗位列表加载，勾选全选后批量投递
		err := chromedp.Run(z.ctx,
			chromedp.WaitVisible(`//div[@class='positionlist']`),
			chromedp.Click(`//i[@class='betch__checkall__checkbox']`),
			chromedp.Click(`//button[@class='betch__button']`),
		)
		if err != nil {
			log.Errorf("第%d页操作失败: %v", page, err)
			continue
		}

		if z.checkIsLimit() {
			return nil
		}

		if err := z.handleDeliveryResult(); err != nil {
			log.Errorf("处理投递结果失败: %v", err)
		}
	}

	return nil
}

func (z *ZhiLian) checkIsLimit() bool {
	var text string
	err := chromedp.Run(z.ctx,
		chromedp.Text(`//div[@class='a-job-apply-workflow']`, &text),
	)
	if err == nil && strings.Contains(text, "达到上限") {
		log.Info("今日投递已达上限！")
		z.isLimit = true
		return true
	}
	return false
}

func (z *ZhiLian) handleDeliveryResult() error {
	var text string
	err := chromedp.Run(z.ctx,
		chromedp.Text(`//div[@class='deliver-dialog']`, &text),
	)
	if err == nil && strings.Contains(text, "申请成功") {
		log.Info("岗位申请成功！")
	}

	if err := chromedp.Run(z.ctx,
		chromedp.Click(`//img[@title='close-icon']`),
	); err != nil {
		if z.checkIsLimit() {
			return nil
		}
	}

	// 投递成功弹窗里还会带一批相似岗位推荐，顺手一起投了
	return z.handleRecommendJobs()
}

func (z *ZhiLian) handleRecommendJobs() error {
	var jobs []deliveredJob
	err := chromedp.Run(z.ctx,
		chromedp.Click(`//div[contains(@class, 'applied-select-all')]//input`),
		chromedp.Click(`//div[contains(@class, 'applied-select-all')]//button`),
		chromedp.Evaluate(`
			Array.from(document.querySelectorAll('.recommend-job')).map(j => ({
				jobName: j.querySelector('.recommend-job__position').textContent,
				salary: j.querySelector('.recommend-job__demand__salary').textContent,
				companyName: j.querySelector('.recommend-job__cname').textContent,
				companyTag: j.querySelector('.recommend-job__demand__cinfo').textContent.replace(/\n/g, ' '),
				jobInfo: j.querySelector('.recommend-job__demand__experience').textContent.replace(/\n/g, ' ') +
					'·' + j.querySelector('.recommend-job__demand__educational').textContent.replace(/\n/g, ' ')
			}))
		`, &jobs),
	)
	if err != nil {
		return fmt.Errorf("处理推荐岗位失败: %w", err)
	}

	for _, job := range jobs {
		log.Infof("投递【%s】公司【%s】岗位，薪资【%s】，要求【%s】，规模【%s】",
			job.CompanyName, job.JobName, job.Salary, job.JobInfo, job.CompanyTag)
		z.delivered = append(z.delivered, job)
	}

	return nil
}

func (z *ZhiLian) report() {
	duration := time.Since(z.startTime)
	if len(z.delivered) == 0 {
		log.Info("未投递新的岗位...")
	} else {
		log.Info("新投递公司如下:")
		for _, job := range z.delivered {
			log.Info(job)
		}
	}

	message := fmt.Sprintf("智联招聘投递完成，共投递%d个岗位，用时%s",
		len(z.delivered), duration.Round(time.Second))
	log.Info(message)

	if z.bot != nil {
		z.bot.Notify("智联投递汇总", message)
	}
}
