package boss

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"auto_jobs_go/config"
	"auto_jobs_go/model"
	"auto_jobs_go/repository"
	"auto_jobs_go/service"
	"auto_jobs_go/utils"
	"auto_jobs_go/worker/playwright_manager"
)

const siteName = "boss"

// Boss Boss直聘投递工作流
type Boss struct {
	cfg       *config.BossConfig
	pm        *playwright_manager.Manager
	page      playwright.Page
	blacklist *repository.BlacklistRepository
	ai        *service.AIService
	bot       *service.BotService
	// 可选的岗位归档，nil表示未开启数据库
	records repository.JobRecordRepository

	// 投递节奏上限，随机停顿之外的硬限速
	limiter *rate.Limiter
	dataDir string

	loginState loginState
	keyword    string
	startTime  time.Time
	applied    []*model.Job
}

func New(
	cfg *config.BossConfig,
	pm *playwright_manager.Manager,
	blacklist *repository.BlacklistRepository,
	ai *service.AIService,
	bot *service.BotService,
	records repository.JobRecordRepository,
	dataDir string,
) *Boss {
	return &Boss{
		cfg:       cfg,
		pm:        pm,
		blacklist: blacklist,
		ai:        ai,
		bot:       bot,
		records:   records,
		dataDir:   dataDir,
		limiter:   rate.NewLimiter(rate.Limit(float64(cfg.MaxApplyPerMinute)/60.0), 1),
	}
}

// Run 执行一轮投递：登录 → 城市×关键词搜索 → 过滤 → 投递 → 汇总通知。
// 整轮唯一的recover边界在这里：任何未预期错误截图、通知后进入清理。
func (b *Boss) Run() {
	b.startTime = time.Now()
	b.applied = nil
	b.page = b.pm.Page()

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("投递流程发生未预期错误: %v", r)
			b.pm.Screenshot(b.page, "boss_run_error")
			b.bot.Notify("Boss任务异常", fmt.Sprintf("%v", r))
		}
		b.shutdown()
	}()

	if err := b.login(); err != nil {
		log.Errorf("登录失败: %v", err)
		b.bot.Notify("Boss登录失败", err.Error())
		return
	}
	b.bot.Notify("Boss登录成功", "开始搜索岗位")

	for _, city := range b.cfg.CityCode {
		for _, kw := range b.cfg.Keywords {
			b.keyword = kw
			if err := b.searchAndProcess(city, kw); err != nil {
				log.Errorf("城市【%s】关键词【%s】处理失败: %v", city, kw, err)
			}
			utils.SleepRandom(3, 7)
		}
	}

	summary := &model.RunSummary{
		StartTime: b.startTime,
		EndTime:   time.Now(),
		Applied:   b.applied,
	}
	log.Infof("本轮投递结束，用时%s，投递%d个岗位",
		utils.FormatDuration(summary.StartTime, summary.EndTime), len(summary.Applied))
	b.bot.Notify("Boss投递汇总", summary.Message("Boss直聘"))
}

// shutdown 无论正常结束还是异常退出都要走的持久化路径
func (b *Boss) shutdown() {
	if err := b.pm.SaveCookies(siteName); err != nil {
		log.Errorf("保存cookie失败: %v", err)
	}
	if err := b.blacklist.Save(); err != nil {
		log.Errorf("保存黑名单失败: %v", err)
	}
}

// archive 岗位归档到数据库（未开启时为空操作）
func (b *Boss) archive(job *model.Job) {
	if b.records == nil {
		return
	}
	if !b.records.Exists(job.Href) {
		if err := b.records.Save(model.NewJobRecord(job)); err != nil {
			log.Errorf("保存岗位数据失败: %v", err)
		}
		return
	}
	if err := b.records.UpdateDeliveryStatus(job.Href, job.Status.String()); err != nil {
		log.Errorf("更新投递状态失败: %v", err)
	}
}
