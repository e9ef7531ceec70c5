package boss

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"

	locators "auto_jobs_go/Locators"
	"auto_jobs_go/config"
	"auto_jobs_go/model"
	"auto_jobs_go/utils"
)

const searchBaseURL = "https://www.zhipin.com/web/geek/job?"

// 连续几次翻页都没有新岗位就认为列表已耗尽
const stalePassLimit = 3

// stalePassTracker 滚动加载的终止判定：
// 一次迭代没有出现新卡片记一次空转，出现新卡片则清零
type stalePassTracker struct {
	stale int
	limit int
}

func newStalePassTracker(limit int) *stalePassTracker {
	return &stalePassTracker{limit: limit}
}

func (t *stalePassTracker) observe(newCards int) {
	if newCards == 0 {
		t.stale++
	} else {
		t.stale = 0
	}
}

func (t *stalePassTracker) exhausted() bool {
	return t.stale >= t.limit
}

// linkDeduper 判定一条岗位链接在本轮是否还值得处理：
// 本轮已见过或已进黑名单的链接跳过，接受的链接记入本轮已见集合
type linkDeduper struct {
	seen    map[string]struct{}
	visited func(string) bool
}

func newLinkDeduper(visited func(string) bool) *linkDeduper {
	return &linkDeduper{
		seen:    make(map[string]struct{}),
		visited: visited,
	}
}

func (d *linkDeduper) admit(link string) bool {
	if link == "" {
		return false
	}
	if _, dup := d.seen[link]; dup {
		return false
	}
	if d.visited != nil && d.visited(link) {
		return false
	}
	d.seen[link] = struct{}{}
	return true
}

// jobCard 搜索结果页一张岗位卡的字段
type jobCard struct {
	link        string
	jobName     string
	companyName string
	jobArea     string
	companyTag  string
}

// resolveCityCode 城市名转查询编码，自定义映射优先
func resolveCityCode(cfg *config.BossConfig, city string) string {
	if code, ok := cfg.CustomCityCode[city]; ok {
		return code
	}
	if code, ok := config.BossCityCodes[city]; ok {
		return code
	}
	return city
}

// buildSearchURL 构造搜索地址，操作人未配置（或配置为不限）的筛选项不带参数
func buildSearchURL(cfg *config.BossConfig, cityCode, keyword string) string {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("city", cityCode)

	if cfg.Salary != "" && cfg.Salary != config.UnlimitedOption {
		params.Set("salary", cfg.Salary)
	}
	if len(cfg.Experience) > 0 && !utils.ContainsString(cfg.Experience, config.UnlimitedOption) {
		params.Set("experience", strings.Join(cfg.Experience, ","))
	}
	if len(cfg.Degree) > 0 && !utils.ContainsString(cfg.Degree, config.UnlimitedOption) {
		params.Set("degree", strings.Join(cfg.Degree, ","))
	}

	return searchBaseURL + params.Encode()
}

// searchAndProcess 对一个（城市, 关键词）组合执行完整的发现-过滤-投递流程。
// 结果列表可能是无限滚动的，靠空转计数和“没有更多”标记终止。
func (b *Boss) searchAndProcess(city, keyword string) error {
	searchURL := buildSearchURL(b.cfg, resolveCityCode(b.cfg, city), keyword)
	log.Infof("搜索岗位: 城市【%s】关键词【%s】", city, keyword)

	if _, err := b.page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("导航到搜索页面失败: %w", err)
	}
	time.Sleep(time.Second)

	dedup := newLinkDeduper(b.blacklist.HasJob)
	tracker := newStalePassTracker(stalePassLimit)
	processed := 0

	for !tracker.exhausted() {
		cards, err := b.collectCards(dedup)
		if err != nil {
			log.Warnf("提取岗位卡片失败: %v", err)
		}
		tracker.observe(len(cards))

		for _, card := range cards {
			job := &model.Job{
				Href:        card.link,
				JobName:     card.jobName,
				CompanyName: card.companyName,
				JobArea:     card.jobArea,
				CompanyTag:  card.companyTag,
				SiteName:    siteName,
			}

			verdict := b.classifyCard(job, keyword)
			// 无论接受与否，链接进黑名单，后续运行不再考虑
			b.blacklist.AddJob(job.Href)
			if !verdict.Accept {
				log.Infof("跳过岗位【%s @ %s】: %s", job.JobName, job.CompanyName, verdict.Reason)
				continue
			}

			b.processJob(job)
			processed++
			utils.SleepRandom(b.cfg.WaitTime, b.cfg.WaitTime+2)
		}

		if b.noMoreResults() {
			log.Info("已到达结果列表末尾")
			break
		}
		b.scrollDown()

		settle := b.cfg.WaitTime
		if settle < 2 {
			settle = 2
		}
		time.Sleep(time.Duration(settle) * time.Second)
	}

	log.Infof("城市【%s】关键词【%s】处理完成，共处理岗位%d个", city, keyword, processed)
	return nil
}

// collectCards 抽取当前已渲染、本轮未见过、不在黑名单中的岗位卡
func (b *Boss) collectCards(dedup *linkDeduper) ([]jobCard, error) {
	elements, err := b.page.Locator(locators.JOB_CARD_BOX).All()
	if err != nil {
		return nil, fmt.Errorf("获取岗位卡片失败: %w", err)
	}

	var cards []jobCard
	for _, el := range elements {
		linkEl := el.Locator(locators.JOB_NAME_LINK).First()
		href, err := linkEl.GetAttribute("href")
		if err != nil || href == "" {
			continue
		}
		link := absoluteLink(href)
		if !dedup.admit(link) {
			continue
		}

		card := jobCard{link: link}
		if name, err := linkEl.TextContent(); err == nil {
			card.jobName = strings.TrimSpace(name)
		}
		if company, err := el.Locator(locators.COMPANY_NAME).First().TextContent(); err == nil {
			card.companyName = strings.TrimSpace(company)
		}
		if area, err := el.Locator(locators.JOB_AREA).First().TextContent(); err == nil {
			card.jobArea = strings.TrimSpace(area)
		}
		card.companyTag = b.collectTags(el)

		cards = append(cards, card)
	}
	return cards, nil
}

func (b *Boss) collectTags(card playwright.Locator) string {
	tagEls, err := card.Locator(locators.TAG_LIST).All()
	if err != nil {
		return ""
	}
	var tags []string
	for _, t := range tagEls {
		if text, err := t.TextContent(); err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}
	return strings.Join(tags, "·")
}

func (b *Boss) noMoreResults() bool {
	marker := b.page.Locator(locators.NO_MORE_RESULTS).First()
	visible, err := marker.IsVisible()
	return err == nil && visible
}

func (b *Boss) scrollDown() {
	if _, err := b.page.Evaluate("() => window.scrollBy(0, Math.floor(window.innerHeight * 1.5))"); err != nil {
		log.Warnf("滚动页面失败: %v", err)
	}
}

func absoluteLink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return homeURL + href
}
