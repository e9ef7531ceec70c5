package boss

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"

	locators "auto_jobs_go/Locators"
	"auto_jobs_go/model"
	"auto_jobs_go/utils"
)

// processJob 处理单个岗位：详情过滤加投递。
// 单岗位的任何失败都被隔离在这里，不会中断外层发现循环。
func (b *Boss) processJob(job *model.Job) {
	if err := b.limiter.Wait(context.Background()); err != nil {
		log.Warnf("限速等待中断: %v", err)
	}
	if err := b.applyJob(job); err != nil {
		log.Errorf("岗位【%s @ %s】处理失败: %v", job.JobName, job.CompanyName, err)
	}
}

// applyJob 投递状态机：详情页 → 过滤 → 打开沟通 → 招呼语 → (附件) → 发送。
// 详情在独立页面上操作，结束后关闭并把搜索页带回前台，保住滚动位置。
func (b *Boss) applyJob(job *model.Job) (err error) {
	log.Infof("处理岗位: %s @ %s", job.JobName, job.CompanyName)

	detailPage, err := b.pm.NewPage()
	if err != nil {
		job.MarkFailed(model.FailNavigation)
		return fmt.Errorf("打开详情页失败: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			job.MarkFailed(model.FailUnexpected)
			b.pm.Screenshot(detailPage, "boss_job_detail_err")
			err = fmt.Errorf("处理详情页时发生未预期错误: %v", r)
		}
		detailPage.Close()
		b.page.BringToFront()
		b.archive(job)
		utils.SleepRandom(1, 2)
	}()

	if _, err := detailPage.Goto(job.Href, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		job.MarkFailed(model.FailNavigation)
		return fmt.Errorf("导航到详情页失败: %w", err)
	}
	settle := b.cfg.WaitTime / 2
	if settle < 1 {
		settle = 2
	}
	time.Sleep(time.Duration(settle) * time.Second)

	b.fetchDetails(detailPage, job)

	if verdict := b.classifyDetail(job); !verdict.Accept {
		job.Status = model.StatusFiltered
		log.Infof("岗位被过滤【%s @ %s】: %s", job.JobName, job.CompanyName, verdict.Reason)
		return nil
	}

	if err := b.openChat(detailPage); err != nil {
		job.MarkFailed(model.FailNoChatButton)
		return err
	}

	greeting := b.greeting(job)
	if err := b.fillChatInput(detailPage, greeting); err != nil {
		job.MarkFailed(model.FailChatInput)
		return err
	}

	if b.cfg.SendImgResume {
		b.attachResume(detailPage)
	}

	if b.cfg.Debugger {
		log.Infof("调试模式，不实际发送。拟发送招呼语：%s", greeting)
	} else {
		if err := b.clickSend(detailPage); err != nil {
			job.MarkFailed(model.FailSendButton)
			return err
		}
	}

	job.Status = model.StatusApplied
	b.applied = append(b.applied, job)
	log.Infof("投递完成 | 公司：%s | 岗位：%s | 薪资：%s | 招呼语：%s",
		job.CompanyName, job.JobName, job.Salary, greeting)
	return nil
}

// fetchDetails 抓取详情页字段，缺失的元素按空值处理
func (b *Boss) fetchDetails(page playwright.Page, job *model.Job) {
	if salary := textOf(page, locators.JOB_DETAIL_SALARY); salary != "" {
		job.Salary = salary
	}
	if recruiter := textOf(page, locators.RECRUITER_INFO); recruiter != "" {
		// 首行是姓名，其余是职务等附加信息
		job.Recruiter = strings.TrimSpace(strings.SplitN(recruiter, "\n", 2)[0])
	}
	job.HRActiveTime = textOf(page, locators.HR_ACTIVE_TIME)
	job.JobInfo = textOf(page, locators.JOB_DESCRIPTION)
	job.DetailsFetched = true
}

// openChat 点击沟通入口
func (b *Boss) openChat(page playwright.Page) error {
	chatBtn := page.Locator(locators.CHAT_BUTTON).First()
	visible, err := chatBtn.IsVisible()
	if err != nil || !visible {
		return fmt.Errorf("未找到沟通入口")
	}
	if err := chatBtn.Click(); err != nil {
		return fmt.Errorf("点击沟通按钮失败: %w", err)
	}
	time.Sleep(1500 * time.Millisecond)
	return nil
}

// greeting 确定招呼语：启用AI时请求生成，未生成则用默认
func (b *Boss) greeting(job *model.Job) string {
	sayHi := b.cfg.SayHi
	if !b.cfg.EnableAI || b.ai == nil {
		return sayHi
	}
	generated, ok := b.ai.GenerateGreeting(job.JobInfo, job.JobName, sayHi, b.keyword)
	if !ok {
		log.Info("AI未生成招呼语，使用默认招呼语")
		return sayHi
	}
	log.Info("使用AI生成的招呼语")
	return generated
}

// fillChatInput 填写聊天输入框，兼容textarea和contenteditable两种形态
func (b *Boss) fillChatInput(page playwright.Page, message string) error {
	input := page.Locator(locators.CHAT_INPUT).First()

	for i := 0; i < 10; i++ {
		if visible, err := input.IsVisible(); err == nil && visible {
			break
		}
		time.Sleep(time.Second)
	}
	visible, err := input.IsVisible()
	if err != nil || !visible {
		return fmt.Errorf("聊天输入框未出现")
	}

	if err := input.Click(); err != nil {
		return fmt.Errorf("点击输入框失败: %w", err)
	}

	tagName, err := input.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return fmt.Errorf("获取输入框类型失败: %w", err)
	}

	if tagName == "textarea" {
		if err := input.Fill(message); err != nil {
			return fmt.Errorf("填写招呼语失败: %w", err)
		}
	} else {
		if _, err := input.Evaluate(`(el, msg) => {
            el.innerText = msg;
            el.dispatchEvent(new Event('input'));
        }`, message); err != nil {
			return fmt.Errorf("设置contenteditable内容失败: %w", err)
		}
	}
	return nil
}

// attachResume 附加图片简历，文件缺失或上传失败只记日志，不影响投递
func (b *Boss) attachResume(page playwright.Page) {
	path := filepath.Join(b.dataDir, b.cfg.ResumeFilename)
	if _, err := os.Stat(path); err != nil {
		log.Warnf("简历图片不存在，跳过发送: %s", path)
		return
	}

	input := page.Locator(locators.IMAGE_UPLOAD).First()
	count, err := page.Locator(locators.IMAGE_UPLOAD).Count()
	if err != nil || count == 0 {
		log.Warn("未找到图片上传入口，跳过发送简历图片")
		return
	}

	if err := input.SetInputFiles([]string{path}); err != nil {
		log.Errorf("上传简历图片失败: %v", err)
		b.pm.Screenshot(page, "boss_resume_error")
		return
	}

	settle := b.cfg.WaitTime / 2
	if settle < 2 {
		settle = 2
	}
	time.Sleep(time.Duration(settle) * time.Second)
	log.Infof("已附加简历图片: %s", b.cfg.ResumeFilename)
}

// clickSend 点击发送按钮并关闭可能弹出的对话框
func (b *Boss) clickSend(page playwright.Page) error {
	sendBtn := page.Locator(locators.SEND_BUTTON).First()
	count, err := page.Locator(locators.SEND_BUTTON).Count()
	if err != nil || count == 0 {
		return fmt.Errorf("未找到发送按钮")
	}
	if enabled, err := sendBtn.IsEnabled(); err != nil || !enabled {
		return fmt.Errorf("发送按钮不可用")
	}
	if err := sendBtn.Click(); err != nil {
		return fmt.Errorf("点击发送按钮失败: %w", err)
	}
	time.Sleep(time.Second)

	closeBtn := page.Locator(locators.DIALOG_CLOSE).First()
	if visible, err := closeBtn.IsVisible(); err == nil && visible {
		if err := closeBtn.Click(); err != nil {
			log.Debugf("关闭弹窗失败: %v", err)
		}
	}
	return nil
}

// textOf 读取元素文本，元素不存在返回空串
func textOf(page playwright.Page, selector string) string {
	loc := page.Locator(selector).First()
	count, err := page.Locator(selector).Count()
	if err != nil || count == 0 {
		return ""
	}
	text, err := loc.TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
