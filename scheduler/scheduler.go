package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler 周期性执行投递任务。intervalMinutes 为 0 时只跑一次。
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Run 先立即执行一次任务，再按间隔分钟数周期调度。
// 任务本身是长耗时的浏览器流程，cron 的默认行为是并发触发，
// 这里依靠间隔远大于单次耗时来避免重叠，不另加锁。
func (s *Scheduler) Run(intervalMinutes int, job func()) error {
	job()

	if intervalMinutes <= 0 {
		return nil
	}

	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("注册定时任务失败: %w", err)
	}

	log.Infof("定时任务已启动，每%d分钟执行一次", intervalMinutes)
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
