package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"auto_jobs_go/config"
	"auto_jobs_go/model"
	"auto_jobs_go/repository"
	"auto_jobs_go/scheduler"
	"auto_jobs_go/service"
	"auto_jobs_go/utils"
	"auto_jobs_go/worker/boss"
	"auto_jobs_go/worker/playwright_manager"
	"auto_jobs_go/worker/zhilian"
)

type Application struct {
	cfg     *config.GlobalConfig
	env     *config.EnvConfig
	dataDir string

	db        *gorm.DB
	pm        *playwright_manager.Manager
	bot       *service.BotService
	ai        *service.AIService
	blacklist *repository.BlacklistRepository
	records   repository.JobRecordRepository
	sched     *scheduler.Scheduler
}

func NewApplication() *Application {
	return &Application{}
}

// InitDatabase 初始化岗位归档库，仅在配置启用时连接
func (app *Application) InitDatabase() error {
	if !app.cfg.DB.Enable {
		log.Info("岗位归档未启用，跳过数据库初始化")
		return nil
	}

	log.Info("初始化数据库连接...")
	db, err := gorm.Open(mysql.Open(app.cfg.DB.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取数据库连接失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&model.JobRecordEntity{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	app.db = db
	app.records = repository.NewJobRecordRepository(db)
	log.Info("✓ 数据库连接成功")
	return nil
}

// InitServices 初始化所有服务
func (app *Application) InitServices() error {
	log.Info("========================================")
	log.Info("   初始化应用程序服务")
	log.Info("========================================")

	dataDir, err := utils.DataDir()
	if err != nil {
		return fmt.Errorf("准备数据目录失败: %w", err)
	}
	app.dataDir = dataDir

	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	app.cfg = cfg
	app.env = config.LoadEnv(dataDir)

	if err := app.InitDatabase(); err != nil {
		return err
	}

	app.bot = service.NewBotService(cfg.Bot, app.env)
	app.ai = service.NewAIService(app.env, cfg.AI)

	app.blacklist = repository.NewBlacklistRepository(dataDir)
	if err := app.blacklist.Load(); err != nil {
		return fmt.Errorf("加载黑名单失败: %w", err)
	}
	companies, recruiters, jobs := app.blacklist.Counts()
	log.Infof("黑名单已加载：公司%d个，招聘者%d个，岗位%d个", companies, recruiters, jobs)

	app.sched = scheduler.New()

	log.Info("✓ 所有服务初始化完成")
	return nil
}

// Start 根据配置的平台启动对应的投递任务
func (app *Application) Start() error {
	log.Info("========================================")
	log.Info("   启动自动投递系统")
	log.Info("========================================")

	switch app.cfg.Platform {
	case config.PlatformBoss:
		return app.startBoss()
	case config.PlatformZhilian:
		return app.startZhilian()
	default:
		return fmt.Errorf("未知平台: %s", app.cfg.Platform)
	}
}

func (app *Application) startBoss() error {
	// 扫码登录需要可见的浏览器窗口
	app.pm = playwright_manager.NewManager(app.dataDir, false)
	if err := app.pm.Init(); err != nil {
		return fmt.Errorf("浏览器初始化失败: %w", err)
	}

	worker := boss.New(
		&app.cfg.Boss,
		app.pm,
		app.blacklist,
		app.ai,
		app.bot,
		app.records,
		app.dataDir,
	)

	return app.sched.Run(app.cfg.Boss.NextIntervalMinutes, worker.Run)
}

func (app *Application) startZhilian() error {
	worker := zhilian.New(&app.cfg.Zhilian, app.bot, app.dataDir)
	go func() {
		if err := worker.Run(); err != nil {
			log.Errorf("智联投递任务失败: %v", err)
		}
	}()
	return nil
}

// Stop 停止应用程序
func (app *Application) Stop() {
	log.Info("停止应用程序...")

	if app.sched != nil {
		app.sched.Stop()
	}

	if app.blacklist != nil {
		if err := app.blacklist.Save(); err != nil {
			log.Errorf("保存黑名单失败: %v", err)
		}
	}

	if app.pm != nil {
		log.Info("关闭浏览器...")
		app.pm.Close()
	}

	if app.db != nil {
		if sqlDB, err := app.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	log.Info("✓ 应用程序已安全停止")
}

// waitForShutdown 等待关闭信号后优雅退出，超时强制结束
func (app *Application) waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigChan
	log.Infof("接收到信号: %v，开始优雅关闭...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("✓ 应用程序优雅关闭完成")
	case <-ctx.Done():
		log.Warn("⚠️ 关闭超时，强制退出")
	}
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.Info("🚀 启动自动投递系统...")

	app := NewApplication()

	if err := app.InitServices(); err != nil {
		log.Fatalf("❌ 服务初始化失败: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("❌ 应用程序启动失败: %v", err)
	}

	// Boss单轮模式（未配置周期重跑）结束后直接清理退出，不等信号
	if app.cfg.Platform == config.PlatformBoss && app.cfg.Boss.NextIntervalMinutes <= 0 {
		app.Stop()
	} else {
		app.waitForShutdown()
	}

	log.Info("👋 应用程序已退出")
}
