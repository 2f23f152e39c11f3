package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/provider"
	"github.com/campus-mall/internal/queue"
	"github.com/campus-mall/internal/router"
	"github.com/campus-mall/internal/worker"

	"gorm.io/gorm"
)

const infraPingTimeout = 3 * time.Second

// Infra 进程级基础设施句柄，由 Run 统一创建与释放
type Infra struct {
	DB      *gorm.DB
	Store   *cache.Store
	Queue   *queue.Client
	Metrics *metrics.Metrics
}

// OpenInfra 打开数据库并完成迁移，创建缓存、队列客户端与指标注册表
func OpenInfra(cfg *config.Config) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := ensureSQLiteDir(cfg.Database); err != nil {
		return nil, err
	}
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, logger.NewGormLogger(cfg.Server.Mode))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	store := cache.NewStore(&cfg.Redis)
	if store.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), infraPingTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Warnw("redis_ping_failed", "error", err)
		}
	}
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("create queue client: %w", err)
	}
	return &Infra{
		DB:      db,
		Store:   store,
		Queue:   queueClient,
		Metrics: metrics.New(),
	}, nil
}

// Close 释放基础设施
func (i *Infra) Close() {
	if i == nil {
		return
	}
	if err := i.Queue.Close(); err != nil {
		logger.Warnw("queue_client_close_failed", "error", err)
	}
	if err := i.Store.Close(); err != nil {
		logger.Warnw("redis_close_failed", "error", err)
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// ensureDefaultAdmin 首次启动时创建默认管理员并授予后台角色
func ensureDefaultAdmin(cfg *config.Config, c *provider.Container) error {
	if cfg.Server.Mode == "release" && cfg.Admin.DefaultPassword == "" {
		logger.Warnw("default_admin_skipped", "reason", "default_password_not_set")
		return nil
	}
	admin, err := models.InitDefaultAdmin(c.DB, cfg.Admin.DefaultLogin, cfg.Admin.DefaultPassword)
	if err != nil {
		return fmt.Errorf("init default admin: %w", err)
	}
	if admin == nil {
		return nil
	}
	return c.AuthzService.BindOperator(admin.ID)
}

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, c *provider.Container, mode string) (*Runner, error) {
	if cfg == nil || c == nil {
		return nil, errors.New("config or container is nil")
	}

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, c)
		services = append(services, NewHTTPService(cfg.Server.Addr(), engine))
	}

	// 队列未启用时 all 模式只跑 HTTP，浏览量与销量改为同步写入
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(c.CatalogService, c.SessionService, c.Metrics)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no services initialized for mode %q", mode)
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if !isValidMode(opts.Mode) {
		return fmt.Errorf("unknown mode %q", opts.Mode)
	}

	infra, err := OpenInfra(opts.Config)
	if err != nil {
		return err
	}
	defer infra.Close()

	container, err := provider.NewContainer(opts.Config, infra.DB, infra.Store, infra.Queue, infra.Metrics)
	if err != nil {
		return err
	}
	if err := ensureDefaultAdmin(opts.Config, container); err != nil {
		opts.Logger.Warnw("default_admin_init_failed", "error", err)
	}

	runner, err := BuildRunner(opts.Config, container, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}

func ensureSQLiteDir(cfg config.DatabaseConfig) error {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver != "" && driver != "sqlite" {
		return nil
	}
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
