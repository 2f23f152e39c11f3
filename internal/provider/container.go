package provider

import (
	"github.com/campus-mall/internal/authz"
	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/queue"
	"github.com/campus-mall/internal/repository"
	"github.com/campus-mall/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Store       *cache.Store
	QueueClient *queue.Client
	Metrics     *metrics.Metrics

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	SessionRepo      repository.SessionRepository
	ProductRepo      repository.ProductRepository
	TagRepo          repository.TagRepository
	CartRepo         repository.CartRepository
	OrderRepo        repository.OrderRepository
	CommentRepo      repository.CommentRepository
	UserLoginLogRepo repository.UserLoginLogRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	SessionService      *service.SessionService
	CaptchaService      *service.CaptchaService
	UserLoginLogService *service.UserLoginLogService
	UserAuthService     *service.UserAuthService
	AdminAuthService    *service.AdminAuthService
	UserAdminService    *service.UserAdminService
	CatalogService      *service.CatalogService
	CartService         *service.CartService
	OrderService        *service.OrderService
	ProductService      *service.ProductService
	TagService          *service.TagService
	CommentService      *service.CommentService
	UploadService       *service.UploadService
	DashboardService    *service.DashboardService
}

// NewContainer 初始化容器，数据库、缓存、队列与指标由调用方创建后注入
func NewContainer(cfg *config.Config, db *gorm.DB, store *cache.Store, queueClient *queue.Client, m *metrics.Metrics) (*Container, error) {
	if m == nil {
		m = metrics.New()
	}
	c := &Container{
		Config:      cfg,
		DB:          db,
		Store:       store,
		QueueClient: queueClient,
		Metrics:     m,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := c.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.SessionRepo = repository.NewSessionRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	c.SessionService = service.NewSessionService(c.Config.Session, c.SessionRepo, c.Store)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.SessionService, c.CaptchaService, c.UserLoginLogService, c.Metrics)
	c.AdminAuthService = service.NewAdminAuthService(c.Config, c.AdminRepo, c.SessionService, c.AuthzService, c.Metrics)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo, c.SessionService)
	c.CatalogService = service.NewCatalogService(c.Config.Catalog, c.ProductRepo, c.TagRepo, c.Store, c.QueueClient)
	c.CartService = service.NewCartService(c.DB, c.CartRepo, c.ProductRepo, c.Metrics)
	c.OrderService = service.NewOrderService(c.DB, c.OrderRepo, c.CartRepo, c.CatalogService, c.QueueClient, c.Metrics)
	c.ProductService = service.NewProductService(c.ProductRepo, c.TagRepo)
	c.TagService = service.NewTagService(c.TagRepo, c.Store)
	c.CommentService = service.NewCommentService(c.Config.Catalog, c.CommentRepo, c.ProductRepo)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Store)
	return nil
}
