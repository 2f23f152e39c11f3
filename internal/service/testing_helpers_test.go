package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/queue"
	"github.com/campus-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db       *gorm.DB
	cfg      *config.Config
	metrics  *metrics.Metrics
	sessions *SessionService
	userAuth *UserAuthService
	catalog  *CatalogService
	cart     *CartService
	orders   *OrderService
	comments *CommentService
	products *ProductService
	tags     *TagService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Unmarshal(v)
	if err != nil {
		t.Fatalf("load default config failed: %v", err)
	}

	store := cache.NewStore(&cfg.Redis)
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	m := metrics.New()

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	tagRepo := repository.NewTagRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	sessions := NewSessionService(cfg.Session, repository.NewSessionRepository(db), store)
	catalog := NewCatalogService(cfg.Catalog, productRepo, tagRepo, store, queueClient)
	return &serviceFixture{
		db:       db,
		cfg:      cfg,
		metrics:  m,
		sessions: sessions,
		userAuth: NewUserAuthService(cfg, userRepo, sessions, NewCaptchaService(cfg.Captcha), NewUserLoginLogService(repository.NewUserLoginLogRepository(db)), m),
		catalog:  catalog,
		cart:     NewCartService(db, cartRepo, productRepo, m),
		orders:   NewOrderService(db, orderRepo, cartRepo, catalog, queueClient, m),
		comments: NewCommentService(cfg.Catalog, commentRepo, productRepo),
		products: NewProductService(productRepo, tagRepo),
		tags:     NewTagService(tagRepo, store),
	}
}

func (f *serviceFixture) registerUser(t *testing.T, name, email, phone string) *models.User {
	t.Helper()
	user, err := f.userAuth.Register(context.Background(), RegisterInput{
		Name:       name,
		Email:      email,
		Phone:      phone,
		Password:   "secret123",
		RePassword: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", name, err)
	}
	return user
}

func (f *serviceFixture) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    models.MustMoney(price),
		Discount: models.MustMoney("10"),
		Stock:    100,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", name, err)
	}
	return product
}
