package router

import (
	"strings"

	"github.com/campus-mall/internal/config"
	adminhandlers "github.com/campus-mall/internal/http/handlers/admin"
	publichandlers "github.com/campus-mall/internal/http/handlers/public"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/provider"

	"github.com/gin-gonic/gin"
)

const defaultMetricsPath = "/metrics"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	RegisterValidators()
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := c.Store.Client()
	loginRule := RateLimitRule{
		Prefix:        c.Store.Key("rate:login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := loginRule
	adminLoginRule.Prefix = c.Store.Key("rate:admin_login")
	registerRule := loginRule
	registerRule.Prefix = c.Store.Key("rate:register")
	registerRule.MessageKey = "error.register_too_many"

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(MetricsMiddleware(c.Metrics))

	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)
	r.NoRoute(NotFoundHandler)

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = defaultMetricsPath
		}
		r.GET(path, gin.WrapH(c.Metrics.Handler()))
	}

	// 前台：所有页面先尝试解析会话，未登录按游客处理
	store := r.Group("")
	store.Use(UserSessionMiddleware(c.SessionService, cfg.Session.CookieName))
	{
		store.GET("/", publicHandler.Home)
		store.GET("/search/:page/", publicHandler.Search)
		store.GET("/detail/:id/", publicHandler.ProductDetail)
		store.GET("/detail_onsale/:id/", publicHandler.ProductDetailOnSale)
		store.GET("/detail/:id/comments/", publicHandler.ListComments)
		store.GET("/captcha/", publicHandler.GetImageCaptcha)

		store.GET("/login/", publicHandler.LoginPage)
		store.POST("/login/", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndField("name")), publicHandler.UserLogin)
		store.GET("/register/", publicHandler.RegisterPage)
		store.POST("/register/", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.UserRegister)
		store.GET("/logout/", publicHandler.UserLogout)

		// 购物车 POST 在处理器内判断登录，未登录仅返回提示
		store.GET("/cart/", publicHandler.GetCart)
		store.POST("/cart/", publicHandler.AddToCart)

		member := store.Group("")
		member.Use(RequireUserMiddleware())
		{
			member.GET("/user/", publicHandler.GetProfile)
			member.POST("/user/", publicHandler.UpdateProfile)
			member.POST("/user/password/", publicHandler.ChangePassword)
			member.GET("/user/login-logs/", publicHandler.GetMyLoginLogs)
			member.GET("/order/", publicHandler.Checkout)
			member.POST("/order/", publicHandler.Checkout)
			member.POST("/detail/:id/comments/", publicHandler.PostComment)
		}
	}

	// 后台
	admin := r.Group("/admin")
	{
		admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndField("login")), adminHandler.AdminLogin)
		admin.POST("/logout", adminHandler.AdminLogout)

		authorized := admin.Group("")
		authorized.Use(AdminSessionMiddleware(c.SessionService, cfg.Session.AdminCookieName))
		authorized.Use(AdminRBACMiddleware(c.AuthzService))
		{
			authorized.GET("/me", adminHandler.GetAdminProfile)
			authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)

			authorized.GET("/admins", adminHandler.ListAdmins)
			authorized.POST("/admins", adminHandler.CreateAdmin)
			authorized.DELETE("/admins/:id", adminHandler.DeleteAdmin)

			authorized.GET("/users", adminHandler.GetAdminUsers)
			authorized.GET("/users/:id", adminHandler.GetAdminUser)
			authorized.PUT("/users/:id", adminHandler.UpdateAdminUser)
			authorized.DELETE("/users/:id", adminHandler.DeleteAdminUser)
			authorized.GET("/login-logs", adminHandler.GetUserLoginLogs)

			authorized.GET("/products", adminHandler.GetAdminProducts)
			authorized.GET("/products/:id", adminHandler.GetAdminProduct)
			authorized.POST("/products", adminHandler.CreateProduct)
			authorized.PUT("/products/:id", adminHandler.UpdateProduct)
			authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
			authorized.POST("/upload", adminHandler.UploadFile)

			authorized.GET("/tags", adminHandler.GetAdminTags)
			authorized.POST("/tags", adminHandler.CreateTag)
			authorized.PUT("/tags/:id", adminHandler.UpdateTag)
			authorized.DELETE("/tags/:id", adminHandler.DeleteTag)

			authorized.GET("/orders", adminHandler.GetAdminOrders)
			authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
			authorized.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			authorized.GET("/comments", adminHandler.GetAdminComments)
			authorized.DELETE("/comments/:id", adminHandler.DeleteComment)
		}
	}

	return r
}
