// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dashboard-api/internal/config"
	"dashboard-api/internal/interfaces/http/handler"
	"dashboard-api/internal/interfaces/http/middleware"
)

// Handlers 路由所需的处理器集合
type Handlers struct {
	Todo      *handler.TodoHandler
	Notepad   *handler.NotepadHandler
	Expense   *handler.ExpenseHandler
	Service   *handler.ServiceHandler
	LlmConfig *handler.LlmConfigHandler
	Document  *handler.DocumentHandler
	Chat      *handler.ChatHandler
	Auth      *handler.AuthHandler
	Admin     *handler.AdminHandler
	Health    *handler.HealthHandler
}

// Router HTTP 路由器
type Router struct {
	engine      *gin.Engine
	cfg         *config.Config
	handlers    *Handlers
	rateLimiter middleware.RateLimiter
}

// New 创建新的路由器
func New(cfg *config.Config, handlers *Handlers, rateLimiter middleware.RateLimiter) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:      gin.New(),
		cfg:         cfg,
		handlers:    handlers,
		rateLimiter: rateLimiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置全局中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.Auth(middleware.AuthConfig{
		Secret:    r.cfg.Security.JWT.Secret,
		Issuer:    r.cfg.Security.JWT.Issuer,
		SkipPaths: middleware.DefaultSkipPaths,
		Enabled:   r.cfg.Security.JWT.Enabled,
	}))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点
	r.engine.GET("/health/live", h.Health.Live)
	r.engine.GET("/health/ready", h.Health.Ready)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.engine.Group("/api/v1")

	// 认证
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// 待办
	todos := v1.Group("/todos")
	{
		todos.GET("", h.Todo.List)
		todos.POST("", h.Todo.Create)
		todos.GET("/:id", h.Todo.Get)
		todos.PATCH("/:id", h.Todo.Update)
		todos.DELETE("/:id", h.Todo.Delete)
	}

	// 记事
	notepads := v1.Group("/notepads")
	{
		notepads.GET("", h.Notepad.List)
		notepads.POST("", h.Notepad.Create)
		notepads.GET("/:id", h.Notepad.Get)
		notepads.PATCH("/:id", h.Notepad.Update)
		notepads.DELETE("/:id", h.Notepad.Delete)
	}

	// 支出
	expenses := v1.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	// 服务书签
	services := v1.Group("/services")
	{
		services.GET("", h.Service.List)
		services.POST("", h.Service.Create)
		services.GET("/:id", h.Service.Get)
		services.PATCH("/:id", h.Service.Update)
		services.DELETE("/:id", h.Service.Delete)
	}

	// LLM 配置
	llmConfigs := v1.Group("/llm-configs")
	{
		llmConfigs.GET("", h.LlmConfig.List)
		llmConfigs.POST("", h.LlmConfig.Create)
		llmConfigs.GET("/cached", h.LlmConfig.ListCached)
		llmConfigs.GET("/:id", h.LlmConfig.Get)
		llmConfigs.PATCH("/:id", h.LlmConfig.Update)
		llmConfigs.DELETE("/:id", h.LlmConfig.Delete)
	}

	// 聊天（带限流）
	chat := v1.Group("/chat")
	chat.Use(middleware.RateLimit(r.cfg.Security.RateLimit, r.rateLimiter, middleware.UserRateLimitKey))
	{
		chat.POST("/simple", h.Chat.Simple)
		chat.POST("/stream", h.Chat.Stream)
	}

	// 文档（upload 在认证跳过名单中）
	documents := v1.Group("/documents")
	{
		documents.GET("", h.Document.List)
		documents.POST("", h.Document.Create)
		documents.POST("/upload", h.Document.Upload)
		documents.GET("/:id", h.Document.Get)
		documents.PATCH("/:id", h.Document.Update)
		documents.GET("/:id/download", h.Document.Download)
		documents.DELETE("/:id", h.Document.Delete)
	}

	// 管理端
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", h.Admin.ListUsers)
	}
}
