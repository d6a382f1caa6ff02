// Package wire 提供依赖装配
//
// 依赖图很浅，直接手工装配，按数据层、应用层、接口层分段构建。
package wire

import (
	"context"
	"fmt"

	"dashboard-api/internal/application/chat"
	"dashboard-api/internal/application/llmcache"
	"dashboard-api/internal/config"
	"dashboard-api/internal/infrastructure/llm"
	"dashboard-api/internal/infrastructure/persistence/postgres"
	"dashboard-api/internal/infrastructure/persistence/redis"
	"dashboard-api/internal/infrastructure/storage"
	"dashboard-api/internal/interfaces/http/handler"
	"dashboard-api/internal/interfaces/http/router"
	"dashboard-api/pkg/logger"
)

// App 装配完成的应用
type App struct {
	Config *config.Config
	Router *router.Router

	PgClient    *postgres.Client
	RedisClient *redis.Client
	LlmCache    *llmcache.Cache
}

// InitializeApp 构建完整依赖图
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, error) {
	// 数据层
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}
	if err := pgClient.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	store, err := storage.NewLocalStore(&cfg.Storage.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	todoRepo := postgres.NewTodoRepository(pgClient)
	notepadRepo := postgres.NewNotepadRepository(pgClient)
	expenseRepo := postgres.NewExpenseRepository(pgClient)
	serviceRepo := postgres.NewServiceRepository(pgClient)
	documentRepo := postgres.NewDocumentRepository(pgClient)
	llmConfigRepo := postgres.NewLlmConfigRepository(pgClient)
	userRepo := postgres.NewUserRepository(pgClient)

	// 应用层
	factory := llm.NewFactory(cfg)
	cache := llmcache.NewCache(llmConfigRepo, factory.NewChatModel)
	if _, err := cache.Refresh(ctx); err != nil {
		// 启动时数据库可用但存在坏配置不应拦截启动
		logger.Warn(ctx, "initial llm cache refresh failed", "error", err)
	}

	relay := chat.NewRelay(cache, chat.NewSessionStore())

	// 接口层
	handlers := &router.Handlers{
		Todo:      handler.NewTodoHandler(todoRepo),
		Notepad:   handler.NewNotepadHandler(notepadRepo),
		Expense:   handler.NewExpenseHandler(expenseRepo),
		Service:   handler.NewServiceHandler(serviceRepo),
		LlmConfig: handler.NewLlmConfigHandler(llmConfigRepo, cache),
		Document:  handler.NewDocumentHandler(documentRepo, store),
		Chat:      handler.NewChatHandler(relay),
		Auth:      handler.NewAuthHandler(userRepo, cfg),
		Admin:     handler.NewAdminHandler(userRepo),
		Health:    handler.NewHealthHandler(pgClient, redisClient),
	}

	rateLimiter := redis.NewRateLimiter(redisClient)

	return &App{
		Config:      cfg,
		Router:      router.New(cfg, handlers, rateLimiter),
		PgClient:    pgClient,
		RedisClient: redisClient,
		LlmCache:    cache,
	}, nil
}

// Close 释放应用持有的连接
func (a *App) Close() error {
	var firstErr error
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.PgClient != nil {
		if err := a.PgClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
