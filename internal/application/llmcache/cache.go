// Package llmcache 维护 LLM 配置与已构建模型实例的进程内缓存
package llmcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

var tracer = otel.Tracer("llmcache")

// FactoryFunc 按配置行构建聊天模型实例
type FactoryFunc func(ctx context.Context, cfg *entity.LlmConfig) (model.BaseChatModel, error)

// Cache LLM 实例缓存
//
// 两张映射（配置、实例）都以配置 id 为键，只对激活且未删除的
// 配置构建实例。Refresh 在写锁内整体换新映射，读方要么看到旧
// 快照要么看到新快照。
type Cache struct {
	repo    repository.LlmConfigRepository
	factory FactoryFunc

	mu        sync.RWMutex
	configs   map[int64]*entity.LlmConfig
	instances map[int64]model.BaseChatModel

	refreshGroup singleflight.Group
}

// NewCache 创建缓存，初始为空，需显式 Refresh 装载
func NewCache(repo repository.LlmConfigRepository, factory FactoryFunc) *Cache {
	return &Cache{
		repo:      repo,
		factory:   factory,
		configs:   make(map[int64]*entity.LlmConfig),
		instances: make(map[int64]model.BaseChatModel),
	}
}

// Refresh 全量重载缓存
//
// 装载所有未软删的配置行（含未激活，供状态判定），只为激活行构建
// 实例。查询失败时保留上一份快照并返回错误；单条配置构建失败只
// 记录日志并跳过该条。返回装载的激活配置数。
//
// 先 Forget 再 Do：调用方（尤其是刚提交写入的控制器）发起的装载
// 一定始于调用之后，不会并入一次早于写入开始的装载；迟到的并发
// 调用仍会并入最近一次发起的装载。
func (c *Cache) Refresh(ctx context.Context) (int, error) {
	c.refreshGroup.Forget("refresh")
	v, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (c *Cache) refresh(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "llmcache.Cache.Refresh")
	defer span.End()

	rows, err := c.repo.List(ctx, repository.LlmConfigFilter{})
	if err != nil {
		span.RecordError(err)
		metrics.LLMCacheRefreshTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("failed to load llm configs: %w", err)
	}

	configs := make(map[int64]*entity.LlmConfig, len(rows))
	instances := make(map[int64]model.BaseChatModel, len(rows))

	loaded := 0
	for _, row := range rows {
		configs[row.ID] = row
		if !row.IsActive {
			continue
		}
		loaded++

		instance, err := c.factory(ctx, row)
		if err != nil {
			logger.Warn(ctx, "skipping llm config: instance construction failed",
				"llm_id", row.ID,
				"provider", row.Provider,
				"model_name", row.ModelName,
				"error", err,
			)
			continue
		}
		instances[row.ID] = instance
	}

	c.mu.Lock()
	c.configs = configs
	c.instances = instances
	c.mu.Unlock()

	span.SetAttributes(
		attribute.Int("llmcache.configs", len(configs)),
		attribute.Int("llmcache.instances", len(instances)),
	)
	metrics.LLMCacheRefreshTotal.WithLabelValues("success").Inc()
	metrics.LLMCacheSize.Set(float64(len(configs)))
	metrics.LLMCacheInstances.Set(float64(len(instances)))

	logger.Info(ctx, "llm cache refreshed",
		"configs", len(configs),
		"active", loaded,
		"instances", len(instances),
	)
	return loaded, nil
}

// GetActiveConfigs 返回缓存中激活配置的快照副本
func (c *Cache) GetActiveConfigs() []*entity.LlmConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*entity.LlmConfig, 0, len(c.configs))
	for _, cfg := range c.configs {
		if cfg.IsActive {
			out = append(out, cfg)
		}
	}
	return out
}

// GetConfig 按 id 取缓存的配置
func (c *Cache) GetConfig(id int64) (*entity.LlmConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cfg, ok := c.configs[id]
	return cfg, ok
}

// GetInstance 按 id 取已构建的模型实例
func (c *Cache) GetInstance(id int64) (model.BaseChatModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	instance, ok := c.instances[id]
	return instance, ok
}

// Invalidate 移除单个条目，不触发重载
func (c *Cache) Invalidate(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.configs, id)
	delete(c.instances, id)
	metrics.LLMCacheSize.Set(float64(len(c.configs)))
	metrics.LLMCacheInstances.Set(float64(len(c.instances)))
}

// InvalidateAll 清空两张映射，不触发重载
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.configs = make(map[int64]*entity.LlmConfig)
	c.instances = make(map[int64]model.BaseChatModel)
	metrics.LLMCacheSize.Set(0)
	metrics.LLMCacheInstances.Set(0)
}
