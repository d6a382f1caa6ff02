package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dashboard-api/internal/application/llmcache"
	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

// LlmConfigHandler LLM 配置处理器
//
// 配置的每次写入都触发缓存全量刷新：写入已提交，刷新失败时
// 直接把刷新错误返回给调用方，不回滚写入。
type LlmConfigHandler struct {
	repo  repository.LlmConfigRepository
	cache *llmcache.Cache
}

// NewLlmConfigHandler 创建 LLM 配置处理器
func NewLlmConfigHandler(repo repository.LlmConfigRepository, cache *llmcache.Cache) *LlmConfigHandler {
	return &LlmConfigHandler{repo: repo, cache: cache}
}

// List 配置列表
// is_active 非空时按激活状态过滤
func (h *LlmConfigHandler) List(c *gin.Context) {
	filter := repository.LlmConfigFilter{
		IncludeDeleted: boolQuery(c, "include_deleted"),
	}

	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			dto.BadRequest(c, "invalid is_active")
			return
		}
		filter.IsActive = &v
	}

	configs, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list llm configs", err)
		dto.InternalError(c, "failed to list llm configs")
		return
	}
	dto.Success(c, configs)
}

// ListCached 返回缓存中的激活配置快照，不访问数据库
func (h *LlmConfigHandler) ListCached(c *gin.Context) {
	dto.Success(c, h.cache.GetActiveConfigs())
}

// Create 创建配置并刷新缓存
func (h *LlmConfigHandler) Create(c *gin.Context) {
	var req dto.LlmConfigCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	cfg := req.ToEntity()
	cfg.StampCreate(currentUserID(c))

	if err := h.repo.Create(c.Request.Context(), cfg); err != nil {
		logger.Error(c.Request.Context(), "failed to create llm config", err)
		dto.InternalError(c, "failed to create llm config")
		return
	}
	metrics.EntityMutationsTotal.WithLabelValues("llm_config", "create").Inc()

	if _, err := h.cache.Refresh(c.Request.Context()); err != nil {
		logger.Error(c.Request.Context(), "cache refresh after create failed", err, "id", cfg.ID)
		dto.AppError(c, errors.ErrCacheRefreshFail.WithError(err))
		return
	}

	dto.Created(c, cfg)
}

// Get 按 id 获取配置，软删状态不影响可见性
func (h *LlmConfigHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cfg, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get llm config", err, "id", id)
		dto.InternalError(c, "failed to get llm config")
		return
	}
	if cfg == nil {
		dto.AppError(c, errors.ErrLlmConfigNotFound)
		return
	}
	dto.Success(c, cfg)
}

// Update 部分更新配置并刷新缓存
func (h *LlmConfigHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.LlmConfigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get llm config", err, "id", id)
		dto.InternalError(c, "failed to update llm config")
		return
	}
	if cfg == nil {
		dto.AppError(c, errors.ErrLlmConfigNotFound)
		return
	}

	req.ApplyTo(cfg)
	cfg.StampUpdate(currentUserID(c))

	if err := h.repo.Update(c.Request.Context(), cfg); err != nil {
		logger.Error(c.Request.Context(), "failed to update llm config", err, "id", id)
		dto.InternalError(c, "failed to update llm config")
		return
	}
	metrics.EntityMutationsTotal.WithLabelValues("llm_config", "update").Inc()

	if _, err := h.cache.Refresh(c.Request.Context()); err != nil {
		logger.Error(c.Request.Context(), "cache refresh after update failed", err, "id", id)
		dto.AppError(c, errors.ErrCacheRefreshFail.WithError(err))
		return
	}

	dto.Success(c, cfg)
}

// Delete 删除配置并刷新缓存，hard_delete=true 时物理删除
func (h *LlmConfigHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cfg, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get llm config", err, "id", id)
		dto.InternalError(c, "failed to delete llm config")
		return
	}
	if cfg == nil {
		dto.AppError(c, errors.ErrLlmConfigNotFound)
		return
	}

	if boolQuery(c, "hard_delete") {
		if err := h.repo.HardDelete(c.Request.Context(), id); err != nil {
			logger.Error(c.Request.Context(), "failed to hard delete llm config", err, "id", id)
			dto.InternalError(c, "failed to delete llm config")
			return
		}
		metrics.EntityMutationsTotal.WithLabelValues("llm_config", "hard_delete").Inc()
	} else {
		cfg.StampDelete(currentUserID(c))
		if err := h.repo.Update(c.Request.Context(), cfg); err != nil {
			logger.Error(c.Request.Context(), "failed to soft delete llm config", err, "id", id)
			dto.InternalError(c, "failed to delete llm config")
			return
		}
		metrics.EntityMutationsTotal.WithLabelValues("llm_config", "soft_delete").Inc()
	}

	if _, err := h.cache.Refresh(c.Request.Context()); err != nil {
		logger.Error(c.Request.Context(), "cache refresh after delete failed", err, "id", id)
		dto.AppError(c, errors.ErrCacheRefreshFail.WithError(err))
		return
	}

	dto.Success(c, cfg)
}
