package handler

import (
	"github.com/gin-gonic/gin"

	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

// ServiceHandler 服务凭据书签处理器
type ServiceHandler struct {
	repo repository.ServiceRepository
}

// NewServiceHandler 创建服务书签处理器
func NewServiceHandler(repo repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{repo: repo}
}

// List 服务书签列表，默认隐藏已软删记录
func (h *ServiceHandler) List(c *gin.Context) {
	filter := repository.ServiceFilter{
		IncludeDeleted: boolQuery(c, "include_deleted"),
	}

	services, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list services", err)
		dto.InternalError(c, "failed to list services")
		return
	}
	dto.Success(c, services)
}

// Create 创建服务书签
func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.ServiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	service := req.ToEntity()
	service.StampCreate(currentUserID(c))

	if err := h.repo.Create(c.Request.Context(), service); err != nil {
		logger.Error(c.Request.Context(), "failed to create service", err)
		dto.InternalError(c, "failed to create service")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("service", "create").Inc()
	dto.Created(c, service)
}

// Get 按 id 获取服务书签
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	service, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get service", err, "id", id)
		dto.InternalError(c, "failed to get service")
		return
	}
	if service == nil {
		dto.AppError(c, errors.ErrServiceNotFound)
		return
	}
	dto.Success(c, service)
}

// Update 部分更新服务书签
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.ServiceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	service, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get service", err, "id", id)
		dto.InternalError(c, "failed to update service")
		return
	}
	if service == nil {
		dto.AppError(c, errors.ErrServiceNotFound)
		return
	}

	req.ApplyTo(service)
	service.StampUpdate(currentUserID(c))

	if err := h.repo.Update(c.Request.Context(), service); err != nil {
		logger.Error(c.Request.Context(), "failed to update service", err, "id", id)
		dto.InternalError(c, "failed to update service")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("service", "update").Inc()
	dto.Success(c, service)
}

// Delete 删除服务书签，hard_delete=true 时物理删除
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	service, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get service", err, "id", id)
		dto.InternalError(c, "failed to delete service")
		return
	}
	if service == nil {
		dto.AppError(c, errors.ErrServiceNotFound)
		return
	}

	if boolQuery(c, "hard_delete") {
		if err := h.repo.HardDelete(c.Request.Context(), id); err != nil {
			logger.Error(c.Request.Context(), "failed to hard delete service", err, "id", id)
			dto.InternalError(c, "failed to delete service")
			return
		}
		metrics.EntityMutationsTotal.WithLabelValues("service", "hard_delete").Inc()
		dto.Success(c, service)
		return
	}

	service.StampDelete(currentUserID(c))
	if err := h.repo.Update(c.Request.Context(), service); err != nil {
		logger.Error(c.Request.Context(), "failed to soft delete service", err, "id", id)
		dto.InternalError(c, "failed to delete service")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("service", "soft_delete").Inc()
	dto.Success(c, service)
}
