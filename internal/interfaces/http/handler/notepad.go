package handler

import (
	"github.com/gin-gonic/gin"

	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

// NotepadHandler 记事本处理器
type NotepadHandler struct {
	repo repository.NotepadRepository
}

// NewNotepadHandler 创建记事本处理器
func NewNotepadHandler(repo repository.NotepadRepository) *NotepadHandler {
	return &NotepadHandler{repo: repo}
}

// List 记事列表，默认隐藏已软删记录
func (h *NotepadHandler) List(c *gin.Context) {
	filter := repository.NotepadFilter{
		IncludeDeleted: boolQuery(c, "include_deleted"),
	}

	notepads, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list notepads", err)
		dto.InternalError(c, "failed to list notepads")
		return
	}
	dto.Success(c, notepads)
}

// Create 创建记事
func (h *NotepadHandler) Create(c *gin.Context) {
	var req dto.NotepadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	notepad := req.ToEntity()
	notepad.StampCreate(currentUserID(c))

	if err := h.repo.Create(c.Request.Context(), notepad); err != nil {
		logger.Error(c.Request.Context(), "failed to create notepad", err)
		dto.InternalError(c, "failed to create notepad")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("notepad", "create").Inc()
	dto.Created(c, notepad)
}

// Get 按 id 获取记事，软删状态不影响可见性
func (h *NotepadHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	notepad, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get notepad", err, "id", id)
		dto.InternalError(c, "failed to get notepad")
		return
	}
	if notepad == nil {
		dto.AppError(c, errors.ErrNotepadNotFound)
		return
	}
	dto.Success(c, notepad)
}

// Update 部分更新记事
func (h *NotepadHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.NotepadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	notepad, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get notepad", err, "id", id)
		dto.InternalError(c, "failed to update notepad")
		return
	}
	if notepad == nil {
		dto.AppError(c, errors.ErrNotepadNotFound)
		return
	}

	req.ApplyTo(notepad)
	notepad.StampUpdate(currentUserID(c))

	if err := h.repo.Update(c.Request.Context(), notepad); err != nil {
		logger.Error(c.Request.Context(), "failed to update notepad", err, "id", id)
		dto.InternalError(c, "failed to update notepad")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("notepad", "update").Inc()
	dto.Success(c, notepad)
}

// Delete 删除记事，hard_delete=true 时物理删除
func (h *NotepadHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	notepad, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get notepad", err, "id", id)
		dto.InternalError(c, "failed to delete notepad")
		return
	}
	if notepad == nil {
		dto.AppError(c, errors.ErrNotepadNotFound)
		return
	}

	if boolQuery(c, "hard_delete") {
		if err := h.repo.HardDelete(c.Request.Context(), id); err != nil {
			logger.Error(c.Request.Context(), "failed to hard delete notepad", err, "id", id)
			dto.InternalError(c, "failed to delete notepad")
			return
		}
		metrics.EntityMutationsTotal.WithLabelValues("notepad", "hard_delete").Inc()
		dto.Success(c, notepad)
		return
	}

	notepad.StampDelete(currentUserID(c))
	if err := h.repo.Update(c.Request.Context(), notepad); err != nil {
		logger.Error(c.Request.Context(), "failed to soft delete notepad", err, "id", id)
		dto.InternalError(c, "failed to delete notepad")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("notepad", "soft_delete").Inc()
	dto.Success(c, notepad)
}
