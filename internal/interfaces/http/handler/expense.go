package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct {
	repo repository.ExpenseRepository
}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler(repo repository.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{repo: repo}
}

// List 支出列表
// from_date/to_date 按交易时间过滤，接受 RFC3339 或 2006-01-02
func (h *ExpenseHandler) List(c *gin.Context) {
	filter := repository.ExpenseFilter{
		IncludeDeleted: boolQuery(c, "include_deleted"),
	}

	if raw := c.Query("from_date"); raw != "" {
		t, ok := parseDate(raw)
		if !ok {
			dto.BadRequest(c, "invalid from_date")
			return
		}
		filter.FromDate = &t
	}
	if raw := c.Query("to_date"); raw != "" {
		t, ok := parseDate(raw)
		if !ok {
			dto.BadRequest(c, "invalid to_date")
			return
		}
		filter.ToDate = &t
	}

	expenses, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list expenses", err)
		dto.InternalError(c, "failed to list expenses")
		return
	}
	dto.Success(c, expenses)
}

// Create 创建支出记录
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.ExpenseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	expense := req.ToEntity()
	expense.StampCreate(currentUserID(c))

	if err := h.repo.Create(c.Request.Context(), expense); err != nil {
		logger.Error(c.Request.Context(), "failed to create expense", err)
		dto.InternalError(c, "failed to create expense")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("expense", "create").Inc()
	dto.Created(c, expense)
}

// Get 按 id 获取支出记录，软删状态不影响可见性
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get expense", err, "id", id)
		dto.InternalError(c, "failed to get expense")
		return
	}
	if expense == nil {
		dto.AppError(c, errors.ErrExpenseNotFound)
		return
	}
	dto.Success(c, expense)
}

// Update 更新支出记录，仅修改请求体中出现的字段
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	expense, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get expense", err, "id", id)
		dto.InternalError(c, "failed to update expense")
		return
	}
	if expense == nil {
		dto.AppError(c, errors.ErrExpenseNotFound)
		return
	}

	req.ApplyTo(expense)
	expense.StampUpdate(currentUserID(c))

	if err := h.repo.Update(c.Request.Context(), expense); err != nil {
		logger.Error(c.Request.Context(), "failed to update expense", err, "id", id)
		dto.InternalError(c, "failed to update expense")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("expense", "update").Inc()
	dto.Success(c, expense)
}

// Delete 删除支出记录，hard_delete=true 时物理删除
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get expense", err, "id", id)
		dto.InternalError(c, "failed to delete expense")
		return
	}
	if expense == nil {
		dto.AppError(c, errors.ErrExpenseNotFound)
		return
	}

	if boolQuery(c, "hard_delete") {
		if err := h.repo.HardDelete(c.Request.Context(), id); err != nil {
			logger.Error(c.Request.Context(), "failed to hard delete expense", err, "id", id)
			dto.InternalError(c, "failed to delete expense")
			return
		}
		metrics.EntityMutationsTotal.WithLabelValues("expense", "hard_delete").Inc()
		dto.Success(c, expense)
		return
	}

	expense.StampDelete(currentUserID(c))
	if err := h.repo.Update(c.Request.Context(), expense); err != nil {
		logger.Error(c.Request.Context(), "failed to soft delete expense", err, "id", id)
		dto.InternalError(c, "failed to delete expense")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("expense", "soft_delete").Inc()
	dto.Success(c, expense)
}

// parseDate 解析日期参数
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
