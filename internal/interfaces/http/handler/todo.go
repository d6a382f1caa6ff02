package handler

import (
	"github.com/gin-gonic/gin"

	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

// TodoHandler 待办事项处理器
type TodoHandler struct {
	repo repository.TodoRepository
}

// NewTodoHandler 创建待办事项处理器
func NewTodoHandler(repo repository.TodoRepository) *TodoHandler {
	return &TodoHandler{repo: repo}
}

// List 待办列表
// @Summary 待办列表
// @Description 默认隐藏已完成与已软删记录，可通过查询参数包含
// @Tags Todos
// @Produce json
// @Param include_completed query bool false "包含已完成"
// @Param include_deleted query bool false "包含已软删"
// @Success 200 {object} dto.Response[[]entity.Todo]
// @Router /api/v1/todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	filter := repository.TodoFilter{
		IncludeCompleted: boolQuery(c, "include_completed"),
		IncludeDeleted:   boolQuery(c, "include_deleted"),
	}

	todos, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list todos", err)
		dto.InternalError(c, "failed to list todos")
		return
	}
	dto.Success(c, todos)
}

// Create 创建待办
// @Summary 创建待办
// @Tags Todos
// @Accept json
// @Produce json
// @Success 201 {object} dto.Response[entity.Todo]
// @Router /api/v1/todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.TodoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	todo := req.ToEntity()
	todo.StampCreate(currentUserID(c))

	if err := h.repo.Create(c.Request.Context(), todo); err != nil {
		logger.Error(c.Request.Context(), "failed to create todo", err)
		dto.InternalError(c, "failed to create todo")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("todo", "create").Inc()
	dto.Created(c, todo)
}

// Get 按 id 获取待办，软删状态不影响可见性
// @Summary 获取待办
// @Tags Todos
// @Produce json
// @Success 200 {object} dto.Response[entity.Todo]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/todos/{id} [get]
func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get todo", err, "id", id)
		dto.InternalError(c, "failed to get todo")
		return
	}
	if todo == nil {
		dto.AppError(c, errors.ErrTodoNotFound)
		return
	}
	dto.Success(c, todo)
}

// Update 部分更新待办
// @Summary 部分更新待办
// @Description 仅修改请求体中出现的字段
// @Tags Todos
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[entity.Todo]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/todos/{id} [patch]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TodoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	todo, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get todo", err, "id", id)
		dto.InternalError(c, "failed to update todo")
		return
	}
	if todo == nil {
		dto.AppError(c, errors.ErrTodoNotFound)
		return
	}

	req.ApplyTo(todo)
	todo.StampUpdate(currentUserID(c))

	if err := h.repo.Update(c.Request.Context(), todo); err != nil {
		logger.Error(c.Request.Context(), "failed to update todo", err, "id", id)
		dto.InternalError(c, "failed to update todo")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("todo", "update").Inc()
	dto.Success(c, todo)
}

// Delete 删除待办
// @Summary 删除待办
// @Description 默认软删除并返回删除后的记录，hard_delete=true 物理删除
// @Tags Todos
// @Produce json
// @Param hard_delete query bool false "物理删除"
// @Success 200 {object} dto.Response[entity.Todo]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get todo", err, "id", id)
		dto.InternalError(c, "failed to delete todo")
		return
	}
	if todo == nil {
		dto.AppError(c, errors.ErrTodoNotFound)
		return
	}

	if boolQuery(c, "hard_delete") {
		if err := h.repo.HardDelete(c.Request.Context(), id); err != nil {
			logger.Error(c.Request.Context(), "failed to hard delete todo", err, "id", id)
			dto.InternalError(c, "failed to delete todo")
			return
		}
		metrics.EntityMutationsTotal.WithLabelValues("todo", "hard_delete").Inc()
		dto.Success(c, todo)
		return
	}

	// 重复软删除会重新盖章
	todo.StampDelete(currentUserID(c))
	if err := h.repo.Update(c.Request.Context(), todo); err != nil {
		logger.Error(c.Request.Context(), "failed to soft delete todo", err, "id", id)
		dto.InternalError(c, "failed to delete todo")
		return
	}

	metrics.EntityMutationsTotal.WithLabelValues("todo", "soft_delete").Inc()
	dto.Success(c, todo)
}
