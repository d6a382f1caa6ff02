package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/logger"
)

// AdminHandler 管理端处理器
type AdminHandler struct {
	users repository.UserRepository
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(users repository.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers 分页列出全部用户，仅管理员可访问
// @Summary 用户列表
// @Tags Admin
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]dto.UserResponse]
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	pagination := repository.NewPagination(page, pageSize)

	result, err := h.users.List(c.Request.Context(), pagination)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list users", err)
		dto.InternalError(c, "failed to list users")
		return
	}

	users := make([]*dto.UserResponse, 0, len(result.Items))
	for _, u := range result.Items {
		users = append(users, dto.NewUserResponse(u))
	}

	dto.SuccessWithPage(c, users, dto.NewPageMeta(pagination.Page, pagination.PageSize, result.Total))
}
