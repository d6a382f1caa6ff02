package handler

import (
	"github.com/gin-gonic/gin"

	"dashboard-api/internal/config"
	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/utils"
)

// AuthHandler 注册与登录处理器
type AuthHandler struct {
	users repository.UserRepository
	jwt   *utils.JWTManager
	cfg   *config.JWTConfig
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(users repository.UserRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer),
		cfg:   &cfg.Security.JWT,
	}
}

// Register 注册新用户
// @Summary 注册新用户
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} dto.Response[dto.UserResponse]
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	exists, err := h.users.ExistsByEmail(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to check email", err)
		dto.InternalError(c, "failed to register")
		return
	}
	if exists {
		dto.AppError(c, errors.ErrConflict.WithDetail("email already registered"))
		return
	}

	user := entity.NewUser(req.Email, req.Name)
	if err := user.SetPassword(req.Password); err != nil {
		logger.Error(c.Request.Context(), "failed to hash password", err)
		dto.InternalError(c, "failed to register")
		return
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		logger.Error(c.Request.Context(), "failed to create user", err)
		dto.InternalError(c, "failed to register")
		return
	}

	dto.Created(c, dto.NewUserResponse(user))
}

// Login 登录并签发令牌
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.TokenResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get user", err)
		dto.InternalError(c, "failed to login")
		return
	}
	// 不区分用户不存在与密码错误
	if user == nil || !user.CheckPassword(req.Password) {
		dto.AppError(c, errors.ErrUnauthorized.WithDetail("invalid email or password"))
		return
	}
	if !user.IsActive {
		dto.AppError(c, errors.ErrForbidden.WithDetail("account disabled"))
		return
	}

	pair, err := h.jwt.GenerateTokenPair(
		user.ID.String(), user.Email, string(user.Role),
		h.cfg.Expiration, h.cfg.RefreshExpiration,
	)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to issue tokens", err)
		dto.InternalError(c, "failed to login")
		return
	}

	dto.Success(c, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.cfg.Expiration.Seconds()),
	})
}
