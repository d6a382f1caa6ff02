package repository

import (
	"context"

	"github.com/google/uuid"

	"dashboard-api/internal/domain/entity"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.User], error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
