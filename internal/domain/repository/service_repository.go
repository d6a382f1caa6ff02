package repository

import (
	"context"

	"dashboard-api/internal/domain/entity"
)

// ServiceFilter 服务凭据列表过滤条件
type ServiceFilter struct {
	IncludeDeleted bool
}

// ServiceRepository 服务凭据仓储接口
type ServiceRepository interface {
	List(ctx context.Context, filter ServiceFilter) ([]*entity.Service, error)
	Create(ctx context.Context, svc *entity.Service) error
	GetByID(ctx context.Context, id int64) (*entity.Service, error)
	Update(ctx context.Context, svc *entity.Service) error
	HardDelete(ctx context.Context, id int64) error
}
