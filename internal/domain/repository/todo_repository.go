package repository

import (
	"context"

	"dashboard-api/internal/domain/entity"
)

// TodoFilter 待办列表过滤条件
type TodoFilter struct {
	// IncludeCompleted 为 false 时排除已完成条目
	IncludeCompleted bool
	// IncludeDeleted 为 false 时排除软删除条目
	IncludeDeleted bool
}

// TodoRepository 待办仓储接口
// GetByID 未命中时返回 (nil, nil)，由调用方转换为 NotFound
type TodoRepository interface {
	List(ctx context.Context, filter TodoFilter) ([]*entity.Todo, error)
	Create(ctx context.Context, todo *entity.Todo) error
	GetByID(ctx context.Context, id int64) (*entity.Todo, error)
	Update(ctx context.Context, todo *entity.Todo) error
	HardDelete(ctx context.Context, id int64) error
}
