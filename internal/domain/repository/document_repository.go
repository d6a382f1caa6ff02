package repository

import (
	"context"

	"dashboard-api/internal/domain/entity"
)

// DocumentFilter 文档列表过滤条件
type DocumentFilter struct {
	IncludeDeleted bool
}

// DocumentRepository 文档元数据仓储接口
type DocumentRepository interface {
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	Update(ctx context.Context, doc *entity.Document) error
	HardDelete(ctx context.Context, id int64) error
}
