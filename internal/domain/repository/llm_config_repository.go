package repository

import (
	"context"

	"dashboard-api/internal/domain/entity"
)

// LlmConfigFilter LLM 配置列表过滤条件
type LlmConfigFilter struct {
	// IsActive 非空时按激活状态过滤
	IsActive       *bool
	IncludeDeleted bool
}

// LlmConfigRepository LLM 配置仓储接口
type LlmConfigRepository interface {
	List(ctx context.Context, filter LlmConfigFilter) ([]*entity.LlmConfig, error)
	Create(ctx context.Context, cfg *entity.LlmConfig) error
	GetByID(ctx context.Context, id int64) (*entity.LlmConfig, error)
	Update(ctx context.Context, cfg *entity.LlmConfig) error
	HardDelete(ctx context.Context, id int64) error
}
