package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// LlmConfigRepository LLM 配置仓储实现
type LlmConfigRepository struct {
	client *Client
}

// NewLlmConfigRepository 创建 LLM 配置仓储
func NewLlmConfigRepository(client *Client) *LlmConfigRepository {
	return &LlmConfigRepository{client: client}
}

// List 按过滤条件获取 LLM 配置列表
func (r *LlmConfigRepository) List(ctx context.Context, filter repository.LlmConfigFilter) ([]*entity.LlmConfig, error) {
	ctx, span := tracer.Start(ctx, "postgres.LlmConfigRepository.List")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.LlmConfig{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var configs []*entity.LlmConfig
	if err := query.Order("id ASC").Find(&configs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list llm configs: %w", err)
	}
	return configs, nil
}

// Create 创建 LLM 配置
func (r *LlmConfigRepository) Create(ctx context.Context, cfg *entity.LlmConfig) error {
	ctx, span := tracer.Start(ctx, "postgres.LlmConfigRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(cfg).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create llm config: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取 LLM 配置
func (r *LlmConfigRepository) GetByID(ctx context.Context, id int64) (*entity.LlmConfig, error) {
	ctx, span := tracer.Start(ctx, "postgres.LlmConfigRepository.GetByID")
	defer span.End()

	var cfg entity.LlmConfig
	if err := r.client.db.WithContext(ctx).First(&cfg, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get llm config: %w", err)
	}
	return &cfg, nil
}

// Update 保存 LLM 配置
func (r *LlmConfigRepository) Update(ctx context.Context, cfg *entity.LlmConfig) error {
	ctx, span := tracer.Start(ctx, "postgres.LlmConfigRepository.Update")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Save(cfg).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update llm config: %w", err)
	}
	return nil
}

// HardDelete 物理删除 LLM 配置
func (r *LlmConfigRepository) HardDelete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.LlmConfigRepository.HardDelete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.LlmConfig{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to hard delete llm config: %w", err)
	}
	return nil
}
