package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// DocumentRepository 文档元数据仓储实现
type DocumentRepository struct {
	client *Client
}

// NewDocumentRepository 创建文档仓储
func NewDocumentRepository(client *Client) *DocumentRepository {
	return &DocumentRepository{client: client}
}

// List 按过滤条件获取文档列表
func (r *DocumentRepository) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.List")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Document{})
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var docs []*entity.Document
	if err := query.Order("id ASC").Find(&docs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Create 创建文档记录
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(doc).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取文档记录
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.GetByID")
	defer span.End()

	var doc entity.Document
	if err := r.client.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// Update 保存文档记录
func (r *DocumentRepository) Update(ctx context.Context, doc *entity.Document) error {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.Update")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Save(doc).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

// HardDelete 物理删除文档记录
func (r *DocumentRepository) HardDelete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.HardDelete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Document{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to hard delete document: %w", err)
	}
	return nil
}
