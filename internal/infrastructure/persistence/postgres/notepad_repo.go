package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// NotepadRepository 记事本仓储实现
type NotepadRepository struct {
	client *Client
}

// NewNotepadRepository 创建记事本仓储
func NewNotepadRepository(client *Client) *NotepadRepository {
	return &NotepadRepository{client: client}
}

// List 按过滤条件获取记事本列表
func (r *NotepadRepository) List(ctx context.Context, filter repository.NotepadFilter) ([]*entity.Notepad, error) {
	ctx, span := tracer.Start(ctx, "postgres.NotepadRepository.List")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Notepad{})
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var notepads []*entity.Notepad
	if err := query.Order("id ASC").Find(&notepads).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list notepads: %w", err)
	}
	return notepads, nil
}

// Create 创建记事本
func (r *NotepadRepository) Create(ctx context.Context, notepad *entity.Notepad) error {
	ctx, span := tracer.Start(ctx, "postgres.NotepadRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(notepad).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create notepad: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取记事本
func (r *NotepadRepository) GetByID(ctx context.Context, id int64) (*entity.Notepad, error) {
	ctx, span := tracer.Start(ctx, "postgres.NotepadRepository.GetByID")
	defer span.End()

	var notepad entity.Notepad
	if err := r.client.db.WithContext(ctx).First(&notepad, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get notepad: %w", err)
	}
	return &notepad, nil
}

// Update 保存记事本
func (r *NotepadRepository) Update(ctx context.Context, notepad *entity.Notepad) error {
	ctx, span := tracer.Start(ctx, "postgres.NotepadRepository.Update")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Save(notepad).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update notepad: %w", err)
	}
	return nil
}

// HardDelete 物理删除记事本
func (r *NotepadRepository) HardDelete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.NotepadRepository.HardDelete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Notepad{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to hard delete notepad: %w", err)
	}
	return nil
}
