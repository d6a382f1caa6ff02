// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// TodoRepository 待办仓储实现
type TodoRepository struct {
	client *Client
}

// NewTodoRepository 创建待办仓储
func NewTodoRepository(client *Client) *TodoRepository {
	return &TodoRepository{client: client}
}

// List 按过滤条件获取待办列表
// 默认排除软删除与已完成条目，按主键升序返回
func (r *TodoRepository) List(ctx context.Context, filter repository.TodoFilter) ([]*entity.Todo, error) {
	ctx, span := tracer.Start(ctx, "postgres.TodoRepository.List")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Todo{})
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	if !filter.IncludeCompleted {
		query = query.Where("is_completed = ?", false)
	}

	var todos []*entity.Todo
	if err := query.Order("id ASC").Find(&todos).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Create 创建待办
func (r *TodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	ctx, span := tracer.Start(ctx, "postgres.TodoRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(todo).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取待办，软删除状态不影响按 ID 查询
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*entity.Todo, error) {
	ctx, span := tracer.Start(ctx, "postgres.TodoRepository.GetByID")
	defer span.End()

	var todo entity.Todo
	if err := r.client.db.WithContext(ctx).First(&todo, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

// Update 保存待办（含软删除盖章）
func (r *TodoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	ctx, span := tracer.Start(ctx, "postgres.TodoRepository.Update")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Save(todo).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// HardDelete 物理删除待办
func (r *TodoRepository) HardDelete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.TodoRepository.HardDelete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Todo{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to hard delete todo: %w", err)
	}
	return nil
}
