package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// ExpenseRepository 支出仓储实现
type ExpenseRepository struct {
	client *Client
}

// NewExpenseRepository 创建支出仓储
func NewExpenseRepository(client *Client) *ExpenseRepository {
	return &ExpenseRepository{client: client}
}

// List 按过滤条件获取支出列表，支持交易时间范围
func (r *ExpenseRepository) List(ctx context.Context, filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.List")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Expense{})
	if filter.FromDate != nil {
		query = query.Where("transaction_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("transaction_at <= ?", *filter.ToDate)
	}
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var expenses []*entity.Expense
	if err := query.Order("id ASC").Find(&expenses).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Create 创建支出
func (r *ExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(expense).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取支出
func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*entity.Expense, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.GetByID")
	defer span.End()

	var expense entity.Expense
	if err := r.client.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

// Update 保存支出
func (r *ExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.Update")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Save(expense).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// HardDelete 物理删除支出
func (r *ExpenseRepository) HardDelete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.HardDelete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to hard delete expense: %w", err)
	}
	return nil
}
