package repository

import (
	"context"
	"time"

	"dashboard-api/internal/domain/entity"
)

// ExpenseFilter 支出列表过滤条件
type ExpenseFilter struct {
	// FromDate/ToDate 按交易时间过滤，零值表示不限
	FromDate       *time.Time
	ToDate         *time.Time
	IncludeDeleted bool
}

// ExpenseRepository 支出仓储接口
type ExpenseRepository interface {
	List(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id int64) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	HardDelete(ctx context.Context, id int64) error
}
