package repository

import (
	"context"

	"dashboard-api/internal/domain/entity"
)

// NotepadFilter 记事本列表过滤条件
type NotepadFilter struct {
	IncludeDeleted bool
}

// NotepadRepository 记事本仓储接口
type NotepadRepository interface {
	List(ctx context.Context, filter NotepadFilter) ([]*entity.Notepad, error)
	Create(ctx context.Context, notepad *entity.Notepad) error
	GetByID(ctx context.Context, id int64) (*entity.Notepad, error)
	Update(ctx context.Context, notepad *entity.Notepad) error
	HardDelete(ctx context.Context, id int64) error
}
