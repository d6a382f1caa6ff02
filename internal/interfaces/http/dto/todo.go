package dto

import (
	"time"

	"dashboard-api/internal/domain/entity"
)

// TodoCreateRequest 创建待办请求
type TodoCreateRequest struct {
	Title      string     `json:"title" binding:"required"`
	Notes      string     `json:"notes"`
	IsStarred  bool       `json:"is_starred"`
	Category   int        `json:"category"`
	Priority   int        `json:"priority"`
	RepeatType int        `json:"repeat_type"`
	Tags       string     `json:"tags"`
	DeadlineAt *time.Time `json:"deadline_at"`
	RemindAt   *time.Time `json:"remind_at"`
}

// ToEntity 转换为实体
func (r *TodoCreateRequest) ToEntity() *entity.Todo {
	return &entity.Todo{
		Title:      r.Title,
		Notes:      r.Notes,
		IsStarred:  r.IsStarred,
		Category:   r.Category,
		Priority:   r.Priority,
		RepeatType: r.RepeatType,
		Tags:       r.Tags,
		DeadlineAt: r.DeadlineAt,
		RemindAt:   r.RemindAt,
	}
}

// TodoUpdateRequest 部分更新待办请求
//
// 所有字段均为指针，nil 表示不修改对应字段。
type TodoUpdateRequest struct {
	Title       *string    `json:"title"`
	Notes       *string    `json:"notes"`
	IsCompleted *bool      `json:"is_completed"`
	IsStarred   *bool      `json:"is_starred"`
	Category    *int       `json:"category"`
	Priority    *int       `json:"priority"`
	RepeatType  *int       `json:"repeat_type"`
	Tags        *string    `json:"tags"`
	DeadlineAt  *time.Time `json:"deadline_at"`
	RemindAt    *time.Time `json:"remind_at"`
}

// ApplyTo 把非 nil 字段合并到实体
func (r *TodoUpdateRequest) ApplyTo(t *entity.Todo) {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Notes != nil {
		t.Notes = *r.Notes
	}
	if r.IsCompleted != nil {
		t.IsCompleted = *r.IsCompleted
	}
	if r.IsStarred != nil {
		t.IsStarred = *r.IsStarred
	}
	if r.Category != nil {
		t.Category = *r.Category
	}
	if r.Priority != nil {
		t.Priority = *r.Priority
	}
	if r.RepeatType != nil {
		t.RepeatType = *r.RepeatType
	}
	if r.Tags != nil {
		t.Tags = *r.Tags
	}
	if r.DeadlineAt != nil {
		t.DeadlineAt = r.DeadlineAt
	}
	if r.RemindAt != nil {
		t.RemindAt = r.RemindAt
	}
}
