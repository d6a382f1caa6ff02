package dto

import (
	"dashboard-api/internal/domain/entity"
)

// NotepadCreateRequest 创建记事请求
type NotepadCreateRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	Category  int    `json:"category"`
	IsStarred bool   `json:"is_starred"`
	Tags      string `json:"tags"`
}

// ToEntity 转换为实体
func (r *NotepadCreateRequest) ToEntity() *entity.Notepad {
	return &entity.Notepad{
		Title:     r.Title,
		Content:   r.Content,
		Category:  r.Category,
		IsStarred: r.IsStarred,
		Tags:      r.Tags,
	}
}

// NotepadUpdateRequest 部分更新记事请求，nil 字段不修改
type NotepadUpdateRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Category  *int    `json:"category"`
	IsStarred *bool   `json:"is_starred"`
	Tags      *string `json:"tags"`
}

// ApplyTo 把非 nil 字段合并到实体
func (r *NotepadUpdateRequest) ApplyTo(n *entity.Notepad) {
	if r.Title != nil {
		n.Title = *r.Title
	}
	if r.Content != nil {
		n.Content = *r.Content
	}
	if r.Category != nil {
		n.Category = *r.Category
	}
	if r.IsStarred != nil {
		n.IsStarred = *r.IsStarred
	}
	if r.Tags != nil {
		n.Tags = *r.Tags
	}
}
