package dto

import (
	"dashboard-api/internal/domain/entity"
)

// DocumentCreateRequest 登记文档元数据请求（不含文件本体）
type DocumentCreateRequest struct {
	Filename    string `json:"filename" binding:"required"`
	Filepath    string `json:"filepath" binding:"required"`
	Filesize    int64  `json:"filesize"`
	Category    int    `json:"category"`
	IsStarred   bool   `json:"is_starred"`
	Tags        string `json:"tags"`
	Description string `json:"description"`
}

// ToEntity 转换为实体
func (r *DocumentCreateRequest) ToEntity() *entity.Document {
	return &entity.Document{
		Filename:    r.Filename,
		Filepath:    r.Filepath,
		Filesize:    r.Filesize,
		Category:    r.Category,
		IsStarred:   r.IsStarred,
		Tags:        r.Tags,
		Description: r.Description,
	}
}

// DocumentUpdateRequest 部分更新文档元数据请求，nil 字段不修改
type DocumentUpdateRequest struct {
	Filename    *string `json:"filename"`
	Category    *int    `json:"category"`
	IsStarred   *bool   `json:"is_starred"`
	Tags        *string `json:"tags"`
	Description *string `json:"description"`
}

// ApplyTo 把非 nil 字段合并到实体
func (r *DocumentUpdateRequest) ApplyTo(d *entity.Document) {
	if r.Filename != nil {
		d.Filename = *r.Filename
	}
	if r.Category != nil {
		d.Category = *r.Category
	}
	if r.IsStarred != nil {
		d.IsStarred = *r.IsStarred
	}
	if r.Tags != nil {
		d.Tags = *r.Tags
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
}
