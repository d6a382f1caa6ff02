package dto

import (
	"dashboard-api/internal/domain/entity"
)

// ServiceCreateRequest 创建服务书签请求
type ServiceCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	URL       string `json:"url"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Notes     string `json:"notes"`
	IsStarred bool   `json:"is_starred"`
	Category  int    `json:"category"`
	Tags      string `json:"tags"`
}

// ToEntity 转换为实体
func (r *ServiceCreateRequest) ToEntity() *entity.Service {
	return &entity.Service{
		Name:      r.Name,
		URL:       r.URL,
		Username:  r.Username,
		Password:  r.Password,
		Notes:     r.Notes,
		IsStarred: r.IsStarred,
		Category:  r.Category,
		Tags:      r.Tags,
	}
}

// ServiceUpdateRequest 部分更新服务书签请求，nil 字段不修改
type ServiceUpdateRequest struct {
	Name      *string `json:"name"`
	URL       *string `json:"url"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Notes     *string `json:"notes"`
	IsStarred *bool   `json:"is_starred"`
	Category  *int    `json:"category"`
	Tags      *string `json:"tags"`
}

// ApplyTo 把非 nil 字段合并到实体
func (r *ServiceUpdateRequest) ApplyTo(s *entity.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.URL != nil {
		s.URL = *r.URL
	}
	if r.Username != nil {
		s.Username = *r.Username
	}
	if r.Password != nil {
		s.Password = *r.Password
	}
	if r.Notes != nil {
		s.Notes = *r.Notes
	}
	if r.IsStarred != nil {
		s.IsStarred = *r.IsStarred
	}
	if r.Category != nil {
		s.Category = *r.Category
	}
	if r.Tags != nil {
		s.Tags = *r.Tags
	}
}
