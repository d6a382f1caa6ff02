package dto

import (
	"dashboard-api/internal/domain/entity"
)

// LlmConfigCreateRequest 创建 LLM 配置请求
type LlmConfigCreateRequest struct {
	Provider    int     `json:"provider"`
	Category    int     `json:"category"`
	IsActive    bool    `json:"is_active"`
	Title       string  `json:"title" binding:"required"`
	ModelName   string  `json:"model_name" binding:"required"`
	APIEndpoint string  `json:"api_endpoint"`
	APIKey      string  `json:"api_key" binding:"required"`
	Temperature float64 `json:"temperature"`
	Notes       string  `json:"notes"`
	IsStarred   bool    `json:"is_starred"`
	Tags        string  `json:"tags"`
}

// ToEntity 转换为实体
func (r *LlmConfigCreateRequest) ToEntity() *entity.LlmConfig {
	return &entity.LlmConfig{
		Provider:    entity.LlmProvider(r.Provider),
		Category:    entity.LlmCategory(r.Category),
		IsActive:    r.IsActive,
		Title:       r.Title,
		ModelName:   r.ModelName,
		APIEndpoint: r.APIEndpoint,
		APIKey:      r.APIKey,
		Temperature: r.Temperature,
		Notes:       r.Notes,
		IsStarred:   r.IsStarred,
		Tags:        r.Tags,
	}
}

// LlmConfigUpdateRequest 部分更新 LLM 配置请求，nil 字段不修改
type LlmConfigUpdateRequest struct {
	Provider    *int     `json:"provider"`
	Category    *int     `json:"category"`
	IsActive    *bool    `json:"is_active"`
	Title       *string  `json:"title"`
	ModelName   *string  `json:"model_name"`
	APIEndpoint *string  `json:"api_endpoint"`
	APIKey      *string  `json:"api_key"`
	Temperature *float64 `json:"temperature"`
	Notes       *string  `json:"notes"`
	IsStarred   *bool    `json:"is_starred"`
	Tags        *string  `json:"tags"`
}

// ApplyTo 把非 nil 字段合并到实体
func (r *LlmConfigUpdateRequest) ApplyTo(cfg *entity.LlmConfig) {
	if r.Provider != nil {
		cfg.Provider = entity.LlmProvider(*r.Provider)
	}
	if r.Category != nil {
		cfg.Category = entity.LlmCategory(*r.Category)
	}
	if r.IsActive != nil {
		cfg.IsActive = *r.IsActive
	}
	if r.Title != nil {
		cfg.Title = *r.Title
	}
	if r.ModelName != nil {
		cfg.ModelName = *r.ModelName
	}
	if r.APIEndpoint != nil {
		cfg.APIEndpoint = *r.APIEndpoint
	}
	if r.APIKey != nil {
		cfg.APIKey = *r.APIKey
	}
	if r.Temperature != nil {
		cfg.Temperature = *r.Temperature
	}
	if r.Notes != nil {
		cfg.Notes = *r.Notes
	}
	if r.IsStarred != nil {
		cfg.IsStarred = *r.IsStarred
	}
	if r.Tags != nil {
		cfg.Tags = *r.Tags
	}
}
