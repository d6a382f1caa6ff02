package dto

import (
	"time"

	"dashboard-api/internal/domain/entity"
)

// ExpenseCreateRequest 创建支出请求
type ExpenseCreateRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	TransactionAt time.Time `json:"transaction_at" binding:"required"`
	Category      int       `json:"category"`
	PaymentMethod int       `json:"payment_method"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Tags          string    `json:"tags"`
	Location      string    `json:"location"`
}

// ToEntity 转换为实体，币种缺省 USD
func (r *ExpenseCreateRequest) ToEntity() *entity.Expense {
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}
	return &entity.Expense{
		Title:         r.Title,
		Description:   r.Description,
		TransactionAt: r.TransactionAt,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		Amount:        r.Amount,
		Currency:      currency,
		Tags:          r.Tags,
		Location:      r.Location,
	}
}

// ExpenseUpdateRequest 部分更新支出请求，nil 字段不修改
type ExpenseUpdateRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	TransactionAt *time.Time `json:"transaction_at"`
	Category      *int       `json:"category"`
	PaymentMethod *int       `json:"payment_method"`
	Amount        *float64   `json:"amount"`
	Currency      *string    `json:"currency"`
	Tags          *string    `json:"tags"`
	Location      *string    `json:"location"`
}

// ApplyTo 把非 nil 字段合并到实体
func (r *ExpenseUpdateRequest) ApplyTo(e *entity.Expense) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.TransactionAt != nil {
		e.TransactionAt = *r.TransactionAt
	}
	if r.Category != nil {
		e.Category = *r.Category
	}
	if r.PaymentMethod != nil {
		e.PaymentMethod = *r.PaymentMethod
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.Currency != nil {
		e.Currency = *r.Currency
	}
	if r.Tags != nil {
		e.Tags = *r.Tags
	}
	if r.Location != nil {
		e.Location = *r.Location
	}
}
