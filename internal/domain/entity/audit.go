// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditFields 所有资源共享的审计字段
// deleted_at 为空表示记录有效，非空表示软删除
type AuditFields struct {
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	DeletedBy *uuid.UUID `json:"deleted_by" gorm:"type:uuid"`
}

// StampCreate 写入创建审计信息
func (a *AuditFields) StampCreate(by uuid.UUID) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CreatedBy = by
}

// StampUpdate 写入更新审计信息
// updated_at 与 updated_by 总是一起推进
func (a *AuditFields) StampUpdate(by uuid.UUID) {
	now := time.Now().UTC()
	a.UpdatedAt = now
	a.UpdatedBy = &by
}

// StampDelete 写入软删除审计信息
// deleted_at 与 deleted_by 总是一起设置；重复删除会重新盖章
func (a *AuditFields) StampDelete(by uuid.UUID) {
	now := time.Now().UTC()
	a.DeletedAt = &now
	a.DeletedBy = &by
}

// IsDeleted 检查是否已软删除
func (a *AuditFields) IsDeleted() bool {
	return a.DeletedAt != nil
}
