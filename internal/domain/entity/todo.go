package entity

import "time"

// TodoCategory 待办分类
const (
	TodoCategoryPersonal = 0
	TodoCategoryWork     = 1
)

// TodoRepeatType 重复类型
const (
	TodoRepeatNone    = 0
	TodoRepeatDaily   = 1
	TodoRepeatWeekly  = 2
	TodoRepeatMonthly = 3
)

// Todo 待办事项实体
type Todo struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title string `json:"title" gorm:"not null;index"`
	Notes string `json:"notes" gorm:"default:''"`

	IsCompleted bool   `json:"is_completed" gorm:"not null;default:false"`
	IsStarred   bool   `json:"is_starred" gorm:"not null;default:false"`
	Category    int    `json:"category" gorm:"not null;default:0"`
	Priority    int    `json:"priority" gorm:"not null;default:0"`
	RepeatType  int    `json:"repeat_type" gorm:"not null;default:0"`
	Tags        string `json:"tags" gorm:"default:''"` // 逗号分隔

	DeadlineAt *time.Time `json:"deadline_at"`
	RemindAt   *time.Time `json:"remind_at"`

	AuditFields
}

// TableName 指定表名
func (Todo) TableName() string {
	return "todos"
}
