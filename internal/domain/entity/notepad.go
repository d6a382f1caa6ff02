package entity

// Notepad 记事本实体
type Notepad struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title   string `json:"title" gorm:"not null;index"`
	Content string `json:"content" gorm:"type:text;default:''"`

	Category  int    `json:"category" gorm:"not null;default:0"`
	IsStarred bool   `json:"is_starred" gorm:"not null;default:false"`
	Tags      string `json:"tags" gorm:"default:''"`

	AuditFields
}

// TableName 指定表名
func (Notepad) TableName() string {
	return "notepads"
}
