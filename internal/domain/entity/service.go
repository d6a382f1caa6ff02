package entity

// Service 第三方服务凭据书签实体
type Service struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"not null;index"`
	URL      string `json:"url" gorm:"default:''"`
	Username string `json:"username" gorm:"default:''"`
	Password string `json:"password" gorm:"default:''"`
	Notes    string `json:"notes" gorm:"default:''"`

	IsStarred bool   `json:"is_starred" gorm:"not null;default:false"`
	Category  int    `json:"category" gorm:"not null;default:0"`
	Tags      string `json:"tags" gorm:"default:''"`

	AuditFields
}

// TableName 指定表名
func (Service) TableName() string {
	return "services"
}
