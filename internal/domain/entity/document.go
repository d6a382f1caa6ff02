package entity

// Document 文档元数据实体
// 文件本体保存在配置的上传目录中，这里只保存元信息
type Document struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Filename string `json:"filename" gorm:"not null;index"`
	Filepath string `json:"filepath" gorm:"not null"`
	Filesize int64  `json:"filesize" gorm:"not null;default:0"`

	Category    int    `json:"category" gorm:"not null;default:0"`
	IsStarred   bool   `json:"is_starred" gorm:"not null;default:false"`
	Tags        string `json:"tags" gorm:"default:'Uploaded'"`
	Description string `json:"description" gorm:"default:''"`

	AuditFields
}

// TableName 指定表名
func (Document) TableName() string {
	return "documents"
}
