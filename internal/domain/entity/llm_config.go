package entity

// LlmProvider LLM 提供商枚举
type LlmProvider int

const (
	LlmProviderOpenAI    LlmProvider = 0
	LlmProviderAnthropic LlmProvider = 1
	LlmProviderAzure     LlmProvider = 2
)

// String 返回提供商名称
func (p LlmProvider) String() string {
	switch p {
	case LlmProviderOpenAI:
		return "openai"
	case LlmProviderAnthropic:
		return "anthropic"
	case LlmProviderAzure:
		return "azure"
	default:
		return "unknown"
	}
}

// LlmCategory 模型用途枚举
type LlmCategory int

const (
	LlmCategoryChat      LlmCategory = 0
	LlmCategoryEmbedding LlmCategory = 1
)

// LlmConfig LLM 提供商配置实体
type LlmConfig struct {
	ID       int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	Provider LlmProvider `json:"provider" gorm:"not null"`
	Category LlmCategory `json:"category" gorm:"not null;default:0"`
	IsActive bool        `json:"is_active" gorm:"not null;default:false"`

	Title       string  `json:"title" gorm:"not null"`
	ModelName   string  `json:"model_name" gorm:"not null"`
	APIEndpoint string  `json:"api_endpoint" gorm:"not null;default:''"`
	APIKey      string  `json:"api_key" gorm:"not null"` // 密钥，不做二次加密，与库中其他凭据一致
	Temperature float64 `json:"temperature" gorm:"not null;default:1"`
	Notes       string  `json:"notes" gorm:"default:''"`

	IsStarred bool   `json:"is_starred" gorm:"not null;default:false"`
	Tags      string `json:"tags" gorm:"default:''"`

	AuditFields
}

// TableName 指定表名
func (LlmConfig) TableName() string {
	return "llm_configs"
}
