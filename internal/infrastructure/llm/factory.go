// Package llm 提供基于 Eino 的 LLM 实例构建
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"dashboard-api/internal/config"
	"dashboard-api/internal/domain/entity"
)

// Factory 按配置行构建 ChatModel 实例
type Factory struct {
	config *config.LLMConfig
}

// NewFactory 创建 LLM 工厂
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: &cfg.LLM}
}

// NewChatModel 根据提供商枚举构建 Eino ChatModel
//
// OpenAI 与 Azure 走 Eino 的 OpenAI 适配器（Azure 需 api_endpoint），
// Anthropic 走 Claude 适配器。api_key 直接透传给上游 SDK。
func (f *Factory) NewChatModel(ctx context.Context, cfg *entity.LlmConfig) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case entity.LlmProviderOpenAI:
		return f.newOpenAIModel(ctx, cfg, false)
	case entity.LlmProviderAzure:
		if cfg.APIEndpoint == "" {
			return nil, fmt.Errorf("azure provider requires api_endpoint (config %d)", cfg.ID)
		}
		return f.newOpenAIModel(ctx, cfg, true)
	case entity.LlmProviderAnthropic:
		return f.newClaudeModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %d (config %d)", cfg.Provider, cfg.ID)
	}
}

func (f *Factory) newOpenAIModel(ctx context.Context, cfg *entity.LlmConfig, byAzure bool) (model.BaseChatModel, error) {
	maxTokens := f.config.MaxTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.APIEndpoint,
		Model:       cfg.ModelName,
		MaxTokens:   &maxTokens,
		Temperature: ptrFloat32(float32(cfg.Temperature)),
		Timeout:     f.config.RequestTimeout,
		ByAzure:     byAzure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create openai chat model for config %d: %w", cfg.ID, err)
	}
	return chatModel, nil
}

func (f *Factory) newClaudeModel(ctx context.Context, cfg *entity.LlmConfig) (model.BaseChatModel, error) {
	claudeCfg := &claude.Config{
		APIKey:      cfg.APIKey,
		Model:       cfg.ModelName,
		MaxTokens:   f.config.MaxTokens,
		Temperature: ptrFloat32(float32(cfg.Temperature)),
	}
	if cfg.APIEndpoint != "" {
		claudeCfg.BaseURL = &cfg.APIEndpoint
	}
	chatModel, err := claude.NewChatModel(ctx, claudeCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create claude chat model for config %d: %w", cfg.ID, err)
	}
	return chatModel, nil
}

func ptrFloat32(f float32) *float32 {
	return &f
}
