package chat

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"dashboard-api/internal/application/llmcache"
	"dashboard-api/internal/domain/entity"
	"dashboard-api/pkg/errors"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

var tracer = otel.Tracer("chat")

// Relay 把聊天请求转发给缓存中的 LLM 实例
type Relay struct {
	cache    *llmcache.Cache
	sessions *SessionStore
}

// NewRelay 创建聊天转发器
func NewRelay(cache *llmcache.Cache, sessions *SessionStore) *Relay {
	return &Relay{cache: cache, sessions: sessions}
}

// Sessions 返回会话存储
func (r *Relay) Sessions() *SessionStore {
	return r.sessions
}

// Resolve 按 id 解析出配置与可调用的模型实例
//
// 未知 id 返回未找到；配置存在但未激活返回业务错误；激活但实例
// 构建失败（缓存中无句柄）返回不可用。
func (r *Relay) Resolve(id int64) (*entity.LlmConfig, model.BaseChatModel, *errors.AppError) {
	cfg, ok := r.cache.GetConfig(id)
	if !ok {
		return nil, nil, errors.ErrLlmConfigNotFound
	}
	if !cfg.IsActive {
		return nil, nil, errors.ErrLlmInactive
	}

	instance, ok := r.cache.GetInstance(id)
	if !ok {
		return nil, nil, errors.ErrLlmUnavailable
	}
	return cfg, instance, nil
}

// Simple 单次往返聊天
func (r *Relay) Simple(ctx context.Context, id int64, message, systemPrompt, sessionID string) (string, *errors.AppError) {
	ctx, span := tracer.Start(ctx, "chat.Relay.Simple")
	span.SetAttributes(attribute.Int64("chat.llm_id", id))
	defer span.End()

	cfg, instance, appErr := r.Resolve(id)
	if appErr != nil {
		return "", appErr
	}
	provider := cfg.Provider.String()

	msgs := r.buildMessages(message, systemPrompt, sessionID)

	start := time.Now()
	reply, err := instance.Generate(ctx, msgs)
	metrics.LLMCallDuration.WithLabelValues(provider, cfg.ModelName).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(provider, cfg.ModelName, "error").Inc()
		logger.Error(ctx, "llm generate failed", err, "llm_id", id, "provider", provider)
		return "", errors.ErrLlmCallFailed.WithError(err)
	}
	metrics.LLMCallTotal.WithLabelValues(provider, cfg.ModelName, "success").Inc()

	r.Commit(sessionID, message, reply.Content)
	return reply.Content, nil
}

// Stream 流式聊天，返回配置与上游片段流
//
// 调用方负责读尽或关闭返回的 reader；ctx 取消会终止上游拉取。
// 读完后应调用 Commit 把累计回复写入会话历史。
func (r *Relay) Stream(ctx context.Context, id int64, message, systemPrompt, sessionID string) (*entity.LlmConfig, *schema.StreamReader[*schema.Message], *errors.AppError) {
	ctx, span := tracer.Start(ctx, "chat.Relay.Stream")
	span.SetAttributes(attribute.Int64("chat.llm_id", id))
	defer span.End()

	cfg, instance, appErr := r.Resolve(id)
	if appErr != nil {
		return nil, nil, appErr
	}
	provider := cfg.Provider.String()

	msgs := r.buildMessages(message, systemPrompt, sessionID)

	reader, err := instance.Stream(ctx, msgs)
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(provider, cfg.ModelName, "error").Inc()
		logger.Error(ctx, "llm stream failed", err, "llm_id", id, "provider", provider)
		return nil, nil, errors.ErrLlmCallFailed.WithError(err)
	}
	metrics.LLMCallTotal.WithLabelValues(provider, cfg.ModelName, "success").Inc()

	return cfg, reader, nil
}

// Commit 把一次完整对话写入会话历史
func (r *Relay) Commit(sessionID, message, reply string) {
	r.sessions.Append(sessionID,
		schema.UserMessage(message),
		schema.AssistantMessage(reply, nil),
	)
}

// buildMessages 组装系统提示、历史与本轮消息
func (r *Relay) buildMessages(message, systemPrompt, sessionID string) []*schema.Message {
	var msgs []*schema.Message
	if systemPrompt != "" {
		msgs = append(msgs, schema.SystemMessage(systemPrompt))
	}
	msgs = append(msgs, r.sessions.History(sessionID)...)
	msgs = append(msgs, schema.UserMessage(message))
	return msgs
}
