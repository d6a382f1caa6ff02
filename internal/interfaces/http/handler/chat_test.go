package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-api/internal/application/chat"
	"dashboard-api/internal/application/llmcache"
	"dashboard-api/internal/domain/entity"
)

type fragmentsModel struct {
	reply     string
	fragments []string
}

func (m *fragmentsModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fragmentsModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msgs := make([]*schema.Message, 0, len(m.fragments))
	for _, f := range m.fragments {
		msgs = append(msgs, schema.AssistantMessage(f, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func newChatRouter(t *testing.T, m model.BaseChatModel) (*gin.Engine, *chat.Relay) {
	t.Helper()

	repo := newMemLlmConfigRepo()
	cfg := &entity.LlmConfig{
		IsActive:  true,
		Title:     "primary",
		ModelName: "gpt-4o",
		APIKey:    "sk-test",
	}
	require.NoError(t, repo.Create(context.Background(), cfg))

	cache := llmcache.NewCache(repo,
		func(ctx context.Context, c *entity.LlmConfig) (model.BaseChatModel, error) {
			return m, nil
		})
	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)

	relay := chat.NewRelay(cache, chat.NewSessionStore())
	h := NewChatHandler(relay)

	r := gin.New()
	r.POST("/chat/simple", h.Simple)
	r.POST("/chat/stream", h.Stream)
	return r, relay
}

func TestChatSimple(t *testing.T) {
	r, relay := newChatRouter(t, &fragmentsModel{reply: "pong"})

	w := doJSON(t, r, http.MethodPost, "/chat/simple", gin.H{
		"llm_id":     1,
		"message":    "ping",
		"session_id": "s1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Reply     string `json:"reply"`
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pong", resp.Data.Reply)
	assert.Equal(t, "s1", resp.Data.SessionID)

	history := relay.Sessions().History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, "ping", history[0].Content)
	assert.Equal(t, "pong", history[1].Content)
}

func TestChatSimpleValidation(t *testing.T) {
	r, _ := newChatRouter(t, &fragmentsModel{reply: "pong"})

	// 缺少 message
	w := doJSON(t, r, http.MethodPost, "/chat/simple", gin.H{"llm_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatSimpleUnknownConfig(t *testing.T) {
	r, _ := newChatRouter(t, &fragmentsModel{reply: "pong"})

	w := doJSON(t, r, http.MethodPost, "/chat/simple", gin.H{
		"llm_id":  99,
		"message": "ping",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatStreamPlainText(t *testing.T) {
	fragments := []string{"streams ", "are ", "fun"}
	r, relay := newChatRouter(t, &fragmentsModel{fragments: fragments})

	w := doJSON(t, r, http.MethodPost, "/chat/stream", gin.H{
		"llm_id":       1,
		"message":      "go",
		"session_id":   "s1",
		"event_stream": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	// 纯文本模式下 body 为按序拼接的完整分片
	assert.Equal(t, "streams are fun", w.Body.String())

	// 流结束后完整回复进入会话历史
	history := relay.Sessions().History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, "streams are fun", history[1].Content)
}

func TestChatStreamSSE(t *testing.T) {
	r, _ := newChatRouter(t, &fragmentsModel{fragments: []string{"a", "b"}})

	w := doJSON(t, r, http.MethodPost, "/chat/stream", gin.H{
		"llm_id":       1,
		"message":      "go",
		"event_stream": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event:content"))
	assert.Contains(t, body, `"chunk":"a"`)
	assert.Contains(t, body, `"chunk":"b"`)
}

// brokenStreamModel 先给出一个分片，然后以错误中断流
type brokenStreamModel struct{}

func (m *brokenStreamModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage("", nil), nil
}

func (m *brokenStreamModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	sr, sw := schema.Pipe[*schema.Message](2)
	go func() {
		defer sw.Close()
		sw.Send(schema.AssistantMessage("partial ", nil), nil)
		sw.Send(nil, errors.New("upstream reset"))
	}()
	return sr, nil
}

func TestChatStreamUpstreamErrorSkipsHistory(t *testing.T) {
	r, relay := newChatRouter(t, &brokenStreamModel{})

	w := doJSON(t, r, http.MethodPost, "/chat/stream", gin.H{
		"llm_id":     1,
		"message":    "go",
		"session_id": "s1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 已转发的分片在响应里，但中断的流不进入会话历史
	assert.Contains(t, w.Body.String(), "partial")
	assert.Empty(t, relay.Sessions().History("s1"))
}
