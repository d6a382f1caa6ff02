package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"dashboard-api/internal/application/chat"
	"dashboard-api/internal/interfaces/http/dto"
	"dashboard-api/pkg/logger"
	"dashboard-api/pkg/metrics"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	relay *chat.Relay
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(relay *chat.Relay) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Simple 单次往返聊天
// @Summary 单次往返聊天
// @Tags Chat
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.ChatResponse]
// @Router /api/v1/chat/simple [post]
func (h *ChatHandler) Simple(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	reply, appErr := h.relay.Simple(c.Request.Context(), req.LlmID, req.Message, req.SystemPrompt, req.SessionID)
	if appErr != nil {
		dto.AppError(c, appErr)
		return
	}

	dto.Success(c, dto.ChatResponse{
		Reply:     reply,
		SessionID: req.SessionID,
	})
}

// Stream 流式聊天
//
// event_stream=true 时按 SSE 帧输出，否则输出纯文本分片。上游
// 片段按到达顺序原样转发，不做合并。客户端断开时请求上下文取消，
// 上游拉取随之终止。
// @Summary 流式聊天
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Success 200 "stream"
// @Router /api/v1/chat/stream [post]
func (h *ChatHandler) Stream(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	cfg, reader, appErr := h.relay.Stream(c.Request.Context(), req.LlmID, req.Message, req.SystemPrompt, req.SessionID)
	if appErr != nil {
		dto.AppError(c, appErr)
		return
	}
	defer reader.Close()

	if req.EventStream {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
	} else {
		c.Header("Content-Type", "text/plain; charset=utf-8")
	}

	provider := cfg.Provider.String()
	var acc strings.Builder
	clientGone := false
	streamBroken := false

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			clientGone = true
			return false
		default:
		}

		msg, err := reader.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				streamBroken = true
				logger.Warn(c.Request.Context(), "llm stream interrupted",
					"llm_id", req.LlmID, "error", err)
				if req.EventStream {
					c.SSEvent("error", gin.H{"message": "stream interrupted"})
				}
			}
			return false
		}

		if msg.Content == "" {
			return true
		}
		acc.WriteString(msg.Content)
		metrics.LLMStreamFragments.WithLabelValues(provider, cfg.ModelName).Inc()

		if req.EventStream {
			c.SSEvent("content", gin.H{"chunk": msg.Content})
		} else {
			_, _ = io.WriteString(w, msg.Content)
		}
		return true
	})

	// 断开或上游中断时不记会话，避免残缺回复进入历史
	if !clientGone && !streamBroken && acc.Len() > 0 {
		h.relay.Commit(req.SessionID, req.Message, acc.String())
	}
}
