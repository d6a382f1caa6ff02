package dto

// ChatRequest 聊天请求
type ChatRequest struct {
	LlmID        int64  `json:"llm_id" binding:"required"`
	Message      string `json:"message" binding:"required"`
	SessionID    string `json:"session_id"`
	SystemPrompt string `json:"system_prompt"`
	// EventStream 为 true 时以 SSE 帧输出，否则输出纯文本分片
	EventStream bool `json:"event_stream"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id,omitempty"`
}
