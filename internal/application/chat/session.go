// Package chat 提供聊天转发与会话历史
package chat

import (
	"sync"

	"github.com/cloudwego/eino/schema"
)

// SessionStore 进程内会话历史存储
//
// 按 session_id 追加保存消息，进程重启即丢失，且不做容量上限，
// 长会话会持续占用内存。
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]*schema.Message
}

// NewSessionStore 创建会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string][]*schema.Message),
	}
}

// Append 向会话追加消息
func (s *SessionStore) Append(sessionID string, msgs ...*schema.Message) {
	if sessionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msgs...)
}

// History 返回会话历史的副本
func (s *SessionStore) History(sessionID string) []*schema.Message {
	if sessionID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	out := make([]*schema.Message, len(history))
	copy(out, history)
	return out
}

// Clear 删除会话历史
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
