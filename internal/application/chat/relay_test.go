package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-api/internal/application/llmcache"
	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
	apperrors "dashboard-api/pkg/errors"
)

type scriptedModel struct {
	reply     string
	fragments []string
	err       error
}

func (m *scriptedModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *scriptedModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	if m.err != nil {
		return nil, m.err
	}
	msgs := make([]*schema.Message, 0, len(m.fragments))
	for _, f := range m.fragments {
		msgs = append(msgs, schema.AssistantMessage(f, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

type staticRepo struct {
	rows []*entity.LlmConfig
}

func (r *staticRepo) List(ctx context.Context, filter repository.LlmConfigFilter) ([]*entity.LlmConfig, error) {
	return r.rows, nil
}
func (r *staticRepo) Create(ctx context.Context, cfg *entity.LlmConfig) error { return nil }
func (r *staticRepo) Update(ctx context.Context, cfg *entity.LlmConfig) error { return nil }
func (r *staticRepo) HardDelete(ctx context.Context, id int64) error          { return nil }
func (r *staticRepo) GetByID(ctx context.Context, id int64) (*entity.LlmConfig, error) {
	return nil, nil
}

func newTestRelay(t *testing.T, rows []*entity.LlmConfig, m model.BaseChatModel, factoryErr error) *Relay {
	t.Helper()
	cache := llmcache.NewCache(&staticRepo{rows: rows},
		func(ctx context.Context, cfg *entity.LlmConfig) (model.BaseChatModel, error) {
			if factoryErr != nil {
				return nil, factoryErr
			}
			return m, nil
		})
	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	return NewRelay(cache, NewSessionStore())
}

func TestResolveUnknownID(t *testing.T) {
	relay := newTestRelay(t, nil, &scriptedModel{}, nil)

	_, _, appErr := relay.Resolve(42)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeLlmConfigNotFound, appErr.Code)
}

func TestResolveInactive(t *testing.T) {
	rows := []*entity.LlmConfig{{ID: 1, IsActive: false}}
	relay := newTestRelay(t, rows, &scriptedModel{}, nil)

	_, _, appErr := relay.Resolve(1)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeLlmInactive, appErr.Code)
}

func TestResolveActiveWithoutInstance(t *testing.T) {
	rows := []*entity.LlmConfig{{ID: 1, IsActive: true}}
	relay := newTestRelay(t, rows, nil, fmt.Errorf("bad key"))

	_, _, appErr := relay.Resolve(1)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeLlmUnavailable, appErr.Code)
}

func TestSimpleAppendsSession(t *testing.T) {
	rows := []*entity.LlmConfig{{ID: 1, IsActive: true, ModelName: "gpt-4o"}}
	relay := newTestRelay(t, rows, &scriptedModel{reply: "hi there"}, nil)

	reply, appErr := relay.Simple(context.Background(), 1, "hello", "", "sess-1")
	require.Nil(t, appErr)
	assert.Equal(t, "hi there", reply)

	history := relay.Sessions().History("sess-1")
	require.Len(t, history, 2)
	assert.Equal(t, schema.User, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, schema.Assistant, history[1].Role)
	assert.Equal(t, "hi there", history[1].Content)
}

func TestSimpleUpstreamFailure(t *testing.T) {
	rows := []*entity.LlmConfig{{ID: 1, IsActive: true}}
	relay := newTestRelay(t, rows, &scriptedModel{err: fmt.Errorf("rate limited")}, nil)

	_, appErr := relay.Simple(context.Background(), 1, "hello", "", "sess-1")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeLlmCallFailed, appErr.Code)

	// 失败的往返不进入历史
	assert.Empty(t, relay.Sessions().History("sess-1"))
}

func TestStreamForwardsFragmentsInOrder(t *testing.T) {
	rows := []*entity.LlmConfig{{ID: 1, IsActive: true, ModelName: "gpt-4o"}}
	m := &scriptedModel{fragments: []string{"one ", "two ", "three"}}
	relay := newTestRelay(t, rows, m, nil)

	cfg, reader, appErr := relay.Stream(context.Background(), 1, "go", "", "")
	require.Nil(t, appErr)
	require.NotNil(t, cfg)
	defer reader.Close()

	var got []string
	for {
		msg, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, msg.Content)
	}

	// 片段原样按序转发，不合并
	assert.Equal(t, []string{"one ", "two ", "three"}, got)
}

type pipeModel struct {
	writerDone chan struct{}
}

func (m *pipeModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage("", nil), nil
}

func (m *pipeModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	sr, sw := schema.Pipe[*schema.Message](1)
	go func() {
		defer close(m.writerDone)
		defer sw.Close()
		for {
			if closed := sw.Send(schema.AssistantMessage("chunk", nil), nil); closed {
				return
			}
		}
	}()
	return sr, nil
}

func TestStreamCloseStopsUpstreamWriter(t *testing.T) {
	rows := []*entity.LlmConfig{{ID: 1, IsActive: true}}
	m := &pipeModel{writerDone: make(chan struct{})}
	relay := newTestRelay(t, rows, m, nil)

	_, reader, appErr := relay.Stream(context.Background(), 1, "go", "", "")
	require.Nil(t, appErr)

	_, err := reader.Recv()
	require.NoError(t, err)

	// 模拟客户端断开：关闭 reader 应让上游写端观察到关闭并退出
	reader.Close()

	select {
	case <-m.writerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("upstream writer did not stop after reader close")
	}
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	store.Append("s1", schema.UserMessage("q1"))
	store.Append("s1", schema.AssistantMessage("a1", nil))
	store.Append("s2", schema.UserMessage("other"))

	// 空 session id 直接丢弃
	store.Append("", schema.UserMessage("dropped"))

	require.Len(t, store.History("s1"), 2)
	require.Len(t, store.History("s2"), 1)
	assert.Nil(t, store.History(""))

	// 返回的是副本
	h := store.History("s1")
	h[0] = schema.UserMessage("mutated")
	assert.Equal(t, "q1", store.History("s1")[0].Content)

	store.Clear("s1")
	assert.Empty(t, store.History("s1"))
}
