package llmcache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

type fakeModel struct{ reply string }

func (m *fakeModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(m.reply, nil)}), nil
}

type fakeConfigRepo struct {
	rows      []*entity.LlmConfig
	err       error
	listCalls int
}

func (r *fakeConfigRepo) List(ctx context.Context, filter repository.LlmConfigFilter) ([]*entity.LlmConfig, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (r *fakeConfigRepo) Create(ctx context.Context, cfg *entity.LlmConfig) error  { return nil }
func (r *fakeConfigRepo) Update(ctx context.Context, cfg *entity.LlmConfig) error  { return nil }
func (r *fakeConfigRepo) HardDelete(ctx context.Context, id int64) error           { return nil }
func (r *fakeConfigRepo) GetByID(ctx context.Context, id int64) (*entity.LlmConfig, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func okFactory(ctx context.Context, cfg *entity.LlmConfig) (model.BaseChatModel, error) {
	return &fakeModel{reply: cfg.ModelName}, nil
}

func TestRefreshLoadsActiveInstances(t *testing.T) {
	repo := &fakeConfigRepo{rows: []*entity.LlmConfig{
		{ID: 1, IsActive: true, ModelName: "gpt-4o"},
		{ID: 2, IsActive: false, ModelName: "disabled"},
	}}
	cache := NewCache(repo, okFactory)

	loaded, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	// 激活配置有实例
	_, ok := cache.GetInstance(1)
	assert.True(t, ok)

	// 未激活配置可查到但无实例
	cfg, ok := cache.GetConfig(2)
	require.True(t, ok)
	assert.False(t, cfg.IsActive)
	_, ok = cache.GetInstance(2)
	assert.False(t, ok)

	active := cache.GetActiveConfigs()
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)
}

func TestRefreshSkipsBrokenConfig(t *testing.T) {
	repo := &fakeConfigRepo{rows: []*entity.LlmConfig{
		{ID: 1, IsActive: true, ModelName: "good"},
		{ID: 2, IsActive: true, ModelName: "bad"},
	}}
	factory := func(ctx context.Context, cfg *entity.LlmConfig) (model.BaseChatModel, error) {
		if cfg.ModelName == "bad" {
			return nil, fmt.Errorf("invalid api key")
		}
		return &fakeModel{}, nil
	}
	cache := NewCache(repo, factory)

	loaded, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)

	_, ok := cache.GetInstance(1)
	assert.True(t, ok)

	// 构建失败的配置仍在配置表中，但没有实例
	_, ok = cache.GetConfig(2)
	assert.True(t, ok)
	_, ok = cache.GetInstance(2)
	assert.False(t, ok)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	repo := &fakeConfigRepo{rows: []*entity.LlmConfig{
		{ID: 1, IsActive: true, ModelName: "gpt-4o"},
	}}
	cache := NewCache(repo, okFactory)

	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)

	repo.err = fmt.Errorf("connection refused")
	_, err = cache.Refresh(context.Background())
	require.Error(t, err)

	// 旧快照保留
	_, ok := cache.GetInstance(1)
	assert.True(t, ok)
}

func TestDeactivatedConfigDropsInstanceOnRefresh(t *testing.T) {
	cfg := &entity.LlmConfig{ID: 1, IsActive: true, ModelName: "gpt-4o"}
	repo := &fakeConfigRepo{rows: []*entity.LlmConfig{cfg}}
	cache := NewCache(repo, okFactory)

	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	_, ok := cache.GetInstance(1)
	require.True(t, ok)

	cfg.IsActive = false
	_, err = cache.Refresh(context.Background())
	require.NoError(t, err)

	_, ok = cache.GetInstance(1)
	assert.False(t, ok)
	assert.Empty(t, cache.GetActiveConfigs())
}

func TestInvalidate(t *testing.T) {
	repo := &fakeConfigRepo{rows: []*entity.LlmConfig{
		{ID: 1, IsActive: true, ModelName: "a"},
		{ID: 2, IsActive: true, ModelName: "b"},
	}}
	cache := NewCache(repo, okFactory)

	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)

	cache.Invalidate(1)
	_, ok := cache.GetConfig(1)
	assert.False(t, ok)
	_, ok = cache.GetInstance(1)
	assert.False(t, ok)
	_, ok = cache.GetInstance(2)
	assert.True(t, ok)

	cache.InvalidateAll()
	_, ok = cache.GetConfig(2)
	assert.False(t, ok)
	assert.Empty(t, cache.GetActiveConfigs())
}

// gatedRepo 在 List 入口处快照行集并阻塞，等待逐个放行
type gatedRepo struct {
	mu      sync.Mutex
	rows    []*entity.LlmConfig
	entered chan chan struct{}
}

func (r *gatedRepo) List(ctx context.Context, filter repository.LlmConfigFilter) ([]*entity.LlmConfig, error) {
	r.mu.Lock()
	snapshot := make([]*entity.LlmConfig, len(r.rows))
	copy(snapshot, r.rows)
	r.mu.Unlock()

	release := make(chan struct{})
	r.entered <- release
	<-release
	return snapshot, nil
}

func (r *gatedRepo) add(cfg *entity.LlmConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, cfg)
}

func (r *gatedRepo) Create(ctx context.Context, cfg *entity.LlmConfig) error { return nil }
func (r *gatedRepo) Update(ctx context.Context, cfg *entity.LlmConfig) error { return nil }
func (r *gatedRepo) HardDelete(ctx context.Context, id int64) error          { return nil }
func (r *gatedRepo) GetByID(ctx context.Context, id int64) (*entity.LlmConfig, error) {
	return nil, nil
}

func waitListEntered(t *testing.T, repo *gatedRepo) chan struct{} {
	t.Helper()
	select {
	case release := <-repo.entered:
		return release
	case <-time.After(2 * time.Second):
		t.Fatal("expected a fresh list call to start")
		return nil
	}
}

func TestRefreshAfterWriteObservesWrite(t *testing.T) {
	repo := &gatedRepo{
		rows:    []*entity.LlmConfig{{ID: 1, IsActive: true, ModelName: "a"}},
		entered: make(chan chan struct{}, 2),
	}
	cache := NewCache(repo, okFactory)

	// 第一次装载在写入提交前已经开始
	done1 := make(chan struct{})
	go func() {
		defer close(done1)
		_, _ = cache.Refresh(context.Background())
	}()
	release1 := waitListEntered(t, repo)

	repo.add(&entity.LlmConfig{ID: 2, IsActive: true, ModelName: "b"})

	// 写入后的 Refresh 必须发起新装载，而不是并入第一次
	done2 := make(chan struct{})
	go func() {
		defer close(done2)
		_, _ = cache.Refresh(context.Background())
	}()
	release2 := waitListEntered(t, repo)

	// 旧快照先落盘，新快照后落盘
	close(release1)
	<-done1
	close(release2)
	<-done2

	_, ok := cache.GetConfig(2)
	assert.True(t, ok)
	_, ok = cache.GetInstance(2)
	assert.True(t, ok)
}
