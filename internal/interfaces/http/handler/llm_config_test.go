package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-api/internal/application/llmcache"
	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// memLlmConfigRepo 内存 LLM 配置仓储
type memLlmConfigRepo struct {
	seq       int64
	items     map[int64]*entity.LlmConfig
	listErr   error
	listCalls int
}

func newMemLlmConfigRepo() *memLlmConfigRepo {
	return &memLlmConfigRepo{items: make(map[int64]*entity.LlmConfig)}
}

func (r *memLlmConfigRepo) List(ctx context.Context, filter repository.LlmConfigFilter) ([]*entity.LlmConfig, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.LlmConfig
	for _, cfg := range r.items {
		if !filter.IncludeDeleted && cfg.IsDeleted() {
			continue
		}
		if filter.IsActive != nil && cfg.IsActive != *filter.IsActive {
			continue
		}
		cp := *cfg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLlmConfigRepo) Create(ctx context.Context, cfg *entity.LlmConfig) error {
	r.seq++
	cfg.ID = r.seq
	cp := *cfg
	r.items[cfg.ID] = &cp
	return nil
}

func (r *memLlmConfigRepo) GetByID(ctx context.Context, id int64) (*entity.LlmConfig, error) {
	cfg, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (r *memLlmConfigRepo) Update(ctx context.Context, cfg *entity.LlmConfig) error {
	if _, ok := r.items[cfg.ID]; !ok {
		return fmt.Errorf("llm config %d not found", cfg.ID)
	}
	cp := *cfg
	r.items[cfg.ID] = &cp
	return nil
}

func (r *memLlmConfigRepo) HardDelete(ctx context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

type echoModel struct{ reply string }

func (m *echoModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *echoModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(m.reply, nil)}), nil
}

func newLlmConfigRouter(repo *memLlmConfigRepo) (*gin.Engine, *llmcache.Cache) {
	cache := llmcache.NewCache(repo,
		func(ctx context.Context, cfg *entity.LlmConfig) (model.BaseChatModel, error) {
			return &echoModel{reply: cfg.ModelName}, nil
		})
	h := NewLlmConfigHandler(repo, cache)
	r := gin.New()
	r.GET("/llm-configs", h.List)
	r.POST("/llm-configs", h.Create)
	r.GET("/llm-configs/cached", h.ListCached)
	r.GET("/llm-configs/:id", h.Get)
	r.PATCH("/llm-configs/:id", h.Update)
	r.DELETE("/llm-configs/:id", h.Delete)
	return r, cache
}

type llmConfigEnvelope struct {
	Code int              `json:"code"`
	Data entity.LlmConfig `json:"data"`
}

type llmConfigListEnvelope struct {
	Code int                `json:"code"`
	Data []entity.LlmConfig `json:"data"`
}

func TestLlmConfigCreateRefreshesCache(t *testing.T) {
	repo := newMemLlmConfigRepo()
	r, cache := newLlmConfigRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/llm-configs", gin.H{
		"title":      "primary",
		"model_name": "gpt-4o",
		"api_key":    "sk-test",
		"is_active":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created llmConfigEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// 写入后缓存立即可见
	_, ok := cache.GetInstance(created.Data.ID)
	assert.True(t, ok)

	w = doJSON(t, r, http.MethodGet, "/llm-configs/cached", nil)
	var cached llmConfigListEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cached))
	require.Len(t, cached.Data, 1)
	assert.Equal(t, "gpt-4o", cached.Data[0].ModelName)
}

func TestLlmConfigDeactivateDropsInstance(t *testing.T) {
	repo := newMemLlmConfigRepo()
	r, cache := newLlmConfigRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/llm-configs", gin.H{
		"title":      "primary",
		"model_name": "gpt-4o",
		"api_key":    "sk-test",
		"is_active":  true,
	})
	var created llmConfigEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/llm-configs/%d", id), gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	// 停用后配置仍在缓存（供状态判定），实例被移除
	cfg, ok := cache.GetConfig(id)
	require.True(t, ok)
	assert.False(t, cfg.IsActive)
	_, ok = cache.GetInstance(id)
	assert.False(t, ok)
	assert.Empty(t, cache.GetActiveConfigs())
}

func TestLlmConfigDeleteRefreshesCache(t *testing.T) {
	repo := newMemLlmConfigRepo()
	r, cache := newLlmConfigRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/llm-configs", gin.H{
		"title":      "primary",
		"model_name": "gpt-4o",
		"api_key":    "sk-test",
		"is_active":  true,
	})
	var created llmConfigEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID

	// 软删除后缓存不再包含该配置
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/llm-configs/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := cache.GetConfig(id)
	assert.False(t, ok)
	_, ok = cache.GetInstance(id)
	assert.False(t, ok)
}

func TestLlmConfigRefreshFailureReported(t *testing.T) {
	repo := newMemLlmConfigRepo()
	r, _ := newLlmConfigRouter(repo)

	// 列表查询在刷新时失败，创建已提交但接口报错
	repo.listErr = fmt.Errorf("connection refused")

	w := doJSON(t, r, http.MethodPost, "/llm-configs", gin.H{
		"title":      "primary",
		"model_name": "gpt-4o",
		"api_key":    "sk-test",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, repo.items, 1, "write must not be rolled back")
}

func TestLlmConfigListActiveFilter(t *testing.T) {
	repo := newMemLlmConfigRepo()
	r, _ := newLlmConfigRouter(repo)

	doJSON(t, r, http.MethodPost, "/llm-configs", gin.H{
		"title": "on", "model_name": "a", "api_key": "k", "is_active": true,
	})
	doJSON(t, r, http.MethodPost, "/llm-configs", gin.H{
		"title": "off", "model_name": "b", "api_key": "k", "is_active": false,
	})

	w := doJSON(t, r, http.MethodGet, "/llm-configs?is_active=true", nil)
	var list llmConfigListEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "on", list.Data[0].Title)
}
