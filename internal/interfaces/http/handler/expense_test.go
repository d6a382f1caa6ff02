package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// memExpenseRepo 内存支出仓储，日期过滤语义与 postgres 实现一致（闭区间）
type memExpenseRepo struct {
	seq   int64
	items map[int64]*entity.Expense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{items: make(map[int64]*entity.Expense)}
}

func (r *memExpenseRepo) List(ctx context.Context, filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.items {
		if !filter.IncludeDeleted && e.IsDeleted() {
			continue
		}
		if filter.FromDate != nil && e.TransactionAt.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && e.TransactionAt.After(*filter.ToDate) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	r.seq++
	expense.ID = r.seq
	cp := *expense
	r.items[expense.ID] = &cp
	return nil
}

func (r *memExpenseRepo) GetByID(ctx context.Context, id int64) (*entity.Expense, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	if _, ok := r.items[expense.ID]; !ok {
		return fmt.Errorf("expense %d not found", expense.ID)
	}
	cp := *expense
	r.items[expense.ID] = &cp
	return nil
}

func (r *memExpenseRepo) HardDelete(ctx context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

func newExpenseRouter() (*gin.Engine, *memExpenseRepo) {
	repo := newMemExpenseRepo()
	h := NewExpenseHandler(repo)
	r := gin.New()
	r.GET("/expenses", h.List)
	r.POST("/expenses", h.Create)
	r.GET("/expenses/:id", h.Get)
	r.PUT("/expenses/:id", h.Update)
	r.DELETE("/expenses/:id", h.Delete)
	return r, repo
}

type expenseListEnvelope struct {
	Code int              `json:"code"`
	Data []entity.Expense `json:"data"`
}

func seedExpenses(t *testing.T, r *gin.Engine) {
	t.Helper()
	seeds := []struct {
		title string
		at    string
	}{
		{"groceries", "2026-01-10T09:00:00Z"},
		{"train", "2026-02-15T18:30:00Z"},
		{"rent", "2026-03-01T00:00:00Z"},
	}
	for _, s := range seeds {
		w := doJSON(t, r, http.MethodPost, "/expenses", gin.H{
			"title":          s.title,
			"transaction_at": s.at,
			"amount":         10.0,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
}

func titlesOf(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var list expenseListEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	out := make([]string, 0, len(list.Data))
	for _, e := range list.Data {
		out = append(out, e.Title)
	}
	return out
}

func TestExpenseDateRangeFilter(t *testing.T) {
	r, _ := newExpenseRouter()
	seedExpenses(t, r)

	// 短格式日期，闭区间
	w := doJSON(t, r, http.MethodGet, "/expenses?from_date=2026-02-01&to_date=2026-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"train", "rent"}, titlesOf(t, w))
}

func TestExpenseDateRangeInclusiveBoundary(t *testing.T) {
	r, _ := newExpenseRouter()
	seedExpenses(t, r)

	// RFC3339 下界恰好等于交易时间，记录仍在结果里
	w := doJSON(t, r, http.MethodGet,
		"/expenses?from_date=2026-02-15T18:30:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"train", "rent"}, titlesOf(t, w))

	w = doJSON(t, r, http.MethodGet, "/expenses?to_date=2026-01-10T09:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"groceries"}, titlesOf(t, w))
}

func TestExpenseDateFilterInvalid(t *testing.T) {
	r, _ := newExpenseRouter()

	w := doJSON(t, r, http.MethodGet, "/expenses?from_date=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/expenses?to_date=15-02-2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpenseCurrencyDefault(t *testing.T) {
	r, _ := newExpenseRouter()

	w := doJSON(t, r, http.MethodPost, "/expenses", gin.H{
		"title":          "coffee",
		"transaction_at": "2026-04-01T08:00:00Z",
		"amount":         3.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data entity.Expense `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "USD", created.Data.Currency)
}
