package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationClamps(t *testing.T) {
	p := NewPagination(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = NewPagination(3, 500)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = NewPagination(2, 10)
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 10, p.Limit())
}
