package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageParams(t *testing.T) {
	p := NewPageParams(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = NewPageParams(-3, 500)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)

	p = NewPageParams(4, 25)
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 25, p.PageSize)
	assert.Equal(t, 75, p.Offset())
}

func TestNewPageMeta(t *testing.T) {
	// 25 rows at 10 per page: page 3 holds the last 5 rows.
	meta := NewPageMeta(PageParams{Page: 3, PageSize: 10}, 25)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, int64(25), meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasMore)

	meta = NewPageMeta(PageParams{Page: 1, PageSize: 10}, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)

	meta = NewPageMeta(PageParams{Page: 1, PageSize: 20}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasMore)
}
