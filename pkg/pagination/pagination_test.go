package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/lists", nil)
	p, err := FromRequest(r, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_ExplicitValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/lists?page=3&limit=5", nil)
	p, err := FromRequest(r, 20)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, 10, p.Offset)
}

func TestFromRequest_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric", "?page=abc&limit=xyz"},
		{"zero", "?page=0&limit=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/lists"+tt.query, nil)
			p, err := FromRequest(r, 20)
			require.NoError(t, err)

			assert.Equal(t, 1, p.Page)
			assert.Equal(t, 20, p.Limit)
		})
	}
}

func TestFromRequest_NegativeValuesRejected(t *testing.T) {
	r := httptest.NewRequest("GET", "/lists?page=-1", nil)
	_, err := FromRequest(r, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page must not be negative")

	r = httptest.NewRequest("GET", "/lists?limit=-5", nil)
	_, err = FromRequest(r, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must not be negative")
}

func TestFromRequest_LimitCapped(t *testing.T) {
	r := httptest.NewRequest("GET", "/lists?limit=500", nil)
	p, err := FromRequest(r, 20)
	require.NoError(t, err)

	assert.Equal(t, 20, p.Limit)
}

func TestNewPage_Metadata(t *testing.T) {
	items := []string{"a", "b", "c"}
	page := NewPage(items, 7, Params{Page: 2, Limit: 3})

	assert.Equal(t, 3, page.ItemsInPage)
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestNewPage_FirstAndLastPage(t *testing.T) {
	first := NewPage([]string{"a", "b"}, 4, Params{Page: 1, Limit: 2})
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last := NewPage([]string{"c", "d"}, 4, Params{Page: 2, Limit: 2})
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

func TestNewPage_Empty(t *testing.T) {
	page := NewPage[string](nil, 0, Params{Page: 1, Limit: 20})

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.ItemsInPage)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

// The pagination law: page metadata must agree with the underlying counts
// for every page of a result set.
func TestNewPage_ConsistentAcrossPages(t *testing.T) {
	total := 10
	limit := 3

	for page := 1; page <= 4; page++ {
		inPage := limit
		if page == 4 {
			inPage = 1
		}
		items := make([]int, inPage)

		p := NewPage(items, total, Params{Page: page, Limit: limit})
		assert.Equal(t, 4, p.TotalPages)
		assert.Equal(t, page < 4, p.HasNext, "page %d", page)
		assert.Equal(t, page > 1, p.HasPrev, "page %d", page)
	}
}
