package pagination

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, PerPage: DefaultPerPage}},
		{"custom", "page=3&per_page=10", Params{Page: 3, PerPage: 10}},
		{"negative page", "page=-1", Params{Page: 1, PerPage: DefaultPerPage}},
		{"zero page", "page=0", Params{Page: 1, PerPage: DefaultPerPage}},
		{"not a number", "page=abc&per_page=x", Params{Page: 1, PerPage: DefaultPerPage}},
		{"per_page cap", "per_page=101", Params{Page: 1, PerPage: DefaultPerPage}},
		{"per_page max", "per_page=100", Params{Page: 1, PerPage: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FromValues(v))
		})
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products?page=2&per_page=5", nil)
	p := FromRequest(r)

	assert.Equal(t, Params{Page: 2, PerPage: 5}, p)
	assert.Equal(t, 5, p.Offset())
}

func TestNewResult(t *testing.T) {
	r := NewResult([]int{1, 2}, 5, Params{Page: 2, PerPage: 2})

	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)

	empty := NewResult[int](nil, 0, DefaultParams())
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	first := Paginate(items, Params{Page: 1, PerPage: 2})
	last := Paginate(items, Params{Page: 3, PerPage: 2})
	past := Paginate(items, Params{Page: 9, PerPage: 2})

	assert.Equal(t, []string{"a", "b"}, first.Data)
	assert.Equal(t, []string{"e"}, last.Data)
	assert.False(t, last.HasNext)
	assert.Empty(t, past.Data)
	assert.Equal(t, 5, past.TotalCount)
}
