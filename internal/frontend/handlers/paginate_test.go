package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbers(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginateSplitsTwelveIntoFiveFiveTwo(t *testing.T) {
	items := numbers(12)

	first := Paginate(items, "1", PageSize)
	second := Paginate(items, "2", PageSize)
	third := Paginate(items, "3", PageSize)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, first.Items)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, second.Items)
	assert.Equal(t, []int{11, 12}, third.Items)

	assert.Equal(t, 3, first.NumPages)
	assert.Equal(t, 12, first.Count)
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasNext())
	assert.True(t, third.HasPrevious())
	assert.False(t, third.HasNext())
	assert.Equal(t, 3, second.NextPageNumber())
	assert.Equal(t, 1, second.PreviousPageNumber())
}

func TestPaginateFallbacks(t *testing.T) {
	items := numbers(12)

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "missing page", raw: "", want: 1},
		{name: "not a number", raw: "abc", want: 1},
		{name: "past the end", raw: "9", want: 3},
		{name: "zero", raw: "0", want: 3},
		{name: "negative", raw: "-2", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(items, tt.raw, PageSize).Number)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, "4", PageSize)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.False(t, page.HasNext())
}
