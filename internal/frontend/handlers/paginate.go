package handlers

import "strconv"

// PageSize is the number of records shown per list page
const PageSize = 5

// Page is one client-side page of an already fetched list
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int
}

// HasNext reports whether a page follows this one
func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

// HasPrevious reports whether a page precedes this one
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// NextPageNumber is the number of the following page
func (p Page[T]) NextPageNumber() int { return p.Number + 1 }

// PreviousPageNumber is the number of the preceding page
func (p Page[T]) PreviousPageNumber() int { return p.Number - 1 }

// Paginate returns the requested page of items. A page that is not a number
// falls back to the first page, one out of range falls back to the last.
func Paginate[T any](items []T, raw string, size int) Page[T] {
	numPages := (len(items) + size - 1) / size
	if numPages == 0 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	start := (number - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:    items[start:end],
		Number:   number,
		NumPages: numPages,
		Count:    len(items),
	}
}
