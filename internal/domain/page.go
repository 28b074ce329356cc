package domain

import "strconv"

// PageToken is the cursor handed to clients. Internally it is an offset into insertion order.
type PageToken int

// ParsePageToken accepts the empty string as the first page.
func ParsePageToken(raw string) (PageToken, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrInvalidPageToken
	}
	return PageToken(n), nil
}

func (t PageToken) String() string {
	return strconv.Itoa(int(t))
}

// PageRequest selects a window of a collection.
type PageRequest struct {
	Token PageToken
	Size  int
}

// Page is one window of results. Next is nil on the last page.
type Page[T any] struct {
	Items []T
	Next  *PageToken
}

// Paginate cuts a window out of items, which must already be in insertion order.
func Paginate[T any](items []T, req PageRequest) Page[T] {
	start := int(req.Token)
	if start > len(items) {
		start = len(items)
	}
	end := start + req.Size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])

	page := Page[T]{Items: out}
	if start+req.Size < len(items) {
		next := PageToken(start + req.Size)
		page.Next = &next
	}
	return page
}
