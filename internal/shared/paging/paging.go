// Package paging carries page requests from adapters to stores and the paged
// views returned to callers.
package paging

import (
	"errors"
	"math"
)

const (
	// DefaultPageNumber is the zero-based page used when a caller omits one.
	DefaultPageNumber = 0
	// DefaultPageSize is the page size used when a caller omits one.
	DefaultPageSize = 5
	// MaxPageSize bounds a single page.
	MaxPageSize = 100
)

var (
	ErrNegativePageNumber = errors.New("page number must not be negative")
	ErrInvalidPageSize    = errors.New("page size must be between 1 and 100")
	ErrPageOutOfRange     = errors.New("page number is out of range")
)

// Request selects a zero-based page of a fixed size.
type Request struct {
	Number int
	Size   int
}

// NewRequest validates the page coordinates. The offset of an accepted
// request always fits in an int.
func NewRequest(number, size int) (Request, error) {
	if number < 0 {
		return Request{}, ErrNegativePageNumber
	}
	if size < 1 || size > MaxPageSize {
		return Request{}, ErrInvalidPageSize
	}
	if number > (math.MaxInt-size)/size {
		return Request{}, ErrPageOutOfRange
	}
	return Request{Number: number, Size: size}, nil
}

// Offset is the number of records preceding the page.
func (r Request) Offset() int {
	return r.Number * r.Size
}

// Page is what a store returns for a Request: the slice plus the number of
// records matching the query overall.
type Page[T any] struct {
	Items         []T
	TotalElements int64
}

// Result is the read-only view handed to API callers.
type Result[T any] struct {
	Items      []T
	PageNumber int
	TotalPages int
}

// NewResult repackages a store page for the given request.
func NewResult[T any](page Page[T], req Request) *Result[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return &Result[T]{
		Items:      items,
		PageNumber: req.Number,
		TotalPages: TotalPages(page.TotalElements, req.Size),
	}
}

// TotalPages rounds total/size up. A non-positive size yields zero pages.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Map converts the items of a result, keeping the page metadata.
func Map[T, U any](r *Result[T], fn func(T) U) *Result[U] {
	if r == nil {
		return nil
	}
	items := make([]U, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, fn(item))
	}
	return &Result[U]{Items: items, PageNumber: r.PageNumber, TotalPages: r.TotalPages}
}

// Slice cuts the requested page out of an already ordered in-memory list.
func Slice[T any](all []T, req Request) []T {
	start := req.Offset()
	if start < 0 || start >= len(all) {
		return []T{}
	}
	end := start + req.Size
	if end > len(all) || end < start {
		end = len(all)
	}
	out := make([]T, end-start)
	copy(out, all[start:end])
	return out
}
