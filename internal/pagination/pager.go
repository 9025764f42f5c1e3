// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pagination splits a fetched list into fixed-size pages.
//
// # Key Types
//
//   - Pager: generic page cursor over an immutable slice
//
// # Usage
//
//	p := pagination.New(chapters, 10)
//	for _, c := range p.CurrentItems() {
//	    fmt.Println(c.Label())
//	}
//	p.Next()
package pagination

// DefaultPageSize is used when a non-positive size is requested.
const DefaultPageSize = 10

// Pager tracks the current page over items. The zero value is an empty pager
// with DefaultPageSize.
type Pager[T any] struct {
	items    []T
	pageSize int
	page     int
}

// New creates a pager positioned on the first page.
func New[T any](items []T, pageSize int) *Pager[T] {
	p := &Pager[T]{pageSize: pageSize}
	p.SetItems(items)
	return p
}

// SetItems replaces the list wholesale and returns to the first page.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.page = 0
}

// Items returns every item regardless of page.
func (p *Pager[T]) Items() []T {
	return p.items
}

// PageSize returns the effective page size.
func (p *Pager[T]) PageSize() int {
	if p.pageSize <= 0 {
		return DefaultPageSize
	}
	return p.pageSize
}

// Page returns the zero-based current page.
func (p *Pager[T]) Page() int {
	return p.page
}

// TotalPages is ceil(len/pageSize); zero for an empty list.
func (p *Pager[T]) TotalPages() int {
	size := p.PageSize()
	return (len(p.items) + size - 1) / size
}

// CurrentItems returns the slice of items on the current page.
func (p *Pager[T]) CurrentItems() []T {
	size := p.PageSize()
	start := p.page * size
	if start >= len(p.items) {
		return nil
	}
	end := start + size
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// HasNext reports whether Next would move.
func (p *Pager[T]) HasNext() bool {
	return p.page+1 < p.TotalPages()
}

// HasPrev reports whether Prev would move.
func (p *Pager[T]) HasPrev() bool {
	return p.page > 0
}

// Next advances one page. It returns false at the last page.
func (p *Pager[T]) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.page++
	return true
}

// Prev goes back one page. It returns false at the first page.
func (p *Pager[T]) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.page--
	return true
}

// GoTo jumps to a zero-based page, clamped to the valid range.
func (p *Pager[T]) GoTo(page int) {
	last := p.TotalPages() - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	p.page = page
}

// Offset returns the index in Items of the first item on the current page.
func (p *Pager[T]) Offset() int {
	return p.page * p.PageSize()
}
