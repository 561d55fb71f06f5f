// Package decl models the structural declaration tree the parser
// produces. Declarations live in a flat arena and refer to each other
// by index, never by pointer, so the tree stays acyclic — the same
// ownership discipline the analyzer audits in Klar code.
package decl

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a flat, index-addressed store. IDs are 1-based; 0 means
// "no declaration".
type Arena[T any] struct {
	data []T
}

func lenAsID[T any](data []T) uint32 {
	n, err := safecast.Conv[uint32](len(data))
	if err != nil {
		panic(fmt.Errorf("arena size overflow: %w", err))
	}
	return n
}

// NewArena creates an arena with the given capacity hint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores a value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return lenAsID(a.data)
}

// Get returns a pointer to the element with the given 1-based index,
// or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice returns the backing store. Read-only for callers.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len returns the number of allocated elements.
func (a *Arena[T]) Len() uint32 {
	return lenAsID(a.data)
}
