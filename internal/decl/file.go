package decl

import (
	"klarlint/internal/source"
)

// UnsafeRegion is one `unsafe { ... }` block found in a function body,
// together with the nearest preceding comment inside the look-back
// window (same line or the line immediately above).
type UnsafeRegion struct {
	Span source.Span
	// Comment is the raw text of the nearest preceding comment, empty
	// when none was found in the window.
	Comment string
	// HasSafety is true when that comment is a SAFETY: comment.
	HasSafety bool
	// Owner is the function declaration containing the region.
	Owner ID
}

// File is the parse result for one source file: the declaration arena,
// the top-level declaration list, and extracted unsafe regions.
type File struct {
	FileID source.FileID
	Span   source.Span

	arena *Arena[Decl]
	// Top lists top-level declarations in source order.
	Top []ID
	// Unsafes lists unsafe regions in source order.
	Unsafes []UnsafeRegion
}

// NewFile creates an empty parse result for the given source file.
func NewFile(fileID source.FileID) *File {
	return &File{
		FileID: fileID,
		arena:  NewArena[Decl](32),
	}
}

// Add allocates a declaration and returns its ID.
func (f *File) Add(d Decl) ID {
	return ID(f.arena.Allocate(d))
}

// Get returns the declaration with the given ID, or nil.
func (f *File) Get(id ID) *Decl {
	return f.arena.Get(uint32(id))
}

// Len returns the number of declarations in the arena.
func (f *File) Len() int {
	return int(f.arena.Len())
}

// All returns the backing declaration slice in allocation order.
// Read-only for callers; ID(i+1) addresses All()[i].
func (f *File) All() []Decl {
	return f.arena.Slice()
}

// Walk calls fn for every declaration with its ID, in allocation order.
func (f *File) Walk(fn func(id ID, d *Decl)) {
	decls := f.arena.Slice()
	for i := range decls {
		fn(ID(i+1), &decls[i]) //nolint:gosec // arena indices fit uint32
	}
}
