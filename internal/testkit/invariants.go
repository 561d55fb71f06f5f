// Package testkit holds shared assertions for parser and rule tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"klarlint/internal/decl"
	"klarlint/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every top-level declaration span is non-empty and fully contained in file.Span
// 3) file.Span covers the union of declaration spans (if any exist)
func CheckSpanInvariants(df *decl.File, sf *source.File) error {
	if df == nil || sf == nil {
		return fmt.Errorf("nil decl file or source file")
	}

	// 1) file span sanity
	if df.Span.End <= df.Span.Start {
		return fmt.Errorf("file span is empty: %v", df.Span)
	}
	if df.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", df.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if df.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", df.Span.End, lenContent)
	}

	// 2) declaration spans within file span; 3) file covers union
	var union source.Span
	var have bool
	for _, id := range df.Top {
		d := df.Get(id)
		if d == nil {
			return fmt.Errorf("nil declaration for id=%d", id)
		}
		sp := d.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty declaration span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("declaration span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < df.Span.Start || sp.End > df.Span.End {
			return fmt.Errorf("declaration span %v is outside file span %v", sp, df.Span)
		}
		if !have {
			union = sp
			have = true
		} else {
			union = union.Cover(sp)
		}
	}

	if have {
		if union.Start < df.Span.Start || union.End > df.Span.End {
			return fmt.Errorf("file span %v does not cover union of declarations %v", df.Span, union)
		}
	}
	return nil
}
