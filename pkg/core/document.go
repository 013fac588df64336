// Package core defines the domain types shared across the index builder, the
// query compiler, and the search engine: the indexed document shape, the
// search request/response contracts, and their building blocks.
package core

// Book is the read-only book metadata entity consumed by the index builder.
type Book struct {
	Title       string
	ID          int64
	CategoryID  int64
	HasCategory bool
}

// Category is a node in the category forest. ParentID is only meaningful
// when HasParent is true; a node with HasParent == false is a root.
type Category struct {
	Title     string
	ID        int64
	ParentID  int64
	HasParent bool
}

// ContentLine is a single source row consumed by the index builder.
type ContentLine struct {
	Content   string
	HeRef     string
	ID        int64
	BookID    int64
	LineIndex int32
}

// Document is one indexed unit: one per non-empty ContentLine, denormalized
// with its book title and category path. See spec.md §3 for the field table.
type Document struct {
	BookTitle    string
	CategoryPath string
	Content      string
	HeRef        string
	LineID       int64
	BookID       int64
	LineIndex    int32
}

// MaxCategoryDepth caps the number of hops walked from a category node to its
// root. It defends against cyclic or malformed parent chains in the source
// data: the walk simply stops and the path is built from whatever titles were
// collected, rather than looping or erroring.
const MaxCategoryDepth = 20
