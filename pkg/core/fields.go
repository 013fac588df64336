package core

// Field names of the indexed document (spec.md §3). Shared by the analyzer's
// mapping, the query compiler, and the search engine so the three never
// drift apart on what a field is called.
const (
	FieldLineID          = "line_id"
	FieldHeRef           = "he_ref"
	FieldLineIndex       = "line_index"
	FieldBookID          = "book_id"
	FieldBookTitle       = "book_title"
	FieldCategoryPath    = "category_path"
	FieldContent         = "content"
	FieldBookTitleSearch = "book_title_search"
)

// IndexRecord is the wire shape of one indexed document, as handed to the
// underlying full-text engine. Field names match the `Field*` constants via
// the json tags below so the mapping, the writer, and the reader agree.
type IndexRecord struct {
	HeRef           string `json:"he_ref"`
	BookTitle       string `json:"book_title"`
	CategoryPath    string `json:"category_path"`
	Content         string `json:"content"`
	BookTitleSearch string `json:"book_title_search"`
	LineID          int64  `json:"line_id"`
	BookID          int64  `json:"book_id"`
	LineIndex       int32  `json:"line_index"`
}

// NewIndexRecord builds the wire record for doc, duplicating the analyzed
// book title into the secondary book_title_search signal (spec.md §3).
func NewIndexRecord(doc Document) IndexRecord {
	return IndexRecord{
		LineID:          doc.LineID,
		HeRef:           doc.HeRef,
		LineIndex:       doc.LineIndex,
		BookID:          doc.BookID,
		BookTitle:       doc.BookTitle,
		CategoryPath:    doc.CategoryPath,
		Content:         doc.Content,
		BookTitleSearch: doc.BookTitle,
	}
}
