// Package analyzer builds the Bleve index mapping and the shared Hebrew
// analyzer used to tokenize both indexed content and query terms (spec.md
// §4.2). The same analyzer instance backs the content and book_title_search
// fields during indexing and the default-mode query compiler during
// searching, so corpus and query share one lexical surface.
package analyzer

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/registry"

	"github.com/gwngdwl/otzindex/pkg/core"
	"github.com/gwngdwl/otzindex/pkg/textnorm"
)

// Name is the registered analyzer name used by the "content" and
// "book_title_search" field mappings.
const Name = "hebrew"

const (
	charFilterName  = "hebrew_strip_markup"
	tokenFilterName = "hebrew_remove_diacritics"
)

func init() {
	err := registry.RegisterCharFilter(charFilterName,
		func(_ map[string]interface{}, _ *registry.Cache) (analysis.CharFilter, error) {
			return markupCharFilter{}, nil
		})
	if err != nil {
		panic(err)
	}

	err = registry.RegisterTokenFilter(tokenFilterName,
		func(_ map[string]interface{}, _ *registry.Cache) (analysis.TokenFilter, error) {
			return diacriticTokenFilter{}, nil
		})
	if err != nil {
		panic(err)
	}
}

// markupCharFilter is a Bleve CharFilter that strips HTML-like tags before
// tokenization (spec.md §4.2 step 1).
type markupCharFilter struct{}

func (markupCharFilter) Filter(input []byte) []byte {
	stripped := textnorm.StripMarkup(string(input))
	return []byte(stripped)
}

// diacriticTokenFilter is a Bleve TokenFilter that removes Hebrew diacritics
// from each token after tokenization and lowercasing, discarding any token
// that becomes empty (spec.md §4.2 step 4).
type diacriticTokenFilter struct{}

func (diacriticTokenFilter) Filter(input analysis.TokenStream) analysis.TokenStream {
	out := make(analysis.TokenStream, 0, len(input))

	for _, tok := range input {
		cleaned := textnorm.RemoveDiacritics(string(tok.Term))
		if cleaned == "" {
			continue
		}

		tok.Term = []byte(cleaned)
		out = append(out, tok)
	}

	return out
}

// BuildMapping constructs the index mapping for the corpus: content and
// book_title_search use the shared Hebrew analyzer; book_title and
// category_path are exact/wildcard-capable keyword fields; book_id,
// line_id, line_index, and he_ref are stored but not indexed for full text
// (book_id remains indexed as an exact numeric filter per spec.md §3).
func BuildMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()

	if err := im.AddCustomCharFilter(charFilterName, map[string]interface{}{
		"type": charFilterName,
	}); err != nil {
		panic(err)
	}

	if err := im.AddCustomTokenFilter(tokenFilterName, map[string]interface{}{
		"type": tokenFilterName,
	}); err != nil {
		panic(err)
	}

	if err := im.AddCustomAnalyzer(Name, map[string]interface{}{
		"type":          "custom",
		"char_filters":  []string{charFilterName},
		"tokenizer":     "unicode",
		"token_filters": []string{"lowercase", tokenFilterName},
	}); err != nil {
		panic(err)
	}

	docMapping := bleve.NewDocumentMapping()

	analyzed := bleve.NewTextFieldMapping()
	analyzed.Analyzer = Name
	analyzed.Store = true
	analyzed.IncludeTermVectors = true

	analyzedNotStored := bleve.NewTextFieldMapping()
	analyzedNotStored.Analyzer = Name
	analyzedNotStored.Store = false

	keyword := bleve.NewKeywordFieldMapping()
	keyword.Store = true

	numeric := bleve.NewNumericFieldMapping()
	numeric.Store = true

	storedOnlyText := bleve.NewTextFieldMapping()
	storedOnlyText.Store = true
	storedOnlyText.Index = false

	storedOnlyNumeric := bleve.NewNumericFieldMapping()
	storedOnlyNumeric.Store = true
	storedOnlyNumeric.Index = false

	docMapping.AddFieldMappingsAt(core.FieldContent, analyzed)
	docMapping.AddFieldMappingsAt(core.FieldBookTitleSearch, analyzedNotStored)
	docMapping.AddFieldMappingsAt(core.FieldBookTitle, keyword)
	docMapping.AddFieldMappingsAt(core.FieldCategoryPath, keyword)
	docMapping.AddFieldMappingsAt(core.FieldBookID, numeric)
	docMapping.AddFieldMappingsAt(core.FieldLineID, storedOnlyNumeric)
	docMapping.AddFieldMappingsAt(core.FieldLineIndex, storedOnlyNumeric)
	docMapping.AddFieldMappingsAt(core.FieldHeRef, storedOnlyText)

	im.DefaultMapping = docMapping
	im.DefaultAnalyzer = Name

	return im
}
