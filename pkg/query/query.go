// Package query compiles a core.SearchRequest into a Bleve query tree
// (spec.md §4.4). Default mode escapes the whole query and matches it as a
// conjunction ("AND") of literal terms against content. Wildcard mode
// strips diacritics, classifies each term's characters, and builds a
// conjunction of wildcard term queries directly against content's term
// dictionary -- bypassing Bleve's textual query-string grammar entirely, so
// that a leading '*' or '?' is never rejected by a parser flag that was
// never designed to allow it.
package query

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	bquery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/gwngdwl/otzindex/pkg/core"
	"github.com/gwngdwl/otzindex/pkg/textnorm"
)

// Compile translates req into a query tree ready to hand to the search
// engine. The caller must have already rejected a blank req.Query via
// req.IsBlank -- Compile does not special-case it.
func Compile(req core.SearchRequest) (bquery.Query, error) {
	var (
		contentQuery bquery.Query
		err          error
	)

	if req.WildcardMode {
		contentQuery, err = compileWildcard(req.Query)
	} else {
		contentQuery, err = compileDefault(req.Query)
	}

	if err != nil {
		return nil, err
	}

	return applyFilters(contentQuery, req.BookFilter, req.CategoryFilter), nil
}

// compileDefault escapes text, "parses" the escaped form back into literal
// terms, and builds a conjunction of per-term match queries against content
// (spec.md §4.4 default mode). A MatchQuery runs the field's own analyzer
// over the term, so a stored term that was itself tag-stripped and
// diacritic-folded at index time still matches a raw query term typed with
// diacritics or markup.
func compileDefault(text string) (bquery.Query, error) {
	terms := splitEscapedTerms(EscapeDefault(text))
	if len(terms) == 0 {
		return bleve.NewMatchNoneQuery(), nil
	}

	clauses := make([]bquery.Query, 0, len(terms))

	for _, term := range terms {
		mq := bleve.NewMatchQuery(term)
		mq.SetField(core.FieldContent)
		clauses = append(clauses, mq)
	}

	if len(clauses) == 1 {
		return clauses[0], nil
	}

	return bleve.NewConjunctionQuery(clauses...), nil
}

// compileWildcard implements spec.md §4.4 wildcard mode: diacritics are
// stripped first so a query typed with nikud still matches folded index
// terms, then the text is split on ASCII space and each term is validated
// and compiled into a WildcardQuery.
func compileWildcard(text string) (bquery.Query, error) {
	normalized := textnorm.RemoveDiacritics(text)
	rawTerms := strings.Split(normalized, " ")

	clauses := make([]bquery.Query, 0, len(rawTerms))

	for _, raw := range rawTerms {
		if raw == "" {
			continue
		}

		scan := scanWildcardTerm(raw)

		if scan.hasWildcard && !scan.hasRegular {
			return nil, fmt.Errorf("%w: wildcard term %q has no regular character to anchor the search",
				core.ErrInvalidRequest, raw)
		}

		pattern := strings.ToLower(scan.escaped)

		wq := bleve.NewWildcardQuery(pattern)
		wq.SetField(core.FieldContent)
		clauses = append(clauses, wq)
	}

	if len(clauses) == 0 {
		return bleve.NewMatchNoneQuery(), nil
	}

	if len(clauses) == 1 {
		return clauses[0], nil
	}

	return bleve.NewConjunctionQuery(clauses...), nil
}

// applyFilters wraps contentQuery with the book_filter (exact term match)
// and category_filter (substring wildcard match) clauses, when present
// (spec.md §4.4, §6). Neither filter is itself subject to the wildcard- or
// default-mode term escaping above: book_filter matches a keyword field
// exactly, and category_filter's substring wildcard escapes only the query
// engine's own special characters so arbitrary category titles can be
// searched literally.
func applyFilters(contentQuery bquery.Query, bookFilter, categoryFilter string) bquery.Query {
	clauses := []bquery.Query{contentQuery}

	if strings.TrimSpace(bookFilter) != "" {
		tq := bleve.NewTermQuery(bookFilter)
		tq.SetField(core.FieldBookTitle)
		clauses = append(clauses, tq)
	}

	if strings.TrimSpace(categoryFilter) != "" {
		pattern := "*" + escapeWildcardLiteral(categoryFilter) + "*"

		wq := bleve.NewWildcardQuery(pattern)
		wq.SetField(core.FieldCategoryPath)
		clauses = append(clauses, wq)
	}

	if len(clauses) == 1 {
		return clauses[0]
	}

	return bleve.NewConjunctionQuery(clauses...)
}
