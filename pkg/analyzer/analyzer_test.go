package analyzer

import (
	"testing"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/stretchr/testify/assert"
)

func TestMarkupCharFilterStripsTags(t *testing.T) {
	out := markupCharFilter{}.Filter([]byte("hello <b>world</b>"))
	assert.Equal(t, "hello  world ", string(out))
}

func TestDiacriticTokenFilterDropsEmptyTokens(t *testing.T) {
	in := analysis.TokenStream{
		{Term: []byte("֑֒")}, // only diacritics -- becomes empty
		{Term: []byte("ברא")},
	}

	out := diacriticTokenFilter{}.Filter(in)

	if assert.Len(t, out, 1) {
		assert.Equal(t, "ברא", string(out[0].Term))
	}
}

func TestBuildMappingDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		m := BuildMapping()
		assert.NotNil(t, m)
	})
}
