package snippet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUsesFirstFragmentWhenPresent(t *testing.T) {
	got := Build("בראשית ברא אלהים", []string{"בראשית <mark>ברא</mark> אלהים"})
	assert.Equal(t, "בראשית <mark>ברא</mark> אלהים", got)
}

func TestBuildFallsBackToPrefixWhenNoFragments(t *testing.T) {
	got := Build("בראשית ברא אלהים", nil)
	assert.Equal(t, "בראשית ברא אלהים", got)
}

func TestBuildPrefixTruncatesAndAppendsEllipsis(t *testing.T) {
	content := strings.Repeat("א", 300)

	got := Build(content, nil)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, maxChars+len("..."), len([]rune(got)))
}

func TestBuildShortContentIsNotTruncated(t *testing.T) {
	content := strings.Repeat("א", 10)

	got := Build(content, nil)

	assert.Equal(t, content, got)
}

func TestClampCountsOnlySourceCharactersNotMarkers(t *testing.T) {
	frag := "<mark>" + strings.Repeat("א", maxChars) + "</mark>"

	got := clamp(frag)

	assert.Equal(t, frag, got, "marker tags must not count against the character budget")
}

func TestClampTruncatesLongFragmentAndClosesOpenMark(t *testing.T) {
	frag := "<mark>" + strings.Repeat("א", maxChars+50) + "</mark>"

	got := clamp(frag)

	assert.True(t, strings.HasSuffix(got, "</mark>..."))
	assert.Equal(t, 1, strings.Count(got, "<mark>"))
	assert.Equal(t, 1, strings.Count(got, "</mark>"))
}

func TestClampNeverProducesUnbalancedMarkers(t *testing.T) {
	frag := "before <mark>" + strings.Repeat("בת", maxChars) + "</mark> after"

	got := clamp(frag)

	assert.Equal(t, strings.Count(got, "<mark>"), strings.Count(got, "</mark>"))
}
