package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gwngdwl/otzindex/pkg/core"
)

func TestBuildCategoryPathsRootToLeaf(t *testing.T) {
	categories := map[int64]core.Category{
		1: {ID: 1, Title: "תנ״ך"},
		2: {ID: 2, Title: "תורה", ParentID: 1, HasParent: true},
		3: {ID: 3, Title: "בראשית", ParentID: 2, HasParent: true},
	}

	paths := buildCategoryPaths(categories)

	assert.Equal(t, "תנ״ך", paths[1])
	assert.Equal(t, "תנ״ך/תורה", paths[2])
	assert.Equal(t, "תנ״ך/תורה/בראשית", paths[3])
}

func TestBuildCategoryPathsMissingParent(t *testing.T) {
	categories := map[int64]core.Category{
		5: {ID: 5, Title: "יתום", ParentID: 999, HasParent: true},
	}

	paths := buildCategoryPaths(categories)

	assert.Equal(t, "יתום", paths[5])
}

func TestBuildCategoryPathsCycleIsCapped(t *testing.T) {
	categories := map[int64]core.Category{
		1: {ID: 1, Title: "a", ParentID: 2, HasParent: true},
		2: {ID: 2, Title: "b", ParentID: 1, HasParent: true},
	}

	paths := buildCategoryPaths(categories)

	parts := strings.Split(paths[1], "/")
	assert.LessOrEqual(t, len(parts), core.MaxCategoryDepth)
	assert.Len(t, parts, core.MaxCategoryDepth)
}

func TestBuildCategoryPathsEmptyMap(t *testing.T) {
	assert.Empty(t, buildCategoryPaths(map[int64]core.Category{}))
}
