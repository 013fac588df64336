package builder

import (
	"strings"

	"github.com/gwngdwl/otzindex/pkg/core"
)

// buildCategoryPaths precomputes the root-to-leaf category_path for every
// category_id in categories (spec.md §4.3 step 4). Each path is walked and
// cached independently, capped at core.MaxCategoryDepth hops: a malformed
// cycle simply falls through the cap and yields a partial path rather than
// looping or erroring.
func buildCategoryPaths(categories map[int64]core.Category) map[int64]string {
	cache := make(map[int64]string, len(categories))

	for id := range categories {
		resolveCategoryPath(id, categories, cache)
	}

	return cache
}

func resolveCategoryPath(id int64, categories map[int64]core.Category, cache map[int64]string) string {
	if path, ok := cache[id]; ok {
		return path
	}

	titles := make([]string, 0, core.MaxCategoryDepth)

	cur, ok := categories[id]

	for depth := 0; ok && depth < core.MaxCategoryDepth; depth++ {
		titles = append(titles, cur.Title)

		if !cur.HasParent {
			break
		}

		parent, exists := categories[cur.ParentID]
		if !exists {
			break
		}

		cur = parent
	}

	// titles were collected leaf-to-root; reverse to root-to-leaf.
	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}

	path := strings.Join(titles, "/")
	cache[id] = path

	return path
}
