// Package search filters gallery cards by id and breed name.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/gatos/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Match is one card that satisfied a filter query
type Match struct {
	Index          int   // Index in the source slice
	MatchedIndexes []int // Byte offsets into the image's Label(), nil for fallback matches
}

// labelSource implements sahilm/fuzzy.Source over image labels.
// Labels are not lowercased: sahilm folds case itself and the offsets must
// stay valid for the original label.
type labelSource []domain.Image

func (s labelSource) String(i int) string { return s[i].Label() }
func (s labelSource) Len() int            { return len(s) }

// Filter returns the images whose label fuzzily matches query, best match first.
// An empty query matches everything in source order.
//
// Subsequence matches are ranked by sahilm/fuzzy. When that finds nothing, a
// unicode-normalized pass catches accented breed names ("Ragdoll" vs "Rágdoll").
func Filter(query string, images []domain.Image) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		all := make([]Match, len(images))
		for i := range images {
			all[i] = Match{Index: i}
		}
		return all
	}

	found := fuzzy.FindFrom(query, labelSource(images))
	if len(found) > 0 {
		matches := make([]Match, len(found))
		for i, m := range found {
			matches[i] = Match{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
		}
		return matches
	}

	return normalizedFilter(query, images)
}

func normalizedFilter(query string, images []domain.Image) []Match {
	labels := make([]string, len(images))
	for i, img := range images {
		labels[i] = img.Label()
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, labels)
	if len(ranks) == 0 {
		return nil
	}
	sort.Stable(ranks)

	matches := make([]Match, len(ranks))
	for i, r := range ranks {
		matches[i] = Match{Index: r.OriginalIndex}
	}
	return matches
}

// Indexes flattens matches into their source indexes
func Indexes(matches []Match) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}
