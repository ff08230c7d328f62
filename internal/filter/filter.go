// Package filter narrows rendered rows and picker options by fuzzy match.
// It only computes views over a collection; it never changes one.
package filter

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Match is one row that matched a query
type Match struct {
	Index          int   // Index in source slice
	MatchedIndexes []int // Character positions that matched (for highlighting)
}

// Rows ranks titles against query, best first. An empty query returns nil,
// which callers treat as "no filter".
func Rows(query string, titles []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	lowerTitles := make([]string, len(titles))
	for i, t := range titles {
		lowerTitles[i] = strings.ToLower(t)
	}

	found := fuzzy.Find(strings.ToLower(query), lowerTitles)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return matches
}

// Indexes returns only the source indexes of a row match, or nil when query is empty
func Indexes(query string, titles []string) []int {
	matches := Rows(query, titles)
	if matches == nil {
		return nil
	}
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	return idx
}

// Options narrows picker labels by case-insensitive subsequence match,
// closest first, keeping source order among equal distances.
func Options(query string, labels []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		idx := make([]int, len(labels))
		for i := range labels {
			idx[i] = i
		}
		return idx
	}

	ranks := lfuzzy.RankFindFold(query, labels)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	idx := make([]int, len(ranks))
	for i, r := range ranks {
		idx[i] = r.OriginalIndex
	}
	return idx
}
