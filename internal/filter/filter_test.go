package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowsEmptyQueryMeansNoFilter(t *testing.T) {
	require.Nil(t, Rows("  ", []string{"a", "b"}))
	require.Nil(t, Indexes("", []string{"a"}))
}

func TestRowsMatchCaseInsensitively(t *testing.T) {
	titles := []string{"Sport Italia", "News 24", "Cinema Classics"}

	idx := Indexes("NEWS", titles)
	require.Equal(t, []int{1}, idx)

	matches := Rows("cin", titles)
	require.Len(t, matches, 1)
	require.Equal(t, 2, matches[0].Index)
	require.Equal(t, []int{0, 1, 2}, matches[0].MatchedIndexes)
}

func TestRowsNoMatch(t *testing.T) {
	require.Empty(t, Indexes("zzz", []string{"News"}))
}

func TestOptions(t *testing.T) {
	labels := []string{"Films HD", "Series", "films"}

	require.Equal(t, []int{0, 1, 2}, Options("", labels))
	require.Equal(t, []int{2, 0}, Options("FILMS", labels))
	require.Empty(t, Options("xyz", labels))
}
