package vikey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectWords(line string, w Word) []string {
	it := NewWordIter(line, w)
	var words []string
	for {
		_, slice, ok := it.Next()
		if !ok {
			break
		}
		words = append(words, slice)
	}
	return words
}

func TestWordIterLowerSplitsKeywordsAndPunctuation(t *testing.T) {
	words := collectWords("foo.bar  baz_qux", WordLower)
	require.Equal(t, []string{"foo", ".", "bar", "baz_qux"}, words)
}

func TestWordIterUpperTreatsNonBlankRunsAsOneWord(t *testing.T) {
	words := collectWords("foo.bar  baz_qux", WordUpper)
	require.Equal(t, []string{"foo.bar", "baz_qux"}, words)
}

func TestWordIterOffsetsAreByteBased(t *testing.T) {
	it := NewWordIter("  hi there", WordLower)

	start, slice, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 2, start)
	require.Equal(t, "hi", slice)

	start, slice, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, 5, start)
	require.Equal(t, "there", slice)

	_, _, ok = it.Next()
	require.False(t, ok)
}

func TestWordIterEmptyLineYieldsNothing(t *testing.T) {
	_, _, ok := NewWordIter("", WordLower).Next()
	require.False(t, ok)
}

func TestWordIterIsRestartable(t *testing.T) {
	it := NewWordIter("one two", WordLower)
	_, _, _ = it.Next()

	fresh := NewWordIter("one two", WordLower)
	start, slice, ok := fresh.Next()
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, "one", slice)
}
