package radixtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byteViews(keys ...string) [][]byte {
	views := make([][]byte, len(keys))
	for i, k := range keys {
		views[i] = []byte(k)
	}
	return views
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func TestCalcBestIndexSingleton(t *testing.T) {
	views := byteViews("anything")
	ndx, err := calcBestIndex(views, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 0, ndx)
}

func TestCalcBestIndexPrefersHigherSelectivity(t *testing.T) {
	// position 0 is 'a' for both keys (no selectivity); position 1
	// distinguishes 'p' and 'q'.
	views := byteViews("ap", "aq")
	ndx, err := calcBestIndex(views, allIndexes(2))
	require.NoError(t, err)
	assert.Equal(t, 1, ndx)
}

func TestCalcBestIndexPrefixFamilyDoesNotLoopForever(t *testing.T) {
	// "a", "aa", "aaa": every existing column has exactly one distinct
	// byte, so the heuristic must not get stuck recursing on ndx=0.
	views := byteViews("a", "aa", "aaa")
	ndx, err := calcBestIndex(views, allIndexes(3))
	require.NoError(t, err)
	// every existing column has exactly one distinct byte, so the first
	// one found (scanning from maxLen-1 down to 0) wins: ndx=2.
	assert.Equal(t, 2, ndx)
}

func TestCalcBestIndexDuplicateKeys(t *testing.T) {
	views := byteViews("aaaa", "aaaa")
	_, err := calcBestIndex(views, allIndexes(2))
	assert.ErrorIs(t, err, ErrDuplicateKeys)
}

func TestBuildLoneEmptyKey(t *testing.T) {
	// A single empty-string key routes entirely into the short-key
	// bucket: minSlot/maxSlot never leave their sentinel values, and the
	// node must still build as a one-leaf node rather than erroring.
	views := byteViews("")
	root, err := Build(views, allIndexes(1))
	require.NoError(t, err)
	require.Len(t, root.children, 1)
	assert.Equal(t, childLeaf, root.children[0].kind)
	assert.Equal(t, 0, root.children[0].leaf)

	buf, rootOffset, err := Flatten(root, 0)
	require.NoError(t, err)

	idx, ok := Lookup(buf, rootOffset, []byte(""), func(cand int) bool {
		return cand == 0
	})
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	// A non-empty query key has a byte at ndx that this node, holding
	// only the short-key slot, can never match.
	idx, ok = Lookup(buf, rootOffset, []byte("x"), func(int) bool { return true })
	assert.False(t, ok)
	assert.Zero(t, idx)
}

func TestBuildDuplicateEmptyKeys(t *testing.T) {
	views := byteViews("", "")
	_, err := Build(views, allIndexes(2))
	assert.ErrorIs(t, err, ErrDuplicateKeys)
}

func TestBuildAndFlattenRoundTrip(t *testing.T) {
	keys := []string{"apple", "banana", "cherry"}
	views := byteViews(keys...)
	root, err := Build(views, allIndexes(len(keys)))
	require.NoError(t, err)

	buf, rootOffset, err := Flatten(root, 0)
	require.NoError(t, err)
	require.NotZero(t, rootOffset)

	for i, k := range keys {
		kb := []byte(k)
		idx, ok := Lookup(buf, rootOffset, kb, func(cand int) bool {
			return cand == i
		})
		assert.True(t, ok)
		assert.Equal(t, i, idx)
	}
}

func TestAveragePathLengthNonNegative(t *testing.T) {
	views := byteViews("a", "aa", "aaa", "apple", "apply")
	root, err := Build(views, allIndexes(len(views)))
	require.NoError(t, err)
	avg := root.AveragePathLength(len(views))
	assert.GreaterOrEqual(t, avg, 0.0)
}
