package radixtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenSentinelAtOffsetZero(t *testing.T) {
	views := byteViews("only")
	root, err := Build(views, allIndexes(1))
	require.NoError(t, err)

	buf, rootOffset, err := Flatten(root, 0)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), buf[0], "offset 0 must stay the sentinel word")
	assert.NotZero(t, rootOffset, "a real node's offset must never be 0")
}

func TestFlattenCapacityExceeded(t *testing.T) {
	// A single leaf whose KeyValue index does not fit the 31 usable bits
	// of the (idx<<1)|1 tag must be rejected, without constructing
	// billions of real entries to trigger it.
	n := &Node{
		minSlot: 'a',
		maxSlot: 'a',
		children: []child{
			{kind: childLeaf, leaf: maxLeafIndex + 1},
			{kind: childEmpty},
		},
	}
	_, _, err := Flatten(n, 0)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestFlattenPostOrderChildBeforeParent(t *testing.T) {
	views := byteViews("a", "aa", "aaa", "apple", "apply")
	root, err := Build(views, allIndexes(len(views)))
	require.NoError(t, err)

	buf, rootOffset, err := Flatten(root, 0)
	require.NoError(t, err)

	// Every link code in the buffer must point at an offset that was
	// already written (i.e. is < the position that references it),
	// since children are flattened before their parent's header.
	for o := uint32(1); o < uint32(len(buf)); {
		ndx := buf[o]
		_ = ndx
		slots := buf[o+1]
		min := slots & 0xFF
		max := (slots >> 8) & 0xFF
		count := int(max-min) + 2
		for i := 0; i < count; i++ {
			code := buf[o+2+uint32(i)]
			if !isEmpty(code) && !isLeaf(code) {
				assert.Less(t, linkOffset(code), o, "link at %d points forward to %d", o, linkOffset(code))
			}
		}
		o += uint32(2 + count)
	}
	_ = rootOffset
}
