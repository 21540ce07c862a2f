package radixtree

import "github.com/pkg/errors"

// ErrCapacityExceeded is returned by Flatten when a leaf's KeyValue index
// would not survive the (idx<<1)|1 tag in 32 bits (spec.md 4.3, 2^31-1
// entries max).
var ErrCapacityExceeded = errors.New("radixtree: too many entries for a 32-bit leaf index")

const maxLeafIndex = 1<<31 - 1

// MaxEntries is the largest number of KeyValue pairs a Map can hold: the
// leaf tag (idx<<1)|1 must fit in 32 bits (spec.md 3, 7).
const MaxEntries = maxLeafIndex

// Flatten post-order serializes root into a single []uint32 buffer,
// writing every child record before the node that references it so a
// link's offset is already known when its parent's header is emitted
// (spec.md 4.3). capacityHint sizes the initial allocation; it need not be
// exact.
func Flatten(root *Node, capacityHint int) (buf []uint32, rootOffset uint32, err error) {
	b := newBuffer(capacityHint)
	off, err := root.flattenInto(&b)
	if err != nil {
		return nil, 0, err
	}
	return b, off, nil
}

func (n *Node) flattenInto(buf *[]uint32) (uint32, error) {
	codes := make([]uint32, len(n.children))
	for i, c := range n.children {
		switch c.kind {
		case childEmpty:
			codes[i] = 0
		case childLink:
			off, err := c.link.flattenInto(buf)
			if err != nil {
				return 0, err
			}
			codes[i] = linkCode(off)
		case childLeaf:
			if c.leaf > maxLeafIndex {
				return 0, ErrCapacityExceeded
			}
			codes[i] = leafCode(c.leaf)
		}
	}

	myOffset := uint32(len(*buf))
	*buf = append(*buf, uint32(n.ndx))
	*buf = append(*buf, uint32(n.minSlot)|uint32(n.maxSlot)<<8)
	*buf = append(*buf, codes...)
	return myOffset, nil
}
