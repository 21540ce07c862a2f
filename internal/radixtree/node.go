package radixtree

import "github.com/pkg/errors"

// ErrDuplicateKeys is returned by Build when two or more of the supplied
// key indexes carry bytewise-identical keys (spec.md 4.1 step 4).
var ErrDuplicateKeys = errors.New("radixtree: keys are not unique")

// childKind identifies what a slot in a Node's children array holds.
type childKind uint8

const (
	childEmpty childKind = iota
	childLeaf
	childLink
)

// child is one entry in a Node's slot array: empty, a leaf pointing at a
// single KeyValue index, or a link to another Node (spec.md 3).
type child struct {
	kind childKind
	leaf int
	link *Node
}

// Node is a transient builder node. It exists only during construction; the
// whole tree is discarded once Flatten has produced the buffer.
type Node struct {
	ndx      int
	minSlot  int
	maxSlot  int
	children []child // len == slotSize(minSlot, maxSlot), or 1 when minSlot > maxSlot; last entry is the short-key slot
}

func slotSize(minSlot, maxSlot int) int {
	if maxSlot < minSlot {
		return 0
	}
	return maxSlot - minSlot + 2
}

// Build recursively partitions indexes (positions into keyBytes) into a
// Node tree, choosing a discriminating byte position at each level via
// calcBestIndex (spec.md 4.1) and recursing on buckets of size >= 2
// (spec.md 4.2). indexes must be non-empty; Build is never called on an
// empty bucket by construction (the caller collapses singleton and empty
// buckets before recursing).
func Build(keyBytes [][]byte, indexes []int) (*Node, error) {
	n := &Node{minSlot: 255, maxSlot: 0}
	if err := n.initialize(keyBytes, indexes); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) initialize(keyBytes [][]byte, indexes []int) error {
	ndx, err := calcBestIndex(keyBytes, indexes)
	if err != nil {
		return err
	}
	n.ndx = ndx

	var buckets [256][]int
	var shortBucket []int
	minSlot, maxSlot := 255, 0

	for _, i := range indexes {
		if len(keyBytes[i]) > ndx {
			b := int(keyBytes[i][ndx])
			buckets[b] = append(buckets[b], i)
			if b < minSlot {
				minSlot = b
			}
			if b > maxSlot {
				maxSlot = b
			}
		} else {
			shortBucket = append(shortBucket, i)
		}
	}
	n.minSlot, n.maxSlot = minSlot, maxSlot

	count := slotSize(minSlot, maxSlot)
	if count == 0 {
		// Every key in indexes is <= ndx bytes long: no byte bucket was
		// ever populated, so minSlot/maxSlot are still at their sentinel
		// values (minSlot > maxSlot). The only way this happens is every
		// key in indexes being the empty byte string. One such key is a
		// valid one-entry node holding just the short-key slot; two or
		// more are bytewise-identical keys, which New must reject.
		if len(indexes) >= 2 {
			return ErrDuplicateKeys
		}
		n.children = []child{{kind: childLeaf, leaf: indexes[0]}}
		return nil
	}
	n.children = make([]child, count)

	for b := minSlot; b <= maxSlot; b++ {
		if err := n.insertSlot(keyBytes, buckets[b], b-minSlot); err != nil {
			return err
		}
	}
	return n.insertSlot(keyBytes, shortBucket, maxSlot-minSlot+1)
}

func (n *Node) insertSlot(keyBytes [][]byte, bucket []int, slotIdx int) error {
	switch len(bucket) {
	case 0:
		// leaves the zero value, childEmpty
	case 1:
		n.children[slotIdx] = child{kind: childLeaf, leaf: bucket[0]}
	default:
		sub, err := Build(keyBytes, bucket)
		if err != nil {
			return err
		}
		n.children[slotIdx] = child{kind: childLink, link: sub}
	}
	return nil
}

// calcBestIndex chooses the byte position that maximizes selectivity while
// minimizing slot width, per spec.md 4.1. Scanning runs from the longest
// key's last byte down to 0 so that pure-prefix families (a, aa, aaa),
// where every column has an equal, trivially-unique character count,
// don't trap the heuristic into recursing forever on ndx=0.
func calcBestIndex(keyBytes [][]byte, indexes []int) (int, error) {
	if len(indexes) == 1 {
		return 0, nil
	}

	minLen, maxLen := len(keyBytes[indexes[0]]), 0
	for _, i := range indexes {
		l := len(keyBytes[i])
		if l > maxLen {
			maxLen = l
		}
		if l < minLen {
			minLen = l
		}
	}

	const noSlotWidth = 256
	bestCount, bestSlotWidth, bestNdx := 0, noSlotWidth, 0

	for pos := maxLen - 1; pos >= 0; pos-- {
		var seen [256]bool
		lo, hi, count := 255, 0, 0
		for _, i := range indexes {
			if len(keyBytes[i]) > pos {
				b := int(keyBytes[i][pos])
				if !seen[b] {
					seen[b] = true
					count++
				}
				if b < lo {
					lo = b
				}
				if b > hi {
					hi = b
				}
			}
		}
		slotWidth := hi - lo + 1
		if count > bestCount || (count > 1 && count == bestCount && slotWidth <= bestSlotWidth) {
			bestCount, bestSlotWidth, bestNdx = count, slotWidth, pos
		}
	}

	if bestCount == 1 && bestNdx < minLen {
		return 0, ErrDuplicateKeys
	}
	return bestNdx, nil
}

// AveragePathLength sums, over every leaf reachable from n, the number of
// link hops from n to that leaf, divided by totalKeys. It exists purely
// for the diagnostic sanity check spec.md 9 calls for; tree shape itself
// is never pinned by a test.
func (n *Node) AveragePathLength(totalKeys int) float64 {
	if totalKeys == 0 {
		return 0
	}
	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{n, 0}}
	sum := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range f.node.children {
			switch c.kind {
			case childLink:
				stack = append(stack, frame{c.link, f.depth + 1})
			case childLeaf:
				sum += f.depth
			}
		}
	}
	return float64(sum) / float64(totalKeys)
}
