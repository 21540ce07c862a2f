package radixtree

// Lookup traverses buf from rootOffset looking for a key with the given
// byte view (spec.md 4.4). confirm receives a candidate KeyValue index and
// must report whether that candidate's stored key equals the query byte-
// for-byte (this package has no access to the KeyValue vector, so it
// cannot perform the final memcmp itself). Lookup returns (0, false) when
// the buffer is empty, when the search runs off the tree's populated
// slots, or when confirm rejects the sole candidate the traversal found.
func Lookup(buf []uint32, rootOffset uint32, key []byte, confirm func(idx int) bool) (int, bool) {
	if len(buf) <= 1 || rootOffset == 0 {
		return 0, false
	}

	curr := rootOffset
	for {
		ndx := buf[curr]
		slots := buf[curr+1]
		min := slots & 0xFF
		max := (slots >> 8) & 0xFF

		var code uint32
		if min > max {
			// No byte bucket at this node, only the short-key slot at
			// index 0: a key with a byte at ndx cannot belong here.
			if ndx < uint32(len(key)) {
				return 0, false
			}
			code = buf[curr+2]
		} else if ndx < uint32(len(key)) {
			b := uint32(key[ndx])
			if diff := b - min; diff <= max-min {
				code = buf[curr+2+diff]
			}
		} else {
			code = buf[curr+2+(max-min+1)]
		}

		if isEmpty(code) {
			return 0, false
		}
		if isLeaf(code) {
			idx := leafIndex(code)
			if confirm(idx) {
				return idx, true
			}
			return 0, false
		}
		curr = linkOffset(code)
	}
}

// LookupExisting is the fast path enabled by the existing-keys-only build
// option (spec.md 4.5). It assumes key is present in the map and skips the
// empty-slot guard, the min/max range check, and the final byte comparison
// that Lookup performs. Calling it with a key that is not in the map is a
// contract violation: like the reference implementation's own unchecked
// slot access, the result is unspecified and, if the traversal walks off
// the allocated slot array, it can panic rather than merely return a wrong
// answer. Callers that cannot guarantee every query key is a map member
// must use Lookup instead.
func LookupExisting(buf []uint32, rootOffset uint32, key []byte) int {
	curr := rootOffset
	for {
		ndx := buf[curr]
		slots := buf[curr+1]
		min := slots & 0xFF
		max := (slots >> 8) & 0xFF

		var code uint32
		if min > max {
			code = buf[curr+2]
		} else if ndx < uint32(len(key)) {
			b := uint32(key[ndx])
			code = buf[curr+2+(b-min)]
		} else {
			code = buf[curr+2+(max-min+1)]
		}

		if isLeaf(code) {
			return leafIndex(code)
		}
		curr = linkOffset(code)
	}
}
