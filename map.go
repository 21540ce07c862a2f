package staticmap

import (
	"bytes"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/crwen/staticmap/internal/radixtree"
)

// KV is one key/value pair, in the order it was supplied to New. The
// KeyValue vector (spec.md 3) is just a []KV[K, V]: its order is the map's
// iteration order and the single source of truth for Equal and Less.
type KV[K any, V any] struct {
	Key   K
	Value V
}

// Map is a static associative container: its key set is fixed at
// construction (New), while mapped values remain mutable in place for the
// container's lifetime (spec.md 1). The zero Map is not usable; construct
// one with New or NewFromSlices.
type Map[K comparable, V any] struct {
	pairs      []KV[K, V]
	buf        []uint32
	rootOffset uint32
	keyBytes   KeyBytes[K]
	existing   bool
	avgPath    float64
}

// New builds a Map from pairs, preserving their order (spec.md 6, I4).
// keyBytes selects the byte view for K - FixedKeyBytes[K]() for plain
// scalar/struct keys, StringKeyBytes[K]() for ~string keys, or a custom
// KeyBytes for anything else. New fails with ErrDuplicateKey if any two
// pairs carry a bytewise-equal key, or ErrCapacityExceeded if len(pairs)
// exceeds radixtree.MaxEntries; on either failure no Map is returned
// (spec.md 7, I6 - "no half-built container is exposed").
func New[K comparable, V any](pairs []KV[K, V], keyBytes KeyBytes[K], opts ...BuildOption) (*Map[K, V], error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(pairs) > radixtree.MaxEntries {
		return nil, errors.Wrapf(ErrCapacityExceeded, "New: %d entries supplied", len(pairs))
	}

	m := &Map[K, V]{
		pairs:    append(make([]KV[K, V], 0, len(pairs)), pairs...),
		keyBytes: keyBytes,
		existing: cfg.existingKeysOnly,
	}

	if len(m.pairs) == 0 {
		return m, nil // spec.md 3: empty map has no flat buffer, rootOffset 0
	}

	views := make([][]byte, len(m.pairs))
	indexes := make([]int, len(m.pairs))
	for i := range m.pairs {
		views[i] = keyBytes(&m.pairs[i].Key)
		indexes[i] = i
	}

	root, err := radixtree.Build(views, indexes)
	if err != nil {
		if errors.Is(err, radixtree.ErrDuplicateKeys) {
			return nil, errors.Wrapf(ErrDuplicateKey, "New: %d entries supplied", len(m.pairs))
		}
		return nil, err
	}
	m.avgPath = root.AveragePathLength(len(m.pairs))

	capHint := cfg.capacityHint
	if capHint <= 0 {
		capHint = len(m.pairs) * 2
	}
	buf, rootOffset, err := radixtree.Flatten(root, capHint)
	if err != nil {
		if errors.Is(err, radixtree.ErrCapacityExceeded) {
			return nil, errors.Wrapf(ErrCapacityExceeded, "New: %d entries supplied", len(m.pairs))
		}
		return nil, err
	}
	m.buf = buf
	m.rootOffset = rootOffset
	// root is now unreachable; the transient builder tree is freed with
	// the next GC cycle, per spec.md 3's "builder tree is freed after
	// flattening" lifecycle.

	return m, nil
}

// NewFromSlices builds a Map from parallel keys/values slices (the
// reference implementation's two-iterator constructor shape). It fails
// with an error if the slices have different lengths.
func NewFromSlices[K comparable, V any](keys []K, values []V, keyBytes KeyBytes[K], opts ...BuildOption) (*Map[K, V], error) {
	if len(keys) != len(values) {
		return nil, errors.Errorf("staticmap: NewFromSlices: %d keys but %d values", len(keys), len(values))
	}
	pairs := make([]KV[K, V], len(keys))
	for i := range keys {
		pairs[i] = KV[K, V]{Key: keys[i], Value: values[i]}
	}
	return New(pairs, keyBytes, opts...)
}

// Len returns the number of entries (spec.md 6 "size").
func (m *Map[K, V]) Len() int { return len(m.pairs) }

// IsEmpty reports whether the map has no entries (spec.md 6 "empty").
func (m *Map[K, V]) IsEmpty() bool { return len(m.pairs) == 0 }

// Find returns the KeyValue index of key and true if present, or (0,
// false) if absent (spec.md 6 "find"). If the map was built with
// WithExistingKeysOnly, Find assumes key is present; see
// WithExistingKeysOnly's doc comment.
func (m *Map[K, V]) Find(key K) (int, bool) {
	if len(m.pairs) == 0 {
		return 0, false
	}
	kb := m.keyBytes(&key)
	if m.existing {
		return radixtree.LookupExisting(m.buf, m.rootOffset, kb), true
	}
	return radixtree.Lookup(m.buf, m.rootOffset, kb, func(idx int) bool {
		return bytes.Equal(m.keyBytes(&m.pairs[idx].Key), kb)
	})
}

// Count returns 1 if key is present, 0 otherwise (spec.md 6, I1, I2).
func (m *Map[K, V]) Count(key K) int {
	if _, ok := m.Find(key); ok {
		return 1
	}
	return 0
}

// Get returns the value mapped to key, and true, or the zero value and
// false if key is absent (spec.md 7's defaulted accessor).
func (m *Map[K, V]) Get(key K) (V, bool) {
	idx, ok := m.Find(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.pairs[idx].Value, true
}

// MustGet returns the value mapped to key, panicking with ErrKeyNotPresent
// if key is absent - the Go analogue of the reference implementation's
// operator[], which throws std::runtime_error on a miss (spec.md 6, 7).
func (m *Map[K, V]) MustGet(key K) V {
	v, ok := m.Get(key)
	if !ok {
		panic(ErrKeyNotPresent)
	}
	return v
}

// ValueAt returns a pointer to the value at KeyValue index idx, letting
// the caller mutate it in place (spec.md 6's handle requirement, I3). The
// pointer remains valid for the Map's lifetime.
func (m *Map[K, V]) ValueAt(idx int) *V {
	return &m.pairs[idx].Value
}

// EqualRange returns [lo, hi) over the KeyValue vector: (idx, idx+1) if
// key is present, or (Len(), Len()) - an empty range past the end, as the
// reference implementation's equal_range returns (end(), end()) on a miss
// (spec.md 6).
func (m *Map[K, V]) EqualRange(key K) (lo, hi int) {
	idx, ok := m.Find(key)
	if !ok {
		return len(m.pairs), len(m.pairs)
	}
	return idx, idx + 1
}

// At returns the key/value pair at KeyValue index idx, in insertion order.
func (m *Map[K, V]) At(idx int) (K, V) {
	p := m.pairs[idx]
	return p.Key, p.Value
}

// ForEach calls fn for every entry in insertion order (spec.md 6, I4),
// stopping early if fn returns false.
func (m *Map[K, V]) ForEach(fn func(key K, value V) bool) {
	for i := range m.pairs {
		if !fn(m.pairs[i].Key, m.pairs[i].Value) {
			return
		}
	}
}

// ForEachReverse calls fn for every entry in reverse insertion order,
// stopping early if fn returns false.
func (m *Map[K, V]) ForEachReverse(fn func(key K, value V) bool) {
	for i := len(m.pairs) - 1; i >= 0; i-- {
		if !fn(m.pairs[i].Key, m.pairs[i].Value) {
			return
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.pairs))
	for i := range m.pairs {
		keys[i] = m.pairs[i].Key
	}
	return keys
}

// Values returns the values in insertion order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, len(m.pairs))
	for i := range m.pairs {
		values[i] = m.pairs[i].Value
	}
	return values
}

// Equal reports whether m and other have elementwise-equal KeyValue
// sequences (spec.md 8, I5): same length, same keys in the same order,
// and valueEqual(a, b) true for every corresponding value pair.
func (m *Map[K, V]) Equal(other *Map[K, V], valueEqual func(a, b V) bool) bool {
	if len(m.pairs) != len(other.pairs) {
		return false
	}
	for i := range m.pairs {
		if m.pairs[i].Key != other.pairs[i].Key {
			return false
		}
		if !valueEqual(m.pairs[i].Value, other.pairs[i].Value) {
			return false
		}
	}
	return true
}

// Less reports whether m precedes other in the lexicographic order of
// their KeyValue sequences, given caller-supplied key/value orderings -
// K and V need not be Go-orderable on their own for this container to
// exist (spec.md 1 scopes relational comparisons as mechanical wrappers,
// not a core design decision).
func (m *Map[K, V]) Less(other *Map[K, V], keyLess func(a, b K) bool, valueLess func(a, b V) bool) bool {
	n := len(m.pairs)
	if len(other.pairs) < n {
		n = len(other.pairs)
	}
	for i := 0; i < n; i++ {
		switch {
		case keyLess(m.pairs[i].Key, other.pairs[i].Key):
			return true
		case keyLess(other.pairs[i].Key, m.pairs[i].Key):
			return false
		case valueLess(m.pairs[i].Value, other.pairs[i].Value):
			return true
		case valueLess(other.pairs[i].Value, m.pairs[i].Value):
			return false
		}
	}
	return len(m.pairs) < len(other.pairs)
}

// Swap exchanges the contents of m and other in place; it never
// allocates (spec.md 6 "swap").
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	*m, *other = *other, *m
}

// MemoryUsage returns the approximate number of bytes owned by m: the
// struct itself plus the backing capacity of the KeyValue vector and the
// flat buffer (spec.md 6 "self-reporting", 5 "resource ownership").
func (m *Map[K, V]) MemoryUsage() uintptr {
	var kv KV[K, V]
	size := unsafe.Sizeof(*m)
	size += uintptr(cap(m.pairs)) * unsafe.Sizeof(kv)
	size += uintptr(cap(m.buf)) * unsafe.Sizeof(uint32(0))
	return size
}

// AveragePathLength returns the mean number of link hops from the tree
// root to each key's leaf, computed once during New. It is a diagnostic
// only (spec.md 9: the greedy heuristic's tree shape is never pinned by a
// test, only lookup correctness and path-length sanity).
func (m *Map[K, V]) AveragePathLength() float64 {
	return m.avgPath
}
