package staticmap

// buildConfig collects the construction-time knobs New accepts. It is
// deliberately unexported and filled in via BuildOption, rather than
// exposed directly the way crwen-ckv's utils.Options is: this container
// only has two knobs, so functional options read more naturally than a
// struct literal with a dozen zero-valued fields.
type buildConfig struct {
	existingKeysOnly bool
	capacityHint     int
}

// BuildOption configures New (spec.md 4.5, 6).
type BuildOption func(*buildConfig)

// WithExistingKeysOnly opts into the fast lookup path of spec.md 4.5: the
// caller promises that every future query key (Find, Get, Count, MustGet)
// is a member of the map. Under that promise, lookup skips the empty-slot
// guard, the min/max range check, and the final byte comparison. Querying
// an absent key after opting in is a contract violation with unspecified
// results - see radixtree.LookupExisting's doc comment for exactly how
// unspecified.
func WithExistingKeysOnly() BuildOption {
	return func(c *buildConfig) {
		c.existingKeysOnly = true
	}
}

// WithCapacityHint pre-sizes the flat buffer to reduce reallocation during
// New, mirroring the arena pre-allocation crwen-ckv's utils.Arena performs
// up front. n is a hint, not a hard cap: New still succeeds with more
// entries than n (up to radixtree.MaxEntries), it simply reallocates.
func WithCapacityHint(n int) BuildOption {
	return func(c *buildConfig) {
		c.capacityHint = n
	}
}
