// Package staticmap implements a static associative container: given the
// full set of keys up front, it builds a near-optimal multi-way radix
// tree once and flattens it into a single []uint32 buffer for cache-
// friendly lookups. There is no insert or delete after
// New returns; mapped values stay mutable in place.
package staticmap
