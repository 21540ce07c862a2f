package staticmap

import "github.com/pkg/errors"

// ErrDuplicateKey is the sentinel wrapped into New's returned error when
// two or more input pairs carry a bytewise-identical key (spec.md 4.1, 7).
// Test with errors.Is.
var ErrDuplicateKey = errors.New("staticmap: keys are not unique")

// ErrCapacityExceeded is the sentinel wrapped into New's returned error
// when more than radixtree.MaxEntries pairs are supplied, overflowing the
// 32-bit tagged leaf index (spec.md 3, 4.3, 7). Test with errors.Is.
var ErrCapacityExceeded = errors.New("staticmap: entry count exceeds the 32-bit leaf index capacity")

// ErrKeyNotPresent is the panic value MustGet raises for an absent key
// (spec.md 7). It is never returned by New and must not be confused with
// ErrDuplicateKey or ErrCapacityExceeded.
var ErrKeyNotPresent = errors.New("staticmap: key not present")
