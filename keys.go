package staticmap

import "unsafe"

// KeyBytes produces the byte view spec.md 9 calls for: byte_length(k) and
// byte_ptr(k) collapsed into a single []byte, with memcmp left to the
// standard library's bytes.Equal. The variance between fixed-width keys
// (plain scalars, structs) and variable-length keys (strings) is resolved
// once, at the call site that builds a Map, not per lookup - Go has no
// template specialization to dispatch on, so the caller picks
// FixedKeyBytes or StringKeyBytes (or supplies its own) instead.
type KeyBytes[K any] func(k *K) []byte

// FixedKeyBytes returns a KeyBytes view over the raw memory of a
// fixed-width key type: its length is always sizeof(K), exactly like the
// reference implementation's primary MapDataT<Key,Mapped> template, which
// takes reinterpret_cast<const char*>(&key()). K must not contain pointers
// or interface values - comparing their representational bytes would not
// implement the equality the spec requires (two logically-equal keys with
// different internal pointers would wrongly compare unequal, and two
// bitwise-equal-but-logically-different keys could collide). Plain numeric
// types and structs of plain numeric types are the intended use.
func FixedKeyBytes[K comparable]() KeyBytes[K] {
	var zero K
	size := unsafe.Sizeof(zero)
	return func(k *K) []byte {
		if size == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(k)), size)
	}
}

// StringKeyBytes returns a KeyBytes view over a ~string key's bytes with
// no copy, mirroring MapDataT<std::string,Mapped>'s c_str()/size()
// specialization.
func StringKeyBytes[K ~string]() KeyBytes[K] {
	return func(k *K) []byte {
		s := string(*k)
		if len(s) == 0 {
			return nil
		}
		return unsafe.Slice(unsafe.StringData(s), len(s))
	}
}

// BytesKeyBytes returns a KeyBytes view for keys that are themselves
// ~[]byte - the variable-length case without the string/UTF-8 framing.
func BytesKeyBytes[K ~[]byte]() KeyBytes[K] {
	return func(k *K) []byte {
		return []byte(*k)
	}
}
