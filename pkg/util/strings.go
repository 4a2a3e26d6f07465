package util

import (
	"hash/fnv"
	"strconv"
)

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// HashKey returns the fnv-1a 32-bit hash of s in base 36, used for cache keys.
func HashKey(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
