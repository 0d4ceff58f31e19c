package spec

import "hash/fnv"

// Hash returns a 64-bit FNV-1a hash of the text of a composition file. It is used
// to detect whether a file changed between two reads.
func Hash(text []byte) uint64 {
	h := fnv.New64a()
	h.Write(text)
	return h.Sum64()
}
