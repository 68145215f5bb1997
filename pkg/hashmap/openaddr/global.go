package openaddr

import "github.com/MattWenzel/Hash-Map/pkg/hashmap/prime"

const (
	DefaultLoadFactor = 0.50 // table is resized before any insert at or above this
	DefaultMapSize    = 11
)

// alignCapacity normalizes a requested capacity to ensure all table sizes
// are prime. A zero request falls back to the DefaultMapSize.
func alignCapacity(size uint) uint64 {
	if size == 0 {
		size = DefaultMapSize
	}
	return prime.Next(uint64(size))
}
