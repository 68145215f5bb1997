package openaddr

import (
	"github.com/MattWenzel/Hash-Map/pkg/hashmap/prime"
	"github.com/cespare/xxhash/v2"
)

// user specified key and value types
type keyType = string
type valType = []byte

var valZeroType = *new(valType)

// entry is a key value pair that is found in each bucket. A tombstoned
// entry stays in its slot so probe sequences through it remain correct,
// but it reads as absent for any value-returning operation.
type entry struct {
	key       keyType
	val       valType
	tombstone bool
}

// HashMap represents a closed hashing hashtable implementation using
// quadratic probing, with a prime number of buckets at all times
type HashMap struct {
	hash     HashFunc
	capacity uint64
	keys     uint
	buckets  []*entry
}

// defaultHashFunc is the default HashFunc used. This is here mainly as
// a convenience for the sharded hashmap to utilize
func defaultHashFunc(key keyType) uint64 {
	return xxhash.Sum64String(key)
}

// HashFunc is a type definition for what a hash function should look like
type HashFunc func(key keyType) uint64

// NewHashMap returns a new HashMap instantiated with the specified capacity
// or the DefaultMapSize, whichever is larger
func NewHashMap(size uint) *HashMap {
	return newHashMap(size, defaultHashFunc)
}

// NewCustomHashMap returns a new HashMap using the supplied hash function
func NewCustomHashMap(size uint, hash HashFunc) *HashMap {
	return newHashMap(size, hash)
}

// newHashMap is the internal variant of the previous functions
// and is mainly used internally
func newHashMap(size uint, hash HashFunc) *HashMap {
	capacity := alignCapacity(size)
	if hash == nil {
		hash = defaultHashFunc
	}
	m := &HashMap{
		hash:     hash,
		capacity: capacity,
		keys:     0,
		buckets:  make([]*entry, capacity),
	}
	return m
}

// probe resolves the canonical slot index for key using quadratic probing.
// Starting from the initial index it advances by j^2 for j = 1, 2, 3, ...
// until it lands on a slot holding the key (tombstoned or not) or on a
// never-occupied slot. The caller decides what tombstone-vs-live means
// for its operation.
func (m *HashMap) probe(hashkey uint64, key keyType) uint64 {
	initial := hashkey % m.capacity
	index := initial
	for j := uint64(1); m.buckets[index] != nil; j++ {
		if m.buckets[index].key == key {
			return index
		}
		index = (initial + j*j) % m.capacity
	}
	return index
}

// Resize changes the capacity of the internal hash table, rehashing every
// live entry. It is a silent no-op if the requested capacity is smaller
// than the current number of entries. Put also invokes the same resize
// automatically whenever the table load reaches DefaultLoadFactor.
func (m *HashMap) Resize(size uint) {
	m.resize(size)
}

// resize grows the HashMap to the newSize provided, normalized up to the
// next prime. It snapshots all live entries, rebuilds the bucket array at
// the new capacity, and then runs every pair back through the regular
// insert path so each one gets a fresh capacity-consistent index.
func (m *HashMap) resize(newSize uint) {
	if newSize < m.keys {
		return
	}
	newCap := uint64(newSize)
	if !prime.Is(newCap) {
		newCap = prime.Next(newCap)
	}
	entries := m.Entries()
	m.capacity = newCap
	m.Clear()
	for i := range entries {
		m.insert(0, entries[i].Key, entries[i].Val)
	}
}

// Get returns a value for a given key, or returns false if none could be found
// Get can be considered the exported version of the lookup call
func (m *HashMap) Get(key keyType) (valType, bool) {
	return m.lookup(0, key)
}

// lookup returns a value for a given key, or returns false if none could be found
func (m *HashMap) lookup(hashkey uint64, key keyType) (valType, bool) {
	if hashkey == 0 {
		// calculate the hashkey value
		hashkey = m.hash(key)
	}
	// resolve the canonical slot for this key
	i := m.probe(hashkey, key)
	// only a live entry counts as found
	if b := m.buckets[i]; b != nil && !b.tombstone {
		return b.val, true
	}
	return valZeroType, false
}

// Has returns a boolean indicating whether a live entry exists for the
// given key. It always returns false on an empty map.
func (m *HashMap) Has(key keyType) bool {
	if m.keys == 0 {
		return false
	}
	_, ok := m.lookup(0, key)
	return ok
}

// Put inserts a key value entry and returns the previous value or false
// Put can be considered the exported version of the insert call
func (m *HashMap) Put(key keyType, value valType) (valType, bool) {
	return m.insert(0, key, value)
}

// insert inserts a key value entry and returns the previous value, or false
func (m *HashMap) insert(hashkey uint64, key keyType, value valType) (valType, bool) {
	// check and see if we need to resize, before anything else. this runs
	// on every insert, updates included, which is what keeps the quadratic
	// probe below guaranteed to terminate
	if m.TableLoad() >= DefaultLoadFactor {
		// if we do, then double the map size
		m.resize(uint(m.capacity) * 2)
	}
	if hashkey == 0 {
		// calculate the hashkey value
		hashkey = m.hash(key)
	}
	// resolve the canonical slot for this key
	i := m.probe(hashkey, key)
	// found a live entry for this key--update in place and return the old value
	if b := m.buckets[i]; b != nil && !b.tombstone {
		oldval := b.val
		b.val = value
		return oldval, true
	}
	// slot is either never-occupied or a tombstone for this key, write a
	// fresh entry either way
	m.buckets[i] = &entry{key: key, val: value}
	m.keys++
	return valZeroType, false
}

// Del removes a value for a given key and returns the deleted value, or false
// Del can be considered the exported version of the delete call
func (m *HashMap) Del(key keyType) (valType, bool) {
	return m.delete(0, key)
}

// delete flags the entry for a given key as a tombstone and returns the
// deleted value, or false. The slot itself is not cleared--probe sequences
// for other keys may run through it.
func (m *HashMap) delete(hashkey uint64, key keyType) (valType, bool) {
	if hashkey == 0 {
		// calculate the hashkey value
		hashkey = m.hash(key)
	}
	// resolve the canonical slot for this key
	i := m.probe(hashkey, key)
	b := m.buckets[i]
	if b == nil || b.tombstone {
		// nothing to see here folks
		return valZeroType, false
	}
	b.tombstone = true
	m.keys--
	return b.val, true
}

// Clear reinitializes every bucket to a never-occupied state. The capacity
// is left unchanged, and the entry count is reset to zero.
func (m *HashMap) Clear() {
	m.buckets = make([]*entry, m.capacity)
	m.keys = 0
}

// Entry is a key value pair reported by Entries
type Entry struct {
	Key keyType
	Val valType
}

// Entries returns all of the live key value pairs currently in the map,
// in bucket array order
func (m *HashMap) Entries() []Entry {
	all := make([]Entry, 0, m.keys)
	m.Range(func(key keyType, value valType) bool {
		all = append(all, Entry{Key: key, Val: value})
		return true
	})
	return all
}

// Iterator is an iterator function type
type Iterator func(key keyType, value valType) bool

// Range takes an Iterator and ranges the HashMap in bucket array order as
// long as the iterator function continues to be true. Range is not safe to
// perform an insert or remove operation while ranging!
func (m *HashMap) Range(it Iterator) {
	for i := 0; i < len(m.buckets); i++ {
		if m.buckets[i] == nil || m.buckets[i].tombstone {
			continue
		}
		if !it(m.buckets[i].key, m.buckets[i].val) {
			return
		}
	}
}

// TableLoad returns the current hash table load factor
func (m *HashMap) TableLoad() float64 {
	return float64(m.keys) / float64(m.capacity)
}

// EmptyBuckets returns the number of never-occupied slots in the table.
// Tombstoned slots are still occupied as far as probing is concerned, so
// they do not count as empty.
func (m *HashMap) EmptyBuckets() int {
	var empty int
	for i := 0; i < len(m.buckets); i++ {
		if m.buckets[i] == nil {
			empty++
		}
	}
	return empty
}

// Len returns the number of live entries currently in the HashMap
func (m *HashMap) Len() int {
	return int(m.keys)
}

// Cap returns the current capacity (bucket count) of the HashMap
func (m *HashMap) Cap() int {
	return int(m.capacity)
}

// Close closes and frees the current hashmap. Calling any method
// on the HashMap after this will most likely result in a panic
func (m *HashMap) Close() {
	destroyMap(m)
}

// destroy does exactly what is sounds like it does
func destroyMap(m *HashMap) {
	m = nil
}
