package chained

import (
	"github.com/MattWenzel/Hash-Map/pkg/hashmap/prime"
	"github.com/cespare/xxhash/v2"
)

const (
	DefaultMapSize = 11
)

// user specified key and value types
type keyType = string
type valType = []byte

var keyZeroType = *new(keyType)
var valZeroType = *new(valType)

// entry is a key value pair that is found in each bucket
type entry struct {
	key keyType
	val valType
}

// entry node is a node in part of our linked list
type entryNode struct {
	entry
	next *entryNode
}

// bucket represents a single slot in the HashMap table. It exclusively owns
// a singly linked chain of entry nodes; traversal is always forward.
type bucket struct {
	head *entryNode
}

// insert adds a key value pair to the chain, updating in place if the key
// is already present. It returns the previous value and true on an update,
// or a zero value and false on a fresh insert at the chain head.
func (b *bucket) insert(key keyType, val valType) (valType, bool) {
	for current := b.head; current != nil; current = current.next {
		if current.entry.key == key {
			oldval := current.entry.val
			current.entry.val = val
			return oldval, true
		}
	}
	b.head = &entryNode{
		entry: entry{
			key: key,
			val: val,
		},
		next: b.head,
	}
	return valZeroType, false
}

// search walks the chain looking for the given key
func (b *bucket) search(key keyType) (valType, bool) {
	current := b.head
	for current != nil {
		if current.entry.key == key {
			return current.entry.val, true
		}
		current = current.next
	}
	return valZeroType, false
}

// scan walks the chain forward handing each pair to the iterator
func (b *bucket) scan(it Iterator) {
	current := b.head
	for current != nil {
		if !it(current.entry.key, current.entry.val) {
			return
		}
		current = current.next
	}
}

// delete unlinks the node holding the given key from the chain
func (b *bucket) delete(key keyType) (valType, bool) {
	if b.head == nil {
		return valZeroType, false
	}
	var ret valType
	if b.head.entry.key == key {
		ret = b.head.entry.val
		b.head = b.head.next
		return ret, true
	}
	previous := b.head
	for previous.next != nil {
		if previous.next.entry.key == key {
			ret = previous.next.entry.val
			previous.next = previous.next.next
			return ret, true
		}
		previous = previous.next
	}
	return valZeroType, false
}

// length returns the number of nodes currently in the chain
func (b *bucket) length() int {
	var n int
	for current := b.head; current != nil; current = current.next {
		n++
	}
	return n
}

// HashMap represents a separate chaining hashtable implementation with a
// prime number of buckets at all times. Unlike the open addressing variant
// it never resizes itself--chains degrade gracefully, so growth is left to
// the caller via Resize.
type HashMap struct {
	hash     HashFunc
	capacity uint64
	keys     uint
	buckets  []bucket
}

// alignCapacity normalizes a requested capacity to ensure all table sizes
// are prime. A zero request falls back to the DefaultMapSize.
func alignCapacity(size uint) uint64 {
	if size == 0 {
		size = DefaultMapSize
	}
	return prime.Next(uint64(size))
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
		buckets:  make([]bucket, capacity),
	}
	return m
}

// Resize changes the capacity of the internal hash table, rehashing every
// entry. It is a silent no-op if the requested capacity is below one. This
// is the only way this variant ever changes capacity--nothing triggers it
// automatically, so callers wanting bounded chain lengths invoke it
// themselves.
func (m *HashMap) Resize(size uint) {
	m.resize(size)
}

// resize rebuilds the HashMap at the newSize provided, normalized up to the
// next prime. It snapshots all entries, replaces the bucket array at the
// new capacity, and then runs every pair back through the regular insert
// path so each one gets a fresh capacity-consistent index.
func (m *HashMap) resize(newSize uint) {
	if newSize < 1 {
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
	// mod the hashkey to get the bucket index
	i := hashkey % m.capacity
	// check if the chain is empty
	if m.buckets[i].head == nil {
		return valZeroType, false
	}
	// not empty, lets look for it in the list
	return m.buckets[i].search(key)
}

// Has returns a boolean indicating whether an entry exists for the
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
	if hashkey == 0 {
		// calculate the hashkey value
		hashkey = m.hash(key)
	}
	// mod the hashkey to get the bucket index
	i := hashkey % m.capacity
	// insert key and value
	val, ok := m.buckets[i].insert(key, value)
	if !ok { // means not updated, aka a new one was inserted
		m.keys++
	}
	return val, ok
}

// Del removes a value for a given key and returns the deleted value, or false
// Del can be considered the exported version of the delete call
func (m *HashMap) Del(key keyType) (valType, bool) {
	return m.delete(0, key)
}

// delete removes a value for a given key and returns the deleted value, or false
func (m *HashMap) delete(hashkey uint64, key keyType) (valType, bool) {
	if hashkey == 0 {
		// calculate the hashkey value
		hashkey = m.hash(key)
	}
	// mod the hashkey to get the bucket index
	i := hashkey % m.capacity
	// try deleting from the chain
	val, ok := m.buckets[i].delete(key)
	if ok { // means it was deleted, aka...
		// ...decrement entry count
		m.keys--
	}
	return val, ok
}

// Clear reinitializes every bucket to an empty chain. The capacity is left
// unchanged, and the entry count is reset to zero.
func (m *HashMap) Clear() {
	m.buckets = make([]bucket, m.capacity)
	m.keys = 0
}

// Entry is a key value pair reported by Entries
type Entry struct {
	Key keyType
	Val valType
}

// Entries returns all of the key value pairs currently in the map, in
// bucket array order outer and chain traversal order inner
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

// Range takes an Iterator and ranges the HashMap as long as long
// as the iterator function continues to be true. Range is not
// safe to perform an insert or remove operation while ranging!
func (m *HashMap) Range(it Iterator) {
	for i := 0; i < len(m.buckets); i++ {
		m.buckets[i].scan(it)
	}
}

// TableLoad returns the current hash table load factor. With chaining this
// is unbounded--it can sit above 1.0 indefinitely if the caller never
// resizes.
func (m *HashMap) TableLoad() float64 {
	return float64(m.keys) / float64(m.capacity)
}

// EmptyBuckets returns the number of buckets whose chain holds zero nodes
func (m *HashMap) EmptyBuckets() int {
	var empty int
	for i := 0; i < len(m.buckets); i++ {
		if m.buckets[i].head == nil {
			empty++
		}
	}
	return empty
}

// Len returns the number of entries currently in the HashMap
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
	destroy(m)
}

// destroy does exactly what is sounds like it does
func destroy(m *HashMap) {
	m = nil
}
