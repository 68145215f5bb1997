package openaddr

import (
	"encoding/binary"
	"fmt"
	mathbits "math/bits"
	"runtime"
	"sync"
)

type shard struct {
	mu sync.RWMutex
	hm *HashMap // quadratic probing
}

// ShardedHashMap wraps a set of HashMap shards behind a mutex apiece. The
// base HashMap supports no concurrent access at all, so callers needing it
// get this wrapper, which serializes per shard.
type ShardedHashMap struct {
	mask   uint64
	hash   HashFunc
	shards []*shard
}

// NewShardedHashMap returns a new hashMap instantiated with the specified size or
// the defaultMapSize, whichever is larger
func NewShardedHashMap(size uint) *ShardedHashMap {
	return newShardedHashMap(size, defaultHashFunc)
}

func newShardedHashMap(size uint, fn HashFunc) *ShardedHashMap {
	shCount := alignShardCount(size)
	if fn == nil {
		fn = defaultHashFunc
	}
	shm := &ShardedHashMap{
		mask:   shCount - 1,
		hash:   fn,
		shards: make([]*shard, shCount),
	}
	hmSize := initialMapShardSize(uint16(shCount))
	for i := range shm.shards {
		shm.shards[i] = &shard{
			hm: newHashMap(hmSize, fn),
		}
	}
	return shm
}

// alignShardCount aligns shards to ensure all counts are powers of two.
// Shard routing is mask based; only the per-shard tables are prime sized.
func alignShardCount(size uint) uint64 {
	count := uint(16)
	for count < size {
		count *= 2
	}
	return uint64(count)
}

func initialMapShardSize(x uint16) uint {
	return uint(mathbits.Reverse16(x)) / 2
}

func (s *ShardedHashMap) getShard(key keyType) (uint64, uint64) {
	// calculate the hashkey value
	hashkey := s.hash(key)
	// mask the hashkey to get the shard index
	i := hashkey & s.mask
	return i, hashkey
}

// Add inserts a key value entry only if the key is not already present,
// and reports whether it added anything
func (s *ShardedHashMap) Add(key keyType, val valType) (valType, bool) {
	if _, ok := s.lookup(key); ok {
		return nil, false // returns false if it didnt add
	}
	return s.insert(key, val)
}

// Put inserts a key value entry and returns the previous value or false
func (s *ShardedHashMap) Put(key keyType, val valType) (valType, bool) {
	return s.insert(key, val)
}

// SetUint encodes num for the given key and returns the previous value, or false
func (s *ShardedHashMap) SetUint(key keyType, num uint64) (uint64, bool) {
	buk, hashkey := s.getShard(key)
	s.shards[buk].mu.Lock()
	val := make([]byte, 8)
	binary.LittleEndian.PutUint64(val, num)
	ret, ok := s.shards[buk].hm.insert(hashkey, key, val)
	s.shards[buk].mu.Unlock()
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(ret), true
}

// GetUint returns the decoded value for the given key, or false
func (s *ShardedHashMap) GetUint(key keyType) (uint64, bool) {
	buk, hashkey := s.getShard(key)
	s.shards[buk].mu.RLock()
	ret, ok := s.shards[buk].hm.lookup(hashkey, key)
	s.shards[buk].mu.RUnlock()
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(ret), true
}

func (s *ShardedHashMap) insert(key keyType, val valType) (valType, bool) {
	buk, hashkey := s.getShard(key)
	s.shards[buk].mu.Lock()
	pv, ok := s.shards[buk].hm.insert(hashkey, key, val)
	s.shards[buk].mu.Unlock()
	return pv, ok
}

// Get returns a value for a given key, or returns false if none could be found
func (s *ShardedHashMap) Get(key keyType) (valType, bool) {
	return s.lookup(key)
}

func (s *ShardedHashMap) lookup(key keyType) (valType, bool) {
	buk, hashkey := s.getShard(key)
	s.shards[buk].mu.RLock()
	pv, ok := s.shards[buk].hm.lookup(hashkey, key)
	s.shards[buk].mu.RUnlock()
	return pv, ok
}

// Has returns a boolean indicating whether a live entry exists for the given key
func (s *ShardedHashMap) Has(key keyType) bool {
	_, ok := s.lookup(key)
	return ok
}

// Del removes a value for a given key and returns the deleted value, or false
func (s *ShardedHashMap) Del(key keyType) (valType, bool) {
	return s.delete(key)
}

func (s *ShardedHashMap) delete(key keyType) (valType, bool) {
	buk, hashkey := s.getShard(key)
	s.shards[buk].mu.Lock()
	pv, ok := s.shards[buk].hm.delete(hashkey, key)
	s.shards[buk].mu.Unlock()
	return pv, ok
}

// Len returns the number of live entries across every shard
func (s *ShardedHashMap) Len() int {
	var length int
	for i := range s.shards {
		s.shards[i].mu.RLock()
		length += s.shards[i].hm.Len()
		s.shards[i].mu.RUnlock()
	}
	return length
}

// Range takes an Iterator and ranges every shard as long as the iterator
// function continues to be true
func (s *ShardedHashMap) Range(it Iterator) {
	for i := range s.shards {
		s.shards[i].mu.Lock()
		s.shards[i].hm.Range(it)
		s.shards[i].mu.Unlock()
	}
}

// Stats prints the table load of any shard that has entries in it
func (s *ShardedHashMap) Stats() {
	for i := range s.shards {
		s.shards[i].mu.Lock()
		if tl := s.shards[i].hm.TableLoad(); tl > 0 {
			fmt.Printf("shard %d, table load: %.4f\n", i, tl)
		}
		s.shards[i].mu.Unlock()
	}
}

// Close closes and frees the current hashmap. Calling any method
// on the ShardedHashMap after this will most likely result in a panic
func (s *ShardedHashMap) Close() {
	for i := range s.shards {
		s.shards[i].mu.Lock()
		destroyMap(s.shards[i].hm)
		s.shards[i].mu.Unlock()
	}
	s.shards = nil
	runtime.GC()
}
