package hashmap

// Map is the contract shared by both hash map variants in this module. The
// open addressing variant (pkg/hashmap/openaddr) and the separate chaining
// variant (pkg/hashmap/chained) both satisfy it. The sharded wrappers expose
// the same Put/Get/Has/Del surface but manage capacity per shard, so they do
// not carry the table level methods.
type Map interface {
	Put(key string, value []byte) ([]byte, bool)
	Get(key string) ([]byte, bool)
	Has(key string) bool
	Del(key string) ([]byte, bool)
	Clear()
	Resize(capacity uint)
	Len() int
	Cap() int
	TableLoad() float64
	EmptyBuckets() int
	Close()
}
