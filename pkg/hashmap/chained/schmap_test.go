package chained

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// 25 words
var words = []string{
	"reproducibility",
	"eruct",
	"acids",
	"flyspecks",
	"driveshafts",
	"volcanically",
	"discouraging",
	"acapnia",
	"phenazines",
	"hoarser",
	"abusing",
	"samara",
	"thromboses",
	"impolite",
	"drivennesses",
	"tenancy",
	"counterreaction",
	"kilted",
	"linty",
	"kistful",
	"biomarkers",
	"infusiblenesses",
	"capsulate",
	"reflowering",
	"heterophyllies",
}

func Test_defaultHashFunc(t *testing.T) {
	set := make(map[uint64]string, len(words))
	var coll int
	for _, word := range words {
		hash := defaultHashFunc(word)
		require.Equal(t, hash, defaultHashFunc(word))
		if old, ok := set[hash]; !ok {
			set[hash] = word
		} else {
			coll++
			fmt.Printf(
				"collision: current word: %s, old word: %s, hash: %d\n", word, old, hash)
		}
	}
	require.Equal(t, 0, coll)
}

func Test_alignCapacity(t *testing.T) {
	require.Equal(t, uint64(DefaultMapSize), alignCapacity(0))
	require.Equal(t, uint64(5), alignCapacity(5))
	require.Equal(t, uint64(5), alignCapacity(4))
	require.Equal(t, uint64(13), alignCapacity(12))
}

func Test_bucket_insert(t *testing.T) {
	b := &bucket{}

	val, updated := b.insert("1", []byte("1"))
	require.False(t, updated)
	require.Nil(t, val)

	val, updated = b.insert("2", []byte("2"))
	require.False(t, updated)
	require.Nil(t, val)

	// same key again is an in place update returning the old value
	val, updated = b.insert("1", []byte("one"))
	require.True(t, updated)
	require.Equal(t, []byte("1"), val)

	require.Equal(t, 2, b.length())
}

func Test_bucket_search(t *testing.T) {
	b := &bucket{}
	for i := 1; i <= 5; i++ {
		b.insert(strconv.Itoa(i), []byte(strconv.Itoa(i)))
	}
	for _, key := range []string{"3", "1", "5", "2", "4"} {
		val, ok := b.search(key)
		require.True(t, ok)
		require.Equal(t, []byte(key), val)
	}
	_, ok := b.search("6")
	require.False(t, ok)
}

func Test_bucket_scan(t *testing.T) {
	b := &bucket{}
	for i := 1; i <= 5; i++ {
		b.insert(strconv.Itoa(i), []byte{0x69})
	}
	var count int
	b.scan(func(key keyType, val valType) bool {
		if key != keyZeroType {
			count++
			return true
		}
		return false
	})
	require.Equal(t, 5, count)
}

func Test_bucket_delete(t *testing.T) {
	b := &bucket{}

	// deleting from an empty chain is a no-op
	_, ok := b.delete("1")
	require.False(t, ok)

	for i := 1; i <= 5; i++ {
		b.insert(strconv.Itoa(i), []byte(strconv.Itoa(i)))
	}
	require.Equal(t, 5, b.length())

	// head, middle, and absent
	val, ok := b.delete("5")
	require.True(t, ok)
	require.Equal(t, []byte("5"), val)

	val, ok = b.delete("3")
	require.True(t, ok)
	require.Equal(t, []byte("3"), val)

	_, ok = b.delete("3")
	require.False(t, ok)

	require.Equal(t, 3, b.length())
}

func TestNewHashMap(t *testing.T) {
	hm := NewHashMap(0)
	require.Equal(t, DefaultMapSize, hm.Cap())
	require.Equal(t, 0, hm.Len())
	require.Equal(t, DefaultMapSize, hm.EmptyBuckets())
	hm.Put("0", nil)
	require.Equal(t, 1, hm.Len())
	for i := 1; i < 5; i++ {
		hm.Put(strconv.Itoa(i), nil)
	}
	require.Equal(t, 5, hm.Len())
	hm.Close()
}

func Test_HashMap_Put(t *testing.T) {
	hm := NewHashMap(128)
	for i := 0; i < len(words); i++ {
		_, updated := hm.Put(words[i], []byte{0x69})
		require.False(t, updated)
	}
	require.Equal(t, 25, hm.Len())
	hm.Close()
}

func Test_HashMap_Put_Update(t *testing.T) {
	hm := NewHashMap(5)
	hm.Put("a", []byte{1})
	hm.Put("b", []byte{2})
	old, updated := hm.Put("a", []byte{3})
	require.True(t, updated)
	require.Equal(t, []byte{1}, old)
	ret, ok := hm.Get("a")
	require.True(t, ok)
	require.Equal(t, []byte{3}, ret)
	require.Equal(t, 2, hm.Len())
	_, ok = hm.Get("c")
	require.False(t, ok)
	hm.Close()
}

func Test_HashMap_Put_NeverGrows(t *testing.T) {
	hm := NewHashMap(5)
	require.Equal(t, 5, hm.Cap())
	for i := 0; i < 50; i++ {
		hm.Put(strconv.Itoa(i), nil)
	}
	// chains absorb everything, the table itself never moves
	require.Equal(t, 5, hm.Cap())
	require.Equal(t, 50, hm.Len())
	require.Equal(t, float64(10), hm.TableLoad())
	for i := 0; i < 50; i++ {
		require.True(t, hm.Has(strconv.Itoa(i)))
	}
	hm.Close()
}

func Test_HashMap_Chain_Collisions(t *testing.T) {
	// constant hash forces every key into the same chain
	hm := NewCustomHashMap(5, func(key string) uint64 { return 3 })
	for i := 0; i < 10; i++ {
		hm.Put(strconv.Itoa(i), []byte(strconv.Itoa(i)))
	}
	require.Equal(t, 10, hm.Len())
	require.Equal(t, 4, hm.EmptyBuckets())
	require.Equal(t, 10, hm.buckets[3].length())
	for i := 0; i < 10; i++ {
		ret, ok := hm.Get(strconv.Itoa(i))
		require.True(t, ok)
		require.Equal(t, []byte(strconv.Itoa(i)), ret)
	}
	hm.Del("5")
	require.Equal(t, 9, hm.buckets[3].length())
	require.False(t, hm.Has("5"))
	hm.Close()
}

func Test_HashMap_Get(t *testing.T) {
	hm := NewHashMap(128)
	for i := 0; i < len(words); i++ {
		hm.Put(words[i], []byte{0x69})
	}
	require.Equal(t, 25, hm.Len())
	for i := 0; i < len(words); i++ {
		ret, ok := hm.Get(words[i])
		require.True(t, ok)
		require.Equal(t, []byte{0x69}, ret)
	}
	_, ok := hm.Get("never-inserted")
	require.False(t, ok)
	hm.Close()
}

func Test_HashMap_Has(t *testing.T) {
	hm := NewHashMap(128)
	require.False(t, hm.Has("anything"))
	hm.Put("something", []byte{0x69})
	require.True(t, hm.Has("something"))
	require.False(t, hm.Has("anything"))
	hm.Close()
}

func Test_HashMap_Del(t *testing.T) {
	hm := NewHashMap(128)
	for i := 0; i < len(words); i++ {
		hm.Put(words[i], []byte{0x69})
	}
	require.Equal(t, 25, hm.Len())
	count := hm.Len()
	for i := 0; i < len(words); i++ {
		ret, ok := hm.Del(words[i])
		require.True(t, ok)
		require.Equal(t, []byte{0x69}, ret)
		count--
		require.Equal(t, count, hm.Len())
		require.False(t, hm.Has(words[i]))
	}
	require.Equal(t, 0, count)
	hm.Close()
}

func Test_HashMap_Del_Absent(t *testing.T) {
	hm := NewHashMap(128)
	hm.Put("present", []byte{0x69})
	_, ok := hm.Del("absent")
	require.False(t, ok)
	require.Equal(t, 1, hm.Len())
	hm.Close()
}

func Test_HashMap_PutDel_Scenario(t *testing.T) {
	hm := NewHashMap(5)
	hm.Put("x", []byte{10})
	_, ok := hm.Del("x")
	require.True(t, ok)
	require.False(t, hm.Has("x"))
	require.Equal(t, 0, hm.Len())
	require.Equal(t, 5, hm.EmptyBuckets())
	hm.Close()
}

func Test_HashMap_Clear(t *testing.T) {
	hm := NewHashMap(128)
	for i := 0; i < len(words); i++ {
		hm.Put(words[i], []byte{0x69})
	}
	capacity := hm.Cap()
	hm.Clear()
	require.Equal(t, 0, hm.Len())
	require.Equal(t, capacity, hm.Cap())
	require.Equal(t, capacity, hm.EmptyBuckets())
	require.False(t, hm.Has(words[0]))
	hm.Close()
}

func Test_HashMap_TableLoad(t *testing.T) {
	hm := NewHashMap(0)
	require.Equal(t, float64(0), hm.TableLoad())
	for i := 0; i < 22; i++ {
		hm.Put(strconv.Itoa(i), nil)
	}
	require.Equal(t, float64(22)/float64(11), hm.TableLoad())
	hm.Close()
}

func Test_HashMap_Resize(t *testing.T) {
	hm := NewHashMap(5)
	for i := 0; i < len(words); i++ {
		hm.Put(words[i], []byte(words[i]))
	}
	before := hm.Entries()
	require.Equal(t, 25, len(before))
	require.Equal(t, 5, hm.Cap())

	hm.Resize(52) // normalized up to 53
	require.Equal(t, 53, hm.Cap())
	after := hm.Entries()
	require.ElementsMatch(t, before, after)
	for i := 0; i < len(words); i++ {
		ret, ok := hm.Get(words[i])
		require.True(t, ok)
		require.Equal(t, []byte(words[i]), ret)
	}
	hm.Close()
}

func Test_HashMap_Resize_Noop(t *testing.T) {
	hm := NewHashMap(5)
	for i := 0; i < 10; i++ {
		hm.Put(strconv.Itoa(i), nil)
	}
	hm.Resize(0)
	require.Equal(t, 5, hm.Cap())
	require.Equal(t, 10, hm.Len())
	hm.Close()
}

func Test_HashMap_Entries(t *testing.T) {
	hm := NewHashMap(128)
	for i := 0; i < len(words); i++ {
		hm.Put(words[i], []byte(words[i]))
	}
	entries := hm.Entries()
	require.Equal(t, 25, len(entries))
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		seen[e.Key] = string(e.Val)
	}
	for _, word := range words {
		require.Equal(t, word, seen[word])
	}
	hm.Close()
}

func Test_HashMap_Range(t *testing.T) {
	hm := NewHashMap(128)
	for i := 0; i < len(words); i++ {
		hm.Put(words[i], []byte{0x69})
	}
	var counted int
	hm.Range(func(key keyType, value valType) bool {
		counted++
		return true
	})
	require.Equal(t, 25, counted)
	hm.Close()
}

func BenchmarkHashMap_Put(b *testing.B) {
	hm := NewHashMap(128)

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		hm.Put(strconv.Itoa(n), []byte{0x69})
	}
}

func BenchmarkHashMap_Get(b *testing.B) {
	hm := NewHashMap(128)
	for i := 0; i < 100000; i++ {
		hm.Put(strconv.Itoa(i), []byte{0x69})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		hm.Get(strconv.Itoa(n % 100000))
	}
}
