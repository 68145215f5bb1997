package openaddr

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShardedHashMap(t *testing.T) {
	count := 100000
	hm := NewShardedHashMap(128)
	for i := 0; i < count; i++ {
		_, updated := hm.Put(strconv.Itoa(i), nil)
		require.False(t, updated)
	}
	require.Equal(t, count, hm.Len())
	for i := 0; i < count; i++ {
		_, ok := hm.Get(strconv.Itoa(i))
		require.True(t, ok)
	}
	for i := 0; i < count; i++ {
		_, ok := hm.Del(strconv.Itoa(i))
		require.True(t, ok)
	}
	require.Equal(t, 0, hm.Len())
	hm.Close()
}

func TestShardedHashMap_Add(t *testing.T) {
	hm := NewShardedHashMap(128)
	hm.Add("mykey", []byte("v1"))
	// a second Add must not overwrite
	hm.Add("mykey", []byte("v2"))
	ret, ok := hm.Get("mykey")
	require.True(t, ok)
	require.Equal(t, []byte("v1"), ret)
	hm.Close()
}

func TestShardedHashMap_SetAndGetUint(t *testing.T) {
	hm := NewShardedHashMap(128)

	hm.SetUint("counter", 1)
	n, ok := hm.GetUint("counter")
	require.True(t, ok)
	require.Equal(t, uint64(1), n)

	n++
	old, ok := hm.SetUint("counter", n)
	require.True(t, ok)
	require.Equal(t, uint64(1), old)

	n, ok = hm.GetUint("counter")
	require.True(t, ok)
	require.Equal(t, uint64(2), n)

	_, ok = hm.GetUint("missing")
	require.False(t, ok)

	hm.Close()
}

func TestShardedHashMap_Concurrent(t *testing.T) {
	hm := NewShardedHashMap(128)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				key := strconv.Itoa(g*1000 + i)
				hm.Put(key, []byte(key))
				ret, ok := hm.Get(key)
				if !ok || string(ret) != key {
					t.Errorf("lost entry for key %q", key)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	require.Equal(t, 8000, hm.Len())
	hm.Close()
}
