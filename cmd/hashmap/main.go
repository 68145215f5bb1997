package main

import (
	"fmt"
	"log"
	"strconv"

	hashmap "github.com/MattWenzel/Hash-Map"
	"github.com/MattWenzel/Hash-Map/pkg/hashmap/chained"
	"github.com/MattWenzel/Hash-Map/pkg/hashmap/openaddr"
)

func main() {

	maps := []struct {
		name string
		hm   hashmap.Map
	}{
		{"openaddr", openaddr.NewHashMap(11)},
		{"chained", chained.NewHashMap(11)},
	}

	for _, m := range maps {
		fmt.Printf("[%s]\n", m.name)
		loadEntries(m.hm, 64)
		printStats(m.hm)

		// drop half of them again
		for i := 0; i < 32; i++ {
			m.hm.Del(strconv.Itoa(i))
		}
		printStats(m.hm)

		// the chained table never grows on its own, so push it back down to
		// sane chain lengths by hand; the open addressing table has been
		// growing itself all along and this is a silent no-op there if the
		// target is under its entry count
		m.hm.Resize(uint(m.hm.Len() * 2))
		printStats(m.hm)

		if !m.hm.Has("42") {
			log.Fatalf("%s: lost key %q across resize", m.name, "42")
		}
		m.hm.Close()
		fmt.Println()
	}
}

func loadEntries(hm hashmap.Map, n int) {
	for i := 0; i < n; i++ {
		hm.Put(strconv.Itoa(i), []byte(strconv.Itoa(i)))
	}
}

func printStats(hm hashmap.Map) {
	fmt.Printf("entries: %d, capacity: %d, table load: %.4f, empty buckets: %d\n",
		hm.Len(), hm.Cap(), hm.TableLoad(), hm.EmptyBuckets())
}
