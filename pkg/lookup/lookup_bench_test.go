//go:build bench
// +build bench

package lookup

import (
	"math/rand"
	"testing"
)

func BenchmarkTable_Add(b *testing.B) {
	const capacity = 10000
	keys := make([]uint32, capacity)
	rng := rand.New(rand.NewSource(1))
	for i := range keys {
		keys[i] = rng.Uint32()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tab, err := New(capacity)
		if err != nil {
			b.Fatal(err)
		}
		for row, key := range keys {
			if _, err := tab.AddNumber(key, uint32(row+1)); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkTable_Find(b *testing.B) {
	const capacity = 10000
	tab, err := New(capacity)
	if err != nil {
		b.Fatal(err)
	}
	for row := 1; row <= capacity; row++ {
		if _, err := tab.AddNumber(uint32(row*7), uint32(row)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tab.Find(uint32((i % capacity) * 7))
	}
}
