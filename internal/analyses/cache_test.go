package analyses

import (
	"fmt"
	"sync"
	"testing"

	"placement-backend/internal/analyses/engine"
)

func TestMemoryCacheGetSet(t *testing.T) {
	cache := NewMemoryCache()

	if _, ok := cache.Get("missing"); ok {
		t.Fatalf("empty cache reported a hit")
	}

	entry := Entry{Report: engine.Report{Score: 73, Benchmark: "B"}, FileType: "pdf", PageCount: 2}
	cache.Set("hash-1", entry)

	got, ok := cache.Get("hash-1")
	if !ok {
		t.Fatalf("expected hit")
	}
	if got.Report.Score != 73 || got.FileType != "pdf" || got.PageCount != 2 {
		t.Fatalf("cached entry mutated: %+v", got)
	}

	cache.Set("hash-1", Entry{Report: engine.Report{Score: 80}})
	if got, _ := cache.Get("hash-1"); got.Report.Score != 80 {
		t.Fatalf("set must replace the previous entry")
	}
	if cache.Len() != 1 {
		t.Fatalf("want 1 entry, got %d", cache.Len())
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("hash-%d", n%4)
			cache.Set(key, Entry{Report: engine.Report{Score: n}})
			cache.Get(key)
		}(i)
	}
	wg.Wait()
	if cache.Len() != 4 {
		t.Fatalf("want 4 entries, got %d", cache.Len())
	}
}
