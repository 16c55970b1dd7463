package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/acarlucci/gocalc/pkg/cache"
	"github.com/acarlucci/gocalc/pkg/parser"
	"github.com/acarlucci/gocalc/pkg/types"
)

func TestCacheNew(t *testing.T) {
	c := cache.New(10)
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
	if got := c.Capacity(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	if got := cache.New(0).Capacity(); got != 256 {
		t.Fatalf("expected default capacity 256, got %d", got)
	}
	if got := cache.New(-5).Capacity(); got != 256 {
		t.Fatalf("expected default capacity 256, got %d", got)
	}
}

func TestCacheSetGet(t *testing.T) {
	c := cache.New(4)
	expr, err := parser.Compile("1+1")
	if err != nil {
		t.Fatal(err)
	}
	c.Set("1+1", expr)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	got, ok := c.Get("1+1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != expr {
		t.Fatal("expected same expression pointer")
	}
}

func TestCacheMiss(t *testing.T) {
	c := cache.New(4)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected cache miss")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := cache.New(3)
	for _, k := range []string{"1+1", "2+2", "3+3", "4+4"} {
		expr, err := parser.Compile(k)
		if err != nil {
			t.Fatal(err)
		}
		c.Set(k, expr)
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", got)
	}
	if _, ok := c.Get("1+1"); ok {
		t.Fatal(`expected "1+1" to be evicted (LRU)`)
	}
	if _, ok := c.Get("4+4"); !ok {
		t.Fatal(`expected most-recently-inserted "4+4" to survive`)
	}
}

func TestCacheGetPromotes(t *testing.T) {
	c := cache.New(2)
	for _, k := range []string{"1+1", "2+2"} {
		expr, _ := parser.Compile(k)
		c.Set(k, expr)
	}

	// Touch the older entry, then insert a third. The untouched entry is
	// now the least recently used and must be the one evicted.
	if _, ok := c.Get("1+1"); !ok {
		t.Fatal("expected hit before promotion")
	}
	expr, _ := parser.Compile("3+3")
	c.Set("3+3", expr)

	if _, ok := c.Get("1+1"); !ok {
		t.Fatal(`expected promoted "1+1" to survive`)
	}
	if _, ok := c.Get("2+2"); ok {
		t.Fatal(`expected untouched "2+2" to be evicted`)
	}
}

func TestCacheClear(t *testing.T) {
	c := cache.New(4)
	for _, k := range []string{"1+1", "2+2", "3+3"} {
		expr, _ := parser.Compile(k)
		c.Set(k, expr)
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("expected 0 after Clear, got %d", got)
	}
}

func TestCacheGetOrCompile(t *testing.T) {
	c := cache.New(4)
	callCount := 0
	compileFn := func() (*types.Expression, error) {
		callCount++
		return parser.Compile("2*3")
	}

	expr1, err := c.GetOrCompile("2*3", compileFn)
	if err != nil || expr1 == nil {
		t.Fatalf("first GetOrCompile: %v", err)
	}
	if callCount != 1 {
		t.Fatalf("expected 1 compile call, got %d", callCount)
	}

	expr2, err := c.GetOrCompile("2*3", compileFn)
	if err != nil || expr2 == nil {
		t.Fatalf("second GetOrCompile: %v", err)
	}
	if callCount != 1 {
		t.Fatalf("expected still 1 call (cached), got %d", callCount)
	}
	if expr1 != expr2 {
		t.Fatal("expected same pointer from cache")
	}
}

func TestCacheGetOrCompileError(t *testing.T) {
	c := cache.New(4)
	callCount := 0
	failFn := func() (*types.Expression, error) {
		callCount++
		return parser.Compile("2 +")
	}

	for i := 1; i <= 2; i++ {
		if _, err := c.GetOrCompile("2 +", failFn); err == nil {
			t.Fatal("expected compile error")
		}
		if callCount != i {
			t.Fatalf("expected %d compile calls, got %d", i, callCount)
		}
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("expected failed compiles to stay uncached, got %d entries", got)
	}
}

func TestCacheSetUpdate(t *testing.T) {
	c := cache.New(4)
	expr1, _ := parser.Compile("1+2")
	expr2, _ := parser.Compile("(1+2)")
	c.Set("k", expr1)
	c.Set("k", expr2) // overwrite
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if got != expr2 {
		t.Fatal("expected updated expression pointer")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := cache.New(4)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				source := fmt.Sprintf("%d+%d", (g+i)%8, i%3)
				expr, err := c.GetOrCompile(source, func() (*types.Expression, error) {
					return parser.Compile(source)
				})
				if err != nil {
					t.Errorf("GetOrCompile(%q) returned error: %v", source, err)
					return
				}
				if expr.Source() != source {
					t.Errorf("cached Source() = %q, want %q", expr.Source(), source)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if got := c.Len(); got > 4 {
		t.Fatalf("cache exceeded capacity: %d entries", got)
	}
}
