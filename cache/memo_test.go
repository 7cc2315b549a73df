package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const testKey = "sitehealth:report:0123456789abcdef"

func countingLoad(calls *atomic.Int32, value string) LoadFunc {
	return func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte(value), nil
	}
}

func TestMemo_MissThenHit(t *testing.T) {
	m := NewMemo(NewMemoryCache(), DefaultPolicy())
	ctx := context.Background()
	var calls atomic.Int32

	v, hit, err := m.Do(ctx, testKey, false, countingLoad(&calls, "report"))
	if err != nil || hit || string(v) != "report" {
		t.Fatalf("first Do() = %q, hit %v, err %v; want report, miss", v, hit, err)
	}

	v, hit, err = m.Do(ctx, testKey, false, countingLoad(&calls, "other"))
	if err != nil || !hit || string(v) != "report" {
		t.Fatalf("second Do() = %q, hit %v, err %v; want cached report", v, hit, err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("load calls = %d, want 1", got)
	}
}

func TestMemo_RefreshAlwaysLoads(t *testing.T) {
	c := NewMemoryCache()
	m := NewMemo(c, DefaultPolicy())
	ctx := context.Background()
	var calls atomic.Int32

	_, _, _ = m.Do(ctx, testKey, false, countingLoad(&calls, "old"))
	v, hit, err := m.Do(ctx, testKey, true, countingLoad(&calls, "new"))
	if err != nil || hit || string(v) != "new" {
		t.Fatalf("refresh Do() = %q, hit %v, err %v; want new, miss", v, hit, err)
	}

	cached, ok, _ := c.Get(ctx, testKey)
	if !ok || string(cached) != "new" {
		t.Errorf("cached value = %q, want new", cached)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("load calls = %d, want 2", got)
	}
}

func TestMemo_DisabledPolicyAlwaysLoads(t *testing.T) {
	c := NewMemoryCache()
	m := NewMemo(c, NoCachePolicy())
	ctx := context.Background()
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		if _, hit, _ := m.Do(ctx, testKey, false, countingLoad(&calls, "v")); hit {
			t.Errorf("Do() #%d hit = true, want false", i)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("load calls = %d, want 3", got)
	}
	if c.Len() != 0 {
		t.Errorf("cache Len() = %d, want 0", c.Len())
	}
	if m.Enabled() {
		t.Error("Enabled() = true, want false")
	}
}

func TestMemo_NilCache(t *testing.T) {
	m := NewMemo(nil, DefaultPolicy())
	var calls atomic.Int32

	_, _, _ = m.Do(context.Background(), testKey, false, countingLoad(&calls, "v"))
	_, _, _ = m.Do(context.Background(), testKey, false, countingLoad(&calls, "v"))

	if got := calls.Load(); got != 2 {
		t.Errorf("load calls = %d, want 2", got)
	}
	if err := m.Invalidate(context.Background(), testKey); err != nil {
		t.Errorf("Invalidate() error = %v, want nil", err)
	}
}

func TestMemo_LoadErrorNotCached(t *testing.T) {
	c := NewMemoryCache()
	m := NewMemo(c, DefaultPolicy())
	ctx := context.Background()
	loadErr := errors.New("dispatch failed")

	_, _, err := m.Do(ctx, testKey, false, func(ctx context.Context) ([]byte, error) {
		return nil, loadErr
	})
	if !errors.Is(err, loadErr) {
		t.Fatalf("Do() error = %v, want %v", err, loadErr)
	}
	if c.Len() != 0 {
		t.Errorf("cache Len() = %d, want 0", c.Len())
	}
}

func TestMemo_BackendErrorsPropagate(t *testing.T) {
	backendErr := errors.Join(ErrBackend, errors.New("connection refused"))
	m := NewMemo(newFlakyCache(-1, backendErr), DefaultPolicy())
	var calls atomic.Int32

	_, _, err := m.Do(context.Background(), testKey, false, countingLoad(&calls, "v"))
	if !errors.Is(err, ErrBackend) {
		t.Errorf("Do() error = %v, want ErrBackend", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("load calls = %d, want 0 when Get fails", got)
	}

	_, _, err = m.Do(context.Background(), testKey, true, countingLoad(&calls, "v"))
	if !errors.Is(err, ErrBackend) {
		t.Errorf("refresh Do() error = %v, want ErrBackend from Set", err)
	}
}

func TestMemo_InvalidKey(t *testing.T) {
	m := NewMemo(NewMemoryCache(), DefaultPolicy())

	_, _, err := m.Do(context.Background(), "", false, func(ctx context.Context) ([]byte, error) {
		t.Error("load called for invalid key")
		return nil, nil
	})
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Do() error = %v, want ErrInvalidKey", err)
	}
}

func TestMemo_ConcurrentMissesShareLoad(t *testing.T) {
	m := NewMemo(NewMemoryCache(), DefaultPolicy())
	var calls atomic.Int32
	release := make(chan struct{})

	load := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("shared"), nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, _ := m.Do(context.Background(), testKey, false, load)
			results[i] = string(v)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("load calls = %d, want 1", got)
	}
	for i, r := range results {
		if r != "shared" {
			t.Errorf("results[%d] = %q, want shared", i, r)
		}
	}
}

func TestMemo_Invalidate(t *testing.T) {
	c := NewMemoryCache()
	m := NewMemo(c, DefaultPolicy())
	ctx := context.Background()
	var calls atomic.Int32

	_, _, _ = m.Do(ctx, testKey, false, countingLoad(&calls, "v"))
	if err := m.Invalidate(ctx, testKey); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	_, hit, _ := m.Do(ctx, testKey, false, countingLoad(&calls, "v"))

	if hit {
		t.Error("Do() after Invalidate hit = true, want false")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("load calls = %d, want 2", got)
	}
}
