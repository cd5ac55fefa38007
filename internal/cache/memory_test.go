package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()

	if err := c.Set(ctx, "stats", []byte(`{"todayVisitors":3}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "stats")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"todayVisitors":3}` {
		t.Errorf("Get = %q", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("err = %v, want ErrCacheMiss after expiry", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("err = %v, want ErrCacheMiss after delete", err)
	}
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()
	src := []byte("original")
	_ = c.Set(ctx, "k", src, 0)
	src[0] = 'X'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value mutated: %q", got)
	}

	got[0] = 'Y'
	again, _ := c.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("returned value not a copy: %q", again)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	_ = c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set err = %v, want ErrCacheClosed", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get err = %v, want ErrCacheClosed", err)
	}
}
