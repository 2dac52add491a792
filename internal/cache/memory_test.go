package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache[[]int](time.Minute, 0)

	c.Set("a", []int{1, 2, 3}, 0)

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 3 || got[2] != 3 {
		t.Errorf("unexpected value: %v", got)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache[string](time.Minute, 0)

	c.Set("short", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache[string](time.Minute, 0)
	c.Set("a", "1", 0)
	c.Set("b", "2", 0)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("expected deleted key to miss")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d items", c.Len())
	}
}

func TestKey_CaseInsensitiveQuery(t *testing.T) {
	if Key("all", "SIZE") != Key("all", "size") {
		t.Error("expected query case to be folded")
	}
	if Key("all", "size") == Key("review", "size") {
		t.Error("expected category to distinguish keys")
	}
	if Key("all", "size") == Key("all", "fit") {
		t.Error("expected query to distinguish keys")
	}
}
