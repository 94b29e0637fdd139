package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache[string](0)
	defer c.Close()

	c.Set("a", "1", time.Minute)
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Expected 1, got %q (found=%v)", v, ok)
	}

	c.Set("b", "2", -time.Second)
	if _, ok := c.Get("b"); ok {
		t.Error("Expected expired item to be missing")
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected deleted item to be missing")
	}
}

func TestCacheUpdate(t *testing.T) {
	c := NewCache[int](0)
	defer c.Close()

	for i := 0; i < 3; i++ {
		c.Update("n", time.Minute, func(cur int, _ bool) int { return cur + 1 })
	}
	if v, _ := c.Get("n"); v != 3 {
		t.Errorf("Expected 3, got %d", v)
	}

	c.Set("old", 10, -time.Second)
	got := c.Update("old", time.Minute, func(cur int, found bool) int {
		if found {
			t.Error("Expected expired value to be reported as missing")
		}
		return cur + 1
	})
	if got != 1 {
		t.Errorf("Expected expired value to restart from zero, got %d", got)
	}
}

func TestCacheDeleteExpired(t *testing.T) {
	c := NewCache[int](0)
	defer c.Close()

	c.Set("live", 1, time.Minute)
	c.Set("dead", 1, -time.Second)
	c.deleteExpired()

	if c.Len() != 1 {
		t.Errorf("Expected 1 item after sweep, got %d", c.Len())
	}
}

func TestCacheDeletePrefix(t *testing.T) {
	c := NewCache[string](0)
	defer c.Close()

	c.Set("job:1", "a", time.Minute)
	c.Set("job:2", "b", time.Minute)
	c.Set("company:1", "c", time.Minute)

	if removed := c.DeletePrefix("job:"); removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	if _, ok := c.Get("company:1"); !ok {
		t.Error("Expected company entry to survive")
	}
}
