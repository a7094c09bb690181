package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := Key("analysis", "The accused was arrested.")
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != "payload" {
		t.Errorf("expected payload, got %q", got)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := Key("analysis", "short lived")
	_ = c.Set(key, []byte("x"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_OverwriteKeepsLatest(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := Key("analysis", "same text")
	_ = c.Set(key, []byte("first"), 0)
	_ = c.Set(key, []byte("second"), 0)

	got, ok := c.Get(key)
	if !ok || string(got) != "second" {
		t.Errorf("expected second, got %q (hit=%v)", got, ok)
	}
}

func TestKey_NamespaceSeparation(t *testing.T) {
	if Key("analysis", "text") == Key("sentences", "text") {
		t.Error("expected different keys for different namespaces")
	}
	if Key("analysis", "text") != Key("analysis", "text") {
		t.Error("expected stable keys")
	}
}
