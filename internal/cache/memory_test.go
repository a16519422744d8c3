package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestMemoryRoundTrip(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	payload := []byte(`{"items":[{"forecasts":[]}]}`)
	c.Set(ctx, "forecast:multiday", payload, time.Hour)

	got, ok := c.Get(ctx, "forecast:multiday")
	if !ok {
		t.Fatal("expected a cache hit before expiry")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, payload)
	}
}

func TestMemoryExpiredEntryIsPurged(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "key", []byte("value"), time.Hour)

	// Advance the clock to exactly the expiry instant; the entry must be
	// invisible from now >= expiry onward.
	now = now.Add(time.Hour)
	if _, ok := c.Get(ctx, "key"); ok {
		t.Fatal("expected miss at expiry instant")
	}

	// The first expired read must have deleted the entry, not just hidden
	// it, so a read with the clock rolled back still misses.
	now = now.Add(-time.Hour)
	if _, ok := c.Get(ctx, "key"); ok {
		t.Fatal("expected expired entry to be purged on first read")
	}
}

func TestMemoryOverwrite(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	c.Set(ctx, "key", []byte("old"), time.Hour)
	c.Set(ctx, "key", []byte("new"), time.Hour)

	got, ok := c.Get(ctx, "key")
	if !ok || string(got) != "new" {
		t.Fatalf("expected overwritten value, got %q (hit=%v)", got, ok)
	}
}

func TestMemoryClear(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"), time.Hour)
	c.Clear(ctx, "key")

	if _, ok := c.Get(ctx, "key"); ok {
		t.Fatal("expected miss after Clear")
	}
}

func TestMemoryMissIsNotAnError(t *testing.T) {
	c := NewMemory()

	if _, ok := c.Get(context.Background(), "never-set"); ok {
		t.Fatal("expected miss for unknown key")
	}
}
