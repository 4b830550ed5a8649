package memory

import (
	"math/rand"
	"testing"
	"time"

	"quizmaster-service/internal/app"
)

func testAttempt(id string) *app.Attempt {
	return app.NewAttempt(id, cachedSample(), nil, rand.New(rand.NewSource(1)))
}

func TestAttemptStorePutGetDelete(t *testing.T) {
	store := NewAttemptStore(time.Hour)

	store.Put(testAttempt("att-1"))
	if _, ok := store.Get("att-1"); !ok {
		t.Fatalf("expected stored attempt")
	}

	store.Delete("att-1")
	if _, ok := store.Get("att-1"); ok {
		t.Fatalf("expected attempt removed")
	}
}

func TestAttemptStoreExpiresAbandonedAttempts(t *testing.T) {
	store := NewAttemptStore(time.Minute)
	now := time.Now()
	store.clock = func() time.Time { return now }

	store.Put(testAttempt("att-1"))

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get("att-1"); ok {
		t.Fatalf("expected abandoned attempt to expire")
	}
}

func TestAttemptStoreZeroTTLKeepsAttempts(t *testing.T) {
	store := NewAttemptStore(0)
	now := time.Now()
	store.clock = func() time.Time { return now }

	store.Put(testAttempt("att-1"))
	now = now.Add(24 * time.Hour)
	if _, ok := store.Get("att-1"); !ok {
		t.Fatalf("zero TTL must not expire attempts")
	}
}
