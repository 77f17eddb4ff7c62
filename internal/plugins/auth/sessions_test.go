package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestSessionStore(t *testing.T, ttl time.Duration) (SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisSessionStore(rdb, ttl), mr
}

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	store, mr := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, Session{UserID: 4, Username: "lee", Role: RoleCoordinator})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ttl := mr.TTL(sessionKeyPrefix + id); ttl != time.Hour {
		t.Errorf("expected 1h TTL, got %s", ttl)
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a UUID session id, got %q", id)
	}

	raw, err := mr.Get(sessionKeyPrefix + id)
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	if sess.UserID != 4 || sess.Role != RoleCoordinator || sess.CreatedAt.IsZero() {
		t.Errorf("unexpected session %+v", sess)
	}

	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if mr.Exists(sessionKeyPrefix + id) {
		t.Fatal("expected the record to be gone")
	}
	if err := store.Destroy(ctx, id); err != nil {
		t.Errorf("second destroy should succeed, got %v", err)
	}
}

func TestRedisSessionStore_Expires(t *testing.T) {
	store, mr := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	id, _ := store.Create(ctx, Session{UserID: 1, Role: RoleExaminer})
	mr.FastForward(2 * time.Minute)

	if mr.Exists(sessionKeyPrefix + id) {
		t.Fatal("expected the record to expire with the token")
	}
}
