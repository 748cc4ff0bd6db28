package builder

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type mockKV struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockKV() *mockKV {
	return &mockKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockKV) Get(_ context.Context, key string) (string, error) {
	value, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (m *mockKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *mockKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockKV) BuilderSessionKey(userID string) string {
	return "modifyx:builder:session:" + userID
}

func TestSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newMockKV()
	store := NewRedisSessionStore(kv, 24*time.Hour)

	session := readySession(t)
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := kv.ttls[kv.BuilderSessionKey("user-1")]; got != 24*time.Hour {
		t.Fatalf("expected session ttl, got %v", got)
	}

	loaded, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.BrandID != "bmw" || loaded.ModelID != "x5" || loaded.Year != "2024" {
		t.Fatalf("round trip mismatch %+v", loaded)
	}
	if loaded.Options == nil {
		t.Fatalf("options must never be nil after load")
	}
}

func TestSessionStoreLoadMissingReturnsFresh(t *testing.T) {
	t.Parallel()
	store := NewRedisSessionStore(newMockKV(), time.Hour)

	session, err := store.Load(context.Background(), "user-404")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if session.UserID != "user-404" || session.BrandID != "" || len(session.Options) != 0 {
		t.Fatalf("expected fresh session, got %+v", session)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newMockKV()
	store := NewRedisSessionStore(kv, time.Hour)

	session := readySession(t)
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	loaded, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.BrandID != "" {
		t.Fatalf("expected fresh session after delete, got %+v", loaded)
	}
}
