package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/moviemaker/movie-api/internal/core/ports"
)

var _ ports.RevocationStore = (*RevocationStore)(nil)

func newTestStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationStore(client), mr
}

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("expected fresh token not revoked, got %v err=%v", revoked, err)
	}

	if err := store.Revoke(ctx, "jti-1", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err = store.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected token revoked, got %v err=%v", revoked, err)
	}
	if !mr.Exists("revoked:jti-1") {
		t.Fatalf("expected key revoked:jti-1")
	}

	ttl := mr.TTL("revoked:jti-1")
	if ttl <= 9*time.Minute || ttl > 10*time.Minute {
		t.Fatalf("expected ttl close to 10m, got %v", ttl)
	}
}

func TestRevocationStore_ExpiresWithToken(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("expected revocation to lapse with the token, got %v err=%v", revoked, err)
	}
}

func TestRevocationStore_IgnoresExpiredTokens(t *testing.T) {
	store, mr := newTestStore(t)

	if err := store.Revoke(context.Background(), "jti-old", time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if mr.Exists("revoked:jti-old") {
		t.Fatalf("expected no key for an already expired token")
	}
}

func TestRevocationStore_FailsClosed(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	if _, err := store.IsRevoked(context.Background(), "jti-1"); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
	if err := store.Revoke(context.Background(), "jti-1", time.Now().Add(time.Minute)); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
}

func TestPinger(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ping := Pinger(client)
	if err := ping(context.Background()); err != nil {
		t.Fatalf("expected ping to succeed, got %v", err)
	}
	mr.Close()
	if err := ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail after close")
	}
}
