package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newBlacklist(t *testing.T) (TokenBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTokenBlacklist(rdb), mr
}

func TestTokenBlacklist_RevokeAndExpire(t *testing.T) {
	bl, mr := newBlacklist(t)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("fresh jti should not be revoked, got %v err=%v", revoked, err)
	}

	if err := bl.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expect revoked, got %v err=%v", revoked, err)
	}
	if !mr.Exists("token_blacklist:jti-1") {
		t.Fatalf("expect key with blacklist prefix")
	}

	mr.FastForward(2 * time.Minute)
	revoked, _ = bl.IsRevoked(ctx, "jti-1")
	if revoked {
		t.Fatalf("entry should expire with the token")
	}
}

func TestTokenBlacklist_ExpiredTokenIsNotStored(t *testing.T) {
	bl, mr := newBlacklist(t)
	if err := bl.Revoke(context.Background(), "old", 0); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if mr.Exists("token_blacklist:old") {
		t.Fatalf("expired token should not be stored")
	}
}

func TestNewTokenBlacklist_NilClient(t *testing.T) {
	if NewTokenBlacklist(nil) != nil {
		t.Fatalf("expect nil blacklist without redis")
	}
}
