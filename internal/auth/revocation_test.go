package auth

import (
	"testing"
	"time"
)

func TestRevoker_RevokeAndCheck(t *testing.T) {
	r := NewRevoker()
	exp := time.Now().Add(time.Hour)

	if r.Revoked("jti-1") {
		t.Fatal("unknown jti reported revoked")
	}

	r.Revoke("jti-1", exp)
	if !r.Revoked("jti-1") {
		t.Fatal("revoked jti not reported")
	}

	// İdempotent: ikinci revoke hata üretmez, durum değişmez
	r.Revoke("jti-1", exp)
	if !r.Revoked("jti-1") {
		t.Fatal("second revoke cleared state")
	}
}

func TestRevoker_ExpiredEntriesDropped(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := &Revoker{
		revoked: make(map[string]time.Time),
		now:     func() time.Time { return current },
	}

	r.Revoke("jti-1", current.Add(time.Minute))
	current = current.Add(2 * time.Minute)

	if r.Revoked("jti-1") {
		t.Fatal("expired token still reported revoked")
	}
	if len(r.revoked) != 0 {
		t.Errorf("expired entry not pruned, len = %d", len(r.revoked))
	}
}

func TestRevoker_EmptyJTIIgnored(t *testing.T) {
	r := NewRevoker()
	r.Revoke("", time.Now().Add(time.Hour))
	if r.Revoked("") {
		t.Fatal("empty jti should never be revoked")
	}
}
