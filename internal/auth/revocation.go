package auth

import (
	"sync"
	"time"
)

// Revoker logout edilmiş token'ların jti değerlerini token ömrü boyunca
// tutar. JWT durumsuz olduğu için iptal bilgisi tek ek durumumuzdur.
type Revoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token'ın son geçerlilik anı
	now     func() time.Time
}

func NewRevoker() *Revoker {
	return &Revoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke jti'yi expiresAt'e kadar iptal listesine alır. Aynı token'ı iki
// kez iptal etmek hata değildir.
func (r *Revoker) Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	r.revoked[jti] = expiresAt
}

// Revoked jti iptal edilmiş mi?
func (r *Revoker) Revoked(jti string) bool {
	if jti == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[jti]
	if !ok {
		return false
	}
	if r.now().After(exp) {
		// Token zaten geçersiz, listede tutmaya gerek yok
		delete(r.revoked, jti)
		return false
	}
	return true
}

// prune süresi geçmiş kayıtları temizler; kilit tutulurken çağrılır.
func (r *Revoker) prune() {
	now := r.now()
	for jti, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, jti)
		}
	}
}
