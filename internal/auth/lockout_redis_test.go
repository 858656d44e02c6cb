package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis: kilitleme deposunun kullandığı komutları bellekte taklit eder.
// TTL'ler gerçek zaman yerine sahte saate göre düşülür.
type fakeRedis struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
	now     time.Time
	err     error // tüm komutlara enjekte edilen hata
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
		now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRedis) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// dropExpired kilit tutulurken çağrılır.
func (f *fakeRedis) dropExpired(key string) {
	if exp, ok := f.expires[key]; ok && !f.now.Before(exp) {
		delete(f.counts, key)
		delete(f.expires, key)
	}
}

func (f *fakeRedis) PTTL(ctx context.Context, key string) *redis.DurationCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewDurationResult(0, f.err)
	}
	f.dropExpired(key)
	if _, ok := f.counts[key]; !ok {
		return redis.NewDurationResult(-2*time.Millisecond, nil) // anahtar yok
	}
	exp, ok := f.expires[key]
	if !ok {
		return redis.NewDurationResult(-1*time.Millisecond, nil) // TTL'siz anahtar
	}
	return redis.NewDurationResult(exp.Sub(f.now), nil)
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.dropExpired(key)
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeRedis) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.counts[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	f.expires[key] = f.now.Add(ttl)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.counts[key] = 1
	f.expires[key] = f.now.Add(ttl)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, key := range keys {
		if _, ok := f.counts[key]; ok {
			delete(f.counts, key)
			delete(f.expires, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newRedisTestLockout(max int, blockFor time.Duration) (*redisLockout, *fakeRedis) {
	f := newFakeRedis()
	return &redisLockout{client: f, max: max, blockFor: blockFor}, f
}

func TestRedisLockout_BlocksAfterMaxFailures(t *testing.T) {
	r, _ := newRedisTestLockout(5, 5*time.Minute)

	for i := 0; i < 4; i++ {
		if r.Failure("admin@cafe.com") {
			t.Fatalf("failure %d triggered block early", i+1)
		}
		if _, blocked := r.Blocked("admin@cafe.com"); blocked {
			t.Fatalf("blocked after %d failures, want unblocked", i+1)
		}
	}

	if !r.Failure("admin@cafe.com") {
		t.Fatal("5th failure did not trigger block")
	}

	retryAfter, blocked := r.Blocked("admin@cafe.com")
	if !blocked {
		t.Fatal("identity not blocked after threshold")
	}
	if retryAfter <= 0 || retryAfter > 5*time.Minute {
		t.Errorf("retryAfter = %v, want in (0, 5m]", retryAfter)
	}
}

func TestRedisLockout_BlockExpiresAndCounterCleared(t *testing.T) {
	r, f := newRedisTestLockout(5, 5*time.Minute)

	for i := 0; i < 5; i++ {
		r.Failure("admin@cafe.com")
	}
	if _, blocked := r.Blocked("admin@cafe.com"); !blocked {
		t.Fatal("expected blocked state")
	}

	f.advance(4 * time.Minute)
	if _, blocked := r.Blocked("admin@cafe.com"); !blocked {
		t.Fatal("block lifted before TTL elapsed")
	}

	// Kilit TTL'i dolunca kilit kalkar; sayaç anahtarı blok anında
	// silinmişti, yeni denemeler sıfırdan sayılır
	f.advance(2 * time.Minute)
	if _, blocked := r.Blocked("admin@cafe.com"); blocked {
		t.Fatal("still blocked after TTL elapsed")
	}
	for i := 0; i < 4; i++ {
		if r.Failure("admin@cafe.com") {
			t.Fatalf("counter not cleared: failure %d after expiry triggered block", i+1)
		}
	}
}

func TestRedisLockout_CounterWindowExpires(t *testing.T) {
	r, f := newRedisTestLockout(5, 5*time.Minute)

	// Eşiğin altında kalan denemeler pencere dolunca unutulur
	for i := 0; i < 4; i++ {
		r.Failure("admin@cafe.com")
	}
	f.advance(6 * time.Minute)

	for i := 0; i < 4; i++ {
		if r.Failure("admin@cafe.com") {
			t.Fatalf("stale counter survived window: failure %d triggered block", i+1)
		}
	}
}

func TestRedisLockout_ResetClearsBothKeys(t *testing.T) {
	r, _ := newRedisTestLockout(5, 5*time.Minute)

	for i := 0; i < 5; i++ {
		r.Failure("admin@cafe.com")
	}
	r.Reset("admin@cafe.com")

	if _, blocked := r.Blocked("admin@cafe.com"); blocked {
		t.Fatal("still blocked after reset")
	}
	for i := 0; i < 4; i++ {
		if r.Failure("admin@cafe.com") {
			t.Fatalf("counter survived reset: failure %d triggered block", i+1)
		}
	}
}

func TestRedisLockout_FailsOpenOnRedisErrors(t *testing.T) {
	r, f := newRedisTestLockout(5, 5*time.Minute)
	f.err = errors.New("connection refused")

	// Redis ulaşılamazken kimse kilitlenmez, giriş akışı engellenmez
	if r.Failure("admin@cafe.com") {
		t.Error("Failure reported block while Redis down")
	}
	if _, blocked := r.Blocked("admin@cafe.com"); blocked {
		t.Error("Blocked reported lock while Redis down")
	}
}
