package auth

import (
	"fmt"
	"sync"
	"time"
)

// LockedOutError: kimlik geçici olarak kilitli; RetryAfter kadar sonra
// tekrar denenebilir.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("çok fazla hatalı giriş, %d saniye sonra tekrar deneyin", int(e.RetryAfter.Seconds()+0.5))
}

// LockoutStore art arda başarısız giriş denemelerini kimlik (email) bazında
// sayar. Sayaç IP'ye değil denenen kimliğe bağlıdır: elimizdeki tek ayırt
// edici sinyal budur.
type LockoutStore interface {
	// Blocked kimliğin kilitli olup olmadığını ve kalan süreyi döndürür.
	Blocked(identity string) (time.Duration, bool)
	// Failure başarısız bir denemeyi kaydeder; eşik aşıldıysa true döner.
	Failure(identity string) bool
	// Reset başarılı girişten sonra durumu temizler.
	Reset(identity string)
}

type attemptState struct {
	failures     int
	blockedUntil time.Time
}

type memoryLockout struct {
	mu       sync.Mutex
	entries  map[string]*attemptState
	max      int
	blockFor time.Duration
	now      func() time.Time
}

// NewMemoryLockout process içi LockoutStore. Mutex, aynı kimlik için
// yarışan başarısız denemelerin sayaç artışını kaybetmemesini garantiler.
func NewMemoryLockout(maxAttempts int, blockFor time.Duration) LockoutStore {
	return &memoryLockout{
		entries:  make(map[string]*attemptState),
		max:      maxAttempts,
		blockFor: blockFor,
		now:      time.Now,
	}
}

func (m *memoryLockout) Blocked(identity string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[identity]
	if !ok {
		return 0, false
	}
	if e.blockedUntil.IsZero() {
		return 0, false
	}
	remaining := e.blockedUntil.Sub(m.now())
	if remaining > 0 {
		return remaining, true
	}
	// Kilit süresi doldu: Unblocked durumuna dön, sayaç sıfırlanır
	delete(m.entries, identity)
	return 0, false
}

func (m *memoryLockout) Failure(identity string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[identity]
	if !ok {
		e = &attemptState{}
		m.entries[identity] = e
	}
	e.failures++
	if e.failures >= m.max {
		e.blockedUntil = m.now().Add(m.blockFor)
		return true
	}
	return false
}

func (m *memoryLockout) Reset(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, identity)
}
