package auth

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failKeyPrefix  = "login_fail:"
	blockKeyPrefix = "login_block:"
)

// redisCommands: kilitleme deposunun kullandığı komut alt kümesi.
// *redis.Client bunu sağlar; testler sahte bir implementasyon kullanır.
type redisCommands interface {
	PTTL(ctx context.Context, key string) *redis.DurationCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisLockout struct {
	client   redisCommands
	max      int
	blockFor time.Duration
}

// NewRedisLockout Redis destekli LockoutStore; birden fazla replica aynı
// sayaçları paylaşır. INCR atomiktir, yarışan denemeler kaybolmaz.
// Redis hatalarında deneme engellenmez (kilit açık kalır), sadece loglanır.
func NewRedisLockout(client *redis.Client, maxAttempts int, blockFor time.Duration) LockoutStore {
	return &redisLockout{client: client, max: maxAttempts, blockFor: blockFor}
}

func (r *redisLockout) Blocked(identity string) (time.Duration, bool) {
	ctx := context.Background()
	ttl, err := r.client.PTTL(ctx, blockKeyPrefix+identity).Result()
	if err != nil {
		log.Printf("[WARN] Redis kilit sorgusu başarısız: %v", err)
		return 0, false
	}
	if ttl > 0 {
		return ttl, true
	}
	return 0, false
}

func (r *redisLockout) Failure(identity string) bool {
	ctx := context.Background()
	key := failKeyPrefix + identity

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("[WARN] Redis sayaç artırılamadı: %v", err)
		return false
	}
	// İlk deneme sayaca TTL verir; pencere kilit süresiyle aynı
	if count == 1 {
		r.client.Expire(ctx, key, r.blockFor)
	}

	if int(count) >= r.max {
		if err := r.client.Set(ctx, blockKeyPrefix+identity, 1, r.blockFor).Err(); err != nil {
			log.Printf("[WARN] Redis kilit yazılamadı: %v", err)
			return false
		}
		r.client.Del(ctx, key)
		return true
	}
	return false
}

func (r *redisLockout) Reset(identity string) {
	ctx := context.Background()
	r.client.Del(ctx, failKeyPrefix+identity, blockKeyPrefix+identity)
}
