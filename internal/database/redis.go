package database

import (
	"context"
	"log"

	"cafemenu-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis opsiyonel Redis bağlantısını kurar. REDIS_ADDR boşsa veya
// bağlantı kurulamazsa client nil kalır; kilitleme sayaçları process içi
// belleğe düşer.
func InitRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] Redis bağlantısı kurulamadı: %v. Kilitleme sayaçları bellekte tutulacak.", err)
		RedisClient = nil
		return
	}
	log.Println("Redis bağlantısı başarılı:", cfg.RedisAddr)
}
