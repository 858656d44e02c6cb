package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Menü deep-link ve QR render ayarları
	MenuBaseURL  string // QR kodun yönlendirdiği müşteri menüsü
	QRServiceURL string // Harici QR render servisi (URL şablonu, network çağrısı yok)
	QRImageSize  int    // Üretilen QR bitmap'inin kenar uzunluğu (px)

	// Admin giriş kilitleme politikası
	MaxLoginAttempts int
	BlockDuration    time.Duration

	// Kimlik doğrulama yolundaki mağaza sorguları için üst süre sınırı;
	// asılı kalan bağlantı login'i süresiz bekletemez
	AuthTimeout time.Duration

	// Cloudinary (ürün görseli yükleme)
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	CloudinaryFolder       string

	// Opsiyonel: birden fazla replica çalışırken kilitleme sayaçları için
	RedisAddr string
}

func Load() *Config {
	// .env varsa yükle; yoksa ortam değişkenleriyle devam
	if err := godotenv.Load(); err != nil {
		log.Println(".env dosyası bulunamadı, ortam değişkenleri kullanılıyor")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=cafemenu port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		MenuBaseURL:  getEnv("MENU_BASE_URL", "https://cafeumenu.vercel.app"),
		QRServiceURL: getEnv("QR_SERVICE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		QRImageSize:  getEnvInt("QR_IMAGE_SIZE", 400),

		MaxLoginAttempts: getEnvInt("MAX_LOGIN_ATTEMPTS", 5),
		BlockDuration:    time.Duration(getEnvInt("BLOCK_DURATION_MS", 300000)) * time.Millisecond,

		AuthTimeout: time.Duration(getEnvInt("AUTH_TIMEOUT_MS", 5000)) * time.Millisecond,

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
		CloudinaryFolder:       getEnv("CLOUDINARY_FOLDER", "cafe-menu"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryUploadPreset == "" {
		log.Println("[WARN] Cloudinary yapılandırması eksik, görsel yükleme endpoint'i çalışmayacak.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s sayı değil (%q), varsayılan %d kullanılıyor", key, v, def)
		return def
	}
	// Buradaki tüm sayısal ayarlar (boyut, eşik, süre) pozitif olmak zorunda
	if n <= 0 {
		log.Printf("[WARN] %s pozitif olmalı (%d), varsayılan %d kullanılıyor", key, n, def)
		return def
	}
	return n
}
