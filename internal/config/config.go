package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あれば最優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     []string // 空ならイベント送信しない
	KafkaTopicOrders string

	JaegerEndpoint string // 空ならトレース送信しない

	JWTSecret    string        // JWT署名シークレット
	SessionTTL   time.Duration // 会員セッションcookieの有効期限
	AdminAuthTTL time.Duration // 管理者アクセストークンの有効期限
	CookieSecure bool

	LoginMaxAttempts int
	LoginWindow      time.Duration

	GoEnv string // development/production
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := intEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	sessionHours, err := intEnv("SESSION_TTL_HOURS", 168)
	if err != nil {
		return Config{}, err
	}
	adminMinutes, err := intEnv("ADMIN_TOKEN_TTL_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}
	maxAttempts, err := intEnv("LOGIN_MAX_ATTEMPTS", 5)
	if err != nil {
		return Config{}, err
	}
	windowMinutes, err := intEnv("LOGIN_WINDOW_MINUTES", 15)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicOrders: getenv("KAFKA_TOPIC_ORDER_EVENTS", "order-events"),

		JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		SessionTTL:   time.Duration(sessionHours) * time.Hour,
		AdminAuthTTL: time.Duration(adminMinutes) * time.Minute,
		CookieSecure: boolEnv("COOKIE_SECURE", true),

		LoginMaxAttempts: maxAttempts,
		LoginWindow:      time.Duration(windowMinutes) * time.Minute,

		GoEnv: os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.LoginMaxAttempts < 1 {
		return Config{}, fmt.Errorf("LOGIN_MAX_ATTEMPTS must be >= 1")
	}

	return cfg, nil
}

// DSNはgorm用の接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func boolEnv(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
