package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска сервиса.
type Config struct {
	Env            string
	HTTPPort       string
	DatabaseURL    string
	MigrationsPath string
	AllowedOrigins []string

	JWTSecret      string
	IdentityTTL    time.Duration

	RateLimitLimit  int64
	RateLimitPeriod time.Duration

	// Идентификаторы владельца и агента (UUID). Задаются при запуске.
	OwnerID string
	AgentID string

	// Экономика эскроу.
	MinStake       float64
	MaxAccessFee   float64
	PassScore      int
	AccessTimeout  time.Duration
	MaxSubmissions int
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// .env загружаем только если он существует.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:            env,
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		OwnerID:        getEnv("ESCROW_OWNER_ID", ""),
		AgentID:        getEnv("ESCROW_AGENT_ID", ""),
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if env == "production" {
		if jwtSecret == "" || len(jwtSecret) < 32 {
			return nil, fmt.Errorf("config: JWT_SECRET обязателен и должен быть не менее 32 символов в production")
		}
		if cfg.AgentID == "" {
			return nil, fmt.Errorf("config: ESCROW_AGENT_ID обязателен в production")
		}
	} else if jwtSecret == "" {
		jwtSecret = "super-secret-development-only-change-in-production"
		log.Printf("config: WARNING - используется дефолтный JWT_SECRET, измените в production!")
	}
	cfg.JWTSecret = jwtSecret

	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	cfg.IdentityTTL = mustParseDuration(getEnv("IDENTITY_TOKEN_TTL", "720h"))
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "60"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))

	// Экономика эскроу. Порог и срок совпадают с политикой продукта:
	// score >= 70 — verified, возврат через 7 суток после оплаты.
	cfg.MinStake = mustParseFloat(getEnv("ESCROW_MIN_STAKE", "100"))
	cfg.MaxAccessFee = mustParseFloat(getEnv("ESCROW_MAX_ACCESS_FEE", "100000"))
	cfg.PassScore = int(mustParseInt64(getEnv("ESCROW_PASS_SCORE", "70")))
	cfg.AccessTimeout = mustParseDuration(getEnv("ESCROW_ACCESS_TIMEOUT", "168h"))
	cfg.MaxSubmissions = int(mustParseInt64(getEnv("ESCROW_MAX_SUBMISSIONS", "10")))

	if cfg.MinStake <= 0 || cfg.MaxAccessFee <= 0 || cfg.MaxSubmissions <= 0 {
		return nil, fmt.Errorf("config: параметры эскроу должны быть положительными")
	}
	if cfg.PassScore < 0 || cfg.PassScore > 100 {
		return nil, fmt.Errorf("config: ESCROW_PASS_SCORE должен быть в диапазоне 0..100")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в int64.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}

// mustParseFloat безопасно парсит строку в float64.
func mustParseFloat(v string) float64 {
	num, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}
