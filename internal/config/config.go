package config

import (
	"os"
	"strconv"

	"hazard_duel/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	AllowedOrigin string

	// API limits
	APIRateLimit  int
	APIRateWindow int

	SnapshotCacheTTLMinutes int
	MatchIdleMinutes        int

	AppSettingsPath string
	JWT             JWTSettings
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	cfg := &Config{
		AppPort:                 port,
		DatabaseURL:             dbURL,
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 envInt("REDIS_DB", 0),
		LogLevel:                logLevel,
		LogJSON:                 os.Getenv("LOG_JSON") == "true",
		AllowedOrigin:           os.Getenv("ALLOWED_ORIGIN"),
		APIRateLimit:            envInt("API_RATE_LIMIT", 60),
		APIRateWindow:           envInt("API_RATE_WINDOW_SECONDS", 60),
		SnapshotCacheTTLMinutes: envInt("SNAPSHOT_CACHE_TTL_MINUTES", 60),
		MatchIdleMinutes:        envInt("MATCH_IDLE_MINUTES", 30),
		AppSettingsPath:         os.Getenv("APPSETTINGS_PATH"),
	}

	jwt, err := loadJWT(cfg.AppSettingsPath)
	if err != nil {
		logger.Fatal("failed to load jwt settings", "error", err)
	}
	cfg.JWT = jwt

	return cfg
}

// loadJWT reads the secrets file when an appsettings path is configured,
// otherwise falls back to JWT_* variables.
func loadJWT(appSettingsPath string) (JWTSettings, error) {
	if appSettingsPath != "" {
		return LoadSecrets(appSettingsPath)
	}

	s := JWTSettings{
		SecretKey:   os.Getenv("JWT_SECRET"),
		TokenKey:    os.Getenv("JWT_TOKEN_KEY"),
		ExpireHours: envInt("JWT_EXPIRE_HOURS", 0),
	}
	return s, s.validate()
}

// envInt returns a positive integer from env or def
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
