package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL       string
	DBMaxOpenConns    int
	DBConnMaxIdleTime time.Duration
	DBConnectTimeout  time.Duration

	// JWT
	JWTSecret    string
	JWTExpiresIn int // トークン有効期間（秒）

	// GitHub
	GitHubAPIURL  string
	GitHubToken   string // 未設定の場合は未認証でAPIを呼び出す
	GitHubTimeout time.Duration

	// Rate Limit（req/min/user）
	RateLimitGeneral    int
	RateLimitProjectReg int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	// 署名鍵の欠落はサーバー設定不備であり、起動時点で失敗させる
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 20)
	cfg.DBConnMaxIdleTime = getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	cfg.DBConnectTimeout = getEnvDuration("DB_CONNECT_TIMEOUT", 2*time.Second)
	cfg.JWTExpiresIn = getEnvInt("JWT_EXPIRES_IN", 604800)
	cfg.GitHubAPIURL = getEnvString("GITHUB_API_URL", "https://api.github.com")
	cfg.GitHubToken = getEnvString("GITHUB_TOKEN", "")
	cfg.GitHubTimeout = getEnvDuration("GITHUB_TIMEOUT", 10*time.Second)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitProjectReg = getEnvInt("RATE_LIMIT_PROJECT_REG", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
