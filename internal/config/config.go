package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env             string
	MongoURI        string
	MongoDB         string
	ServerAddr      string
	FrontendOrigins []string

	RateLimitLogin     int
	RateLimitUpload    int
	RateLimitWindowSec int

	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	AdminAPIKey   string
	AdminSetupKey string
	JWTSecret     string

	AccessTTLMinutes  int
	RefreshTTLMinutes int
	CookieSecure      bool

	MaxUploadMB int

	S3Region         string
	S3Endpoint       string
	StoragePublicURL string

	AIGatewayURL string
	AIGatewayKey string

	RealtimeEnabled bool

	Timezone *time.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1"
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() (*Config, error) {
	loadDotEnv(".env")
	loc, err := time.LoadLocation(getEnv("TZ", "America/Sao_Paulo"))
	if err != nil {
		return nil, err
	}

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017/engajapro")
	mongoDB := getEnv("MONGO_DB", "")
	if mongoDB == "" {
		mongoDB = mongoDBFromURI(mongoURI)
	}
	if mongoDB == "" {
		mongoDB = "engajapro"
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		MongoURI:        mongoURI,
		MongoDB:         mongoDB,
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigins: getEnvList("FRONTEND_ORIGINS", "http://localhost:3000"),

		RateLimitLogin:     getEnvInt("RATE_LIMIT_LOGIN", 10),
		RateLimitUpload:    getEnvInt("RATE_LIMIT_UPLOAD", 30),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),

		RedisURL:        getEnv("REDIS_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 60),

		AdminAPIKey:   getEnv("ADMIN_API_KEY", ""),
		AdminSetupKey: getEnv("ADMIN_SETUP_KEY", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),

		AccessTTLMinutes:  getEnvInt("ACCESS_TTL_MINUTES", 15),
		RefreshTTLMinutes: getEnvInt("REFRESH_TTL_MINUTES", 43200),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),

		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 5),

		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", ""),

		AIGatewayURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		AIGatewayKey: getEnv("AI_GATEWAY_KEY", ""),

		RealtimeEnabled: getEnvBool("REALTIME_ENABLED", true),

		Timezone: loc,
	}

	return cfg, nil
}

func mongoDBFromURI(uri string) string {
	idx := strings.Index(uri, "//")
	if idx < 0 {
		return ""
	}
	rest := uri[idx+2:]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return ""
	}
	db := rest[slash+1:]
	if q := strings.Index(db, "?"); q >= 0 {
		db = db[:q]
	}
	// mongodb URIs sometimes include extra path segments; only the first is the db name.
	if s := strings.Index(db, "/"); s >= 0 {
		db = db[:s]
	}
	return strings.TrimSpace(db)
}

func loadDotEnv(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, val)
	}
}
