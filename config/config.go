package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds configuration values. Sensitive data has no in-code default
// and must come from the config file or the environment.
type AppConfig struct {
	AppPort   string
	GinMode   string
	GinPath   string // access log path
	JWTSecret string

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	AllowedOrigins     []string
	RateLimitPerMinute int

	// Public base URL prepended to generated upload URLs.
	PublicBaseURL string
	// Upload storage
	UploadDir            string
	UploadMaxSizeMB      int
	UploadsExpireEnabled bool
	UploadsExpireMinutes int

	// Redis for caching and token revocation
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var (
	cfg    AppConfig
	loaded bool
)

// Load reads configuration once during boot.
// Precedence: config/config.json -> defaults -> environment overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads a flat JSON object keyed by the same UPPER_SNAKE names
// the environment overrides use.
func loadJSONConfig(path string, c *AppConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return err
	}
	for key, v := range values {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			// Non-string values (numbers, bools) are stringified.
			s = strings.Trim(string(v), "\"")
		}
		setField(c, key, s)
	}
	return nil
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8000"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/access.log"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "canvashare"
	}
	if c.DBName == "" {
		c.DBName = "canvashare"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = 60
	}
	if c.UploadDir == "" {
		c.UploadDir = filepath.Join("static", "uploads")
	}
	if c.UploadMaxSizeMB <= 0 {
		c.UploadMaxSizeMB = 50
	}
	if c.UploadsExpireMinutes <= 0 {
		c.UploadsExpireMinutes = 0 // zero keeps uploads forever
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/app.log"
	}
}

func applyEnvOverrides(c *AppConfig) {
	for _, key := range []string{
		"APP_PORT", "GIN_MODE", "GIN_PATH", "JWT_SECRET",
		"DATABASE_URI", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"ALLOWED_ORIGINS", "RATE_LIMIT_PER_MINUTE",
		"PUBLIC_BASE_URL", "UPLOAD_DIR", "UPLOAD_MAX_SIZE_MB",
		"UPLOADS_EXPIRE_ENABLED", "UPLOADS_EXPIRE_MINUTES",
		"REDIS_HOST", "REDIS_PORT", "REDIS_DB", "REDIS_PASSWORD",
		"LOG_LEVEL", "LOG_PATH", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS",
		"LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
	} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			setField(c, key, v)
		}
	}
}

func setField(c *AppConfig, key, value string) {
	switch strings.ToUpper(key) {
	case "APP_PORT":
		c.AppPort = value
	case "GIN_MODE":
		c.GinMode = value
	case "GIN_PATH":
		c.GinPath = value
	case "JWT_SECRET":
		c.JWTSecret = value
	case "DATABASE_URI":
		c.DatabaseURI = value
	case "DB_HOST":
		c.DBHost = value
	case "DB_PORT":
		c.DBPort = value
	case "DB_USER":
		c.DBUser = value
	case "DB_PASSWORD":
		c.DBPassword = value
	case "DB_NAME":
		c.DBName = value
	case "ALLOWED_ORIGINS":
		c.AllowedOrigins = splitCSV(value)
	case "RATE_LIMIT_PER_MINUTE":
		c.RateLimitPerMinute = atoi(value, c.RateLimitPerMinute)
	case "PUBLIC_BASE_URL":
		c.PublicBaseURL = strings.TrimRight(value, "/")
	case "UPLOAD_DIR":
		c.UploadDir = value
	case "UPLOAD_MAX_SIZE_MB":
		c.UploadMaxSizeMB = atoi(value, c.UploadMaxSizeMB)
	case "UPLOADS_EXPIRE_ENABLED":
		c.UploadsExpireEnabled = isTrue(value)
	case "UPLOADS_EXPIRE_MINUTES":
		c.UploadsExpireMinutes = atoi(value, c.UploadsExpireMinutes)
	case "REDIS_HOST":
		c.RedisHost = value
	case "REDIS_PORT":
		c.RedisPort = atoi(value, c.RedisPort)
	case "REDIS_DB":
		c.RedisDB = atoi(value, c.RedisDB)
	case "REDIS_PASSWORD":
		c.RedisPassword = value
	case "LOG_LEVEL":
		c.LogLevel = value
	case "LOG_PATH":
		c.LogPath = value
	case "LOG_MAX_SIZE_MB":
		c.LogMaxSizeMB = atoi(value, c.LogMaxSizeMB)
	case "LOG_MAX_BACKUPS":
		c.LogMaxBackups = atoi(value, c.LogMaxBackups)
	case "LOG_MAX_AGE_DAYS":
		c.LogMaxAgeDays = atoi(value, c.LogMaxAgeDays)
	case "LOG_COMPRESS":
		c.LogCompress = isTrue(value)
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoi(value string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return n
	}
	return fallback
}

func isTrue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
