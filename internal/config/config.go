package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Server   ServerConfig
	CORS     CORSConfig
	Audit    AuditConfig
	Client   ClientConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	// Path is the sqlite file (":memory:" for a throwaway database)
	Path string
}

type JWTConfig struct {
	AccessSecret      string
	AccessTokenExpiry time.Duration
}

// Enabled reports whether /api requires a bearer token.
func (c JWTConfig) Enabled() bool {
	return c.AccessSecret != ""
}

type ServerConfig struct {
	Port     string
	GinMode  string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AuditConfig controls how long audit entries are kept. Zero keeps them
// forever.
type AuditConfig struct {
	Retention     time.Duration
	PruneInterval time.Duration
}

// ClientConfig configures the clinicctl console
type ClientConfig struct {
	APIURL         string
	APIToken       string
	RequestTimeout time.Duration
	PageSize       int
	LogLevel       string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "clinica"),
			Path:     getEnv("DB_PATH", "clinica.db"),
		},
		JWT: JWTConfig{
			AccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
			AccessTokenExpiry: parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "12h"), 12*time.Hour),
		},
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			GinMode:  getEnv("GIN_MODE", "debug"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Audit: AuditConfig{
			Retention:     parseDuration(getEnv("AUDIT_RETENTION", "2160h"), 90*24*time.Hour),
			PruneInterval: parseDuration(getEnv("AUDIT_PRUNE_INTERVAL", "1h"), time.Hour),
		},
		Client: ClientConfig{
			APIURL:         getEnv("CLINIC_API_URL", "http://localhost:8080"),
			APIToken:       getEnv("CLINIC_API_TOKEN", ""),
			RequestTimeout: parseDuration(getEnv("CLINIC_REQUEST_TIMEOUT", "10s"), 10*time.Second),
			PageSize:       parseInt(getEnv("CLINIC_PAGE_SIZE", "10"), 10),
			LogLevel:       getEnv("CLINIC_LOG_LEVEL", "warn"),
		},
	}

	return config
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be \"mysql\", \"postgres\" or \"sqlite\", got %q", c.Database.Driver)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid duration format '%s', using %s\n", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		fmt.Fprintf(os.Stderr, "Warning: Invalid number '%s', using %d\n", s, fallback)
		return fallback
	}
	return n
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
