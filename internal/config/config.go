package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port               string
	DBURL              string
	DBUser             string
	DBPassword         string
	LogLevel           string
	SeedDir            string
	HealthSchedule     string
	CORSAllowedOrigins []string
}

// fileConfig mirrors the optional JSON config file:
// {"db": {"url": "...", "user": "...", "password": "..."}, "http": {"port": 8080}}
type fileConfig struct {
	DB struct {
		URL      string `json:"url"`
		User     string `json:"user"`
		Password string `json:"password"`
	} `json:"db"`
	HTTP struct {
		Port json.Number `json:"port"`
	} `json:"http"`
}

// NewConfig loads configuration from environment variables.
// A .env file in the working directory is loaded first when present, and
// CONFIG_FILE may point to a JSON file whose values act as defaults that the
// environment overrides.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	defaults := map[string]string{
		"PORT":        "8080",
		"DB_URL":      "postgres://localhost:5436/ledger?sslmode=disable",
		"DB_USER":     "test",
		"DB_PASSWORD": "test",
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, defaults); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Port:           getEnv("PORT", defaults["PORT"]),
		DBURL:          getEnv("DB_URL", defaults["DB_URL"]),
		DBUser:         getEnv("DB_USER", defaults["DB_USER"]),
		DBPassword:     getEnv("DB_PASSWORD", defaults["DB_PASSWORD"]),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		SeedDir:        getEnv("SEED_DIR", ""),
		HealthSchedule: getEnv("DB_HEALTH_SCHEDULE", "@every 1m"),
	}
	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}

	return cfg, nil
}

// DSN returns the connection string for lib/pq with the configured
// credentials applied. URL-style values get the credentials as userinfo,
// key/value style values get user= and password= appended.
func (c *Config) DSN() string {
	if strings.HasPrefix(c.DBURL, "postgres://") || strings.HasPrefix(c.DBURL, "postgresql://") {
		u, err := url.Parse(c.DBURL)
		if err != nil {
			return c.DBURL
		}
		switch {
		case c.DBUser != "" && c.DBPassword != "":
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		case c.DBUser != "":
			u.User = url.User(c.DBUser)
		}
		return u.String()
	}

	dsn := c.DBURL
	if c.DBUser != "" {
		dsn += fmt.Sprintf(" user=%s", quoteValue(c.DBUser))
	}
	if c.DBPassword != "" {
		dsn += fmt.Sprintf(" password=%s", quoteValue(c.DBPassword))
	}
	return dsn
}

func loadFile(path string, defaults map[string]string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := json.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.DB.URL != "" {
		defaults["DB_URL"] = fc.DB.URL
	}
	if fc.DB.User != "" {
		defaults["DB_USER"] = fc.DB.User
	}
	if fc.DB.Password != "" {
		defaults["DB_PASSWORD"] = fc.DB.Password
	}
	if fc.HTTP.Port != "" {
		defaults["PORT"] = fc.HTTP.Port.String()
	}
	return nil
}

// quoteValue escapes a value for a libpq key/value connection string.
func quoteValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
