package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingConnectionURI = errors.New("CONNECTION_URI is not set")
	ErrMissingJWTSecret     = errors.New("JWT_SECRET is not set")
)

var defaultAllowedOrigins = []string{
	"http://localhost:8080",
	"http://localhost:4200",
	"https://myflix-firstapi-app.herokuapp.com",
	"http://localhost:1234",
	"https://myflix-movie-client-react.netlify.app",
	"https://rmoise.github.io",
}

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBConnStr string
	DBName    string

	BcryptCost           int
	FavoritesDeduplicate bool

	AllowedOrigins []string
	AccessLogPath  string
	StaticDir      string

	LogLevel string
	LogDev   bool
}

// Load reads the .env file when present and builds the configuration from
// the environment. A missing connection string or signing key is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:              getEnv("PORT", "8080"),
		JWTKey:               []byte(getEnv("JWT_SECRET", "")),
		JWTExp:               time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 168)) * time.Hour,
		DBConnStr:            getEnv("CONNECTION_URI", ""),
		DBName:               getEnv("DB_NAME", "myFlixDB"),
		BcryptCost:           getEnvAsInt("BCRYPT_COST", 10),
		FavoritesDeduplicate: getEnvAsBool("FAVORITES_DEDUPLICATE", false),
		AllowedOrigins:       getEnvAsList("ALLOWED_ORIGINS", defaultAllowedOrigins),
		AccessLogPath:        getEnv("ACCESS_LOG_PATH", "log.txt"),
		StaticDir:            getEnv("STATIC_DIR", "public"),
		LogLevel:             getEnv("LOG_LEVEL", ""),
		LogDev:               getEnvAsBool("LOG_DEV", false),
	}

	if cfg.DBConnStr == "" {
		return nil, ErrMissingConnectionURI
	}
	if len(cfg.JWTKey) == 0 {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
