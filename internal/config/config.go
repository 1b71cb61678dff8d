package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	NATS        NATSConfig
	OAuth       OAuthConfig
	Metrics     MetricsConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	DatabaseName string
	SSLMode      string
	MaxConns     int
	MaxIdleConns int
	MaxLifetime  int
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CacheTTL int
}

type AuthConfig struct {
	JWTSecret         string
	JWTExpiration     int
	RefreshSecret     string
	RefreshExpiration int
}

type NATSConfig struct {
	Enabled bool
	URL     string
}

type OAuthConfig struct {
	Google GoogleOAuthConfig
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type MetricsConfig struct {
	Enabled      bool
	RefreshCron  string
	EndpointPath string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional
	}

	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			ReadTimeout:  getEnvAsIntOrDefault("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsIntOrDefault("WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsIntOrDefault("IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "5432"),
			Username:     getEnvOrDefault("DB_USER", "postgres"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "tradebook"),
			SSLMode:      getEnvOrDefault("DB_SSL_MODE", "disable"),
			MaxConns:     getEnvAsIntOrDefault("DB_MAX_CONNS", 25),
			MaxIdleConns: getEnvAsIntOrDefault("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  getEnvAsIntOrDefault("DB_MAX_LIFETIME", 300),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBoolOrDefault("REDIS_ENABLED", false),
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			CacheTTL: getEnvAsIntOrDefault("REDIS_CACHE_TTL", 300),
		},
		Auth: AuthConfig{
			JWTSecret:         getRequiredEnv("JWT_SECRET"),
			JWTExpiration:     getEnvAsIntOrDefault("JWT_EXPIRATION", 3600),
			RefreshSecret:     getRequiredEnv("REFRESH_SECRET"),
			RefreshExpiration: getEnvAsIntOrDefault("REFRESH_EXPIRATION", 604800),
		},
		NATS: NATSConfig{
			Enabled: getEnvAsBoolOrDefault("NATS_ENABLED", false),
			URL:     getEnvOrDefault("NATS_URL", "nats://localhost:4222"),
		},
		OAuth: OAuthConfig{
			Google: GoogleOAuthConfig{
				ClientID:     getEnvOrDefault("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnvOrDefault("GOOGLE_CLIENT_SECRET", ""),
				RedirectURL:  getEnvOrDefault("GOOGLE_REDIRECT_URL", ""),
			},
		},
		Metrics: MetricsConfig{
			Enabled:      getEnvAsBoolOrDefault("METRICS_ENABLED", true),
			RefreshCron:  getEnvOrDefault("METRICS_REFRESH_CRON", "* * * * *"),
			EndpointPath: getEnvOrDefault("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.RefreshSecret == "" {
		return fmt.Errorf("REFRESH_SECRET is required")
	}
	if c.Auth.JWTSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and REFRESH_SECRET must differ")
	}
	if c.Database.DatabaseName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DatabaseName, c.SSLMode,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getRequiredEnv(key string) string {
	return os.Getenv(key)
}
