package config

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Outbound form-notification relay. Two access keys so every
	// submission can be raced over both.
	RelayEndpoint     string
	RelayPrimaryKey   string
	RelaySecondaryKey string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "leaveportal"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		RelayEndpoint:     get("RELAY_ENDPOINT", "https://api.web3forms.com/submit"),
		RelayPrimaryKey:   get("RELAY_PRIMARY_KEY", ""),
		RelaySecondaryKey: get("RELAY_SECONDARY_KEY", ""),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
