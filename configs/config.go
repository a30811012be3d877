package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver    string
	DBSource    string
	Port        string
	JWTSecret   string
	JWTTTL      time.Duration
	GinMode     string
	LogLevel    string
	CORSOrigins []string

	AdminEmail    string
	AdminPassword string

	// Warnings เก็บปัญหาที่เจอตอนอ่าน config; main log ออกหลังสร้าง logger
	Warnings []string
}

func LoadConfig() *Config {
	// .env เป็น optional; ใน container ใช้ env จริง
	var warnings []string
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnings = append(warnings, fmt.Sprintf("cannot read .env: %v", err))
	}

	cfg := &Config{
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource:      getEnv("DB_SOURCE", "sabores.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour, &warnings),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
	cfg.Warnings = warnings
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration, warnings *[]string) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*warnings = append(*warnings, fmt.Sprintf("invalid %s=%q, using %s", key, v, fallback))
		return fallback
	}
	return d
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
