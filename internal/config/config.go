package config

import (
	"fmt"
	"os"
)

// Значення за замовчуванням, якщо відповідні змінні не встановлено.
const (
	DefaultPort        = "3000"
	DefaultAllowOrigin = "https://rtm-rtc-react.netlify.app"
)

// Config містить усі налаштування сервісу, отримані зі змінних оточення.
type Config struct {
	// AgoraAppID та AgoraAppCert підписують RTC/RTM токени.
	AgoraAppID   string
	AgoraAppCert string
	// PostgresURL — рядок підключення до PostgreSQL.
	PostgresURL string
	// RedisAddr — адреса Redis (host:port).
	RedisAddr string
	// AllowOrigin — єдиний дозволений CORS origin.
	AllowOrigin string
	// Port — порт HTTP-сервера.
	Port string
}

// Load читає конфігурацію з оточення. Відсутність PostgresURL або RedisAddr —
// фатальна помилка; відсутні ключі підпису виявляються пізніше, під час
// видачі токена.
func Load() (*Config, error) {
	cfg := &Config{
		AgoraAppID:   os.Getenv("AGORA_APP_ID"),
		AgoraAppCert: os.Getenv("AGORA_APP_CERT"),
		PostgresURL:  os.Getenv("POSTGRESQL_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		AllowOrigin:  os.Getenv("ALLOW_ORIGIN"),
		Port:         os.Getenv("PORT"),
	}

	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRESQL_URL is not set")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is not set")
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = DefaultAllowOrigin
	}

	return cfg, nil
}
