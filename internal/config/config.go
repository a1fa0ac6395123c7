package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDeleteSecret = "hifz-delete"

type Config struct {
	DatabaseURL  string
	HTTPAddr     string
	LogLevel     string
	Env          string // dev|prod
	Location     *time.Location
	SentryDSN    string
	JWTSecret    string
	TokenTTL     time.Duration
	DeleteSecret string
	LiveRefresh  time.Duration
	LoginRate    int  // запросов в минуту с одного IP
	TrustProxy   bool // адрес клиента из X-Forwarded-For / X-Real-IP

	TGBotToken string
	TGChatID   int64
}

// Load читает окружение. Файл .env, если есть, подхватывается, но не перекрывает
// уже выставленные переменные.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	required := func(k string) string {
		v := os.Getenv(k)
		if v == "" {
			missing = append(missing, k)
		}
		return v
	}

	loc, err := time.LoadLocation(getenv("TZ", "Asia/Riyadh"))
	if err != nil {
		loc = time.Local
	}

	cfg := &Config{
		DatabaseURL:  required("DATABASE_URL"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		Env:          getenv("ENV", "dev"),
		Location:     loc,
		SentryDSN:    os.Getenv("SENTRY_DSN"),
		JWTSecret:    required("JWT_SECRET"),
		DeleteSecret: getenv("DELETE_SECRET", defaultDeleteSecret),
		TGBotToken:   os.Getenv("TG_BOT_TOKEN"),
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required env is empty: %s", strings.Join(missing, ", "))
	}

	var errs []error
	cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 12*time.Hour)
	errs = append(errs, err)
	cfg.LiveRefresh, err = durationEnv("LIVE_REFRESH", 5*time.Second)
	errs = append(errs, err)
	cfg.LoginRate, err = intEnv("LOGIN_RATE", 10)
	errs = append(errs, err)
	cfg.TrustProxy, err = boolEnv("TRUST_PROXY", false)
	errs = append(errs, err)
	if v := strings.TrimSpace(os.Getenv("TG_CHAT_ID")); v != "" {
		cfg.TGChatID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("TG_CHAT_ID: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NotifierEnabled: уведомления в Telegram включены только при токене и чате.
func (c *Config) NotifierEnabled() bool {
	return c.TGBotToken != "" && c.TGChatID != 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive", k)
	}
	return d, nil
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive", k)
	}
	return n, nil
}

func boolEnv(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
