package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type AppConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Locale     language.Tag
	Currency   string
	DateLayout string
	// Optional YAML file replacing the built-in demo catalog.
	SeedPath string
	// Checkout only accepts these cities. Empty accepts any city.
	Cities []string
}

type AdminConfig struct {
	// Required in the X-Admin-Token header of dashboard calls when set.
	Token string
	// Custom script injection is off unless explicitly enabled.
	AllowCustomScripts bool
}

type WebhookConfig struct {
	Timeout         time.Duration
	SyncDelay       time.Duration
	QueueSize       int
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultCities are the delivery cities offered on the checkout form.
var DefaultCities = []string{"الدار البيضاء", "الرباط", "مراكش", "طنجة", "فاس", "أكادير"}

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Admin   AdminConfig
	Webhook WebhookConfig
}

// Load reads an optional .env file at path and then the process
// environment. Missing values fall back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		err := godotenv.Load(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	var err error

	cfg.App.Port = getEnv("APP_PORT", "8080")
	if cfg.App.ShutdownTimeout, err = getDuration("APP_SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	locale := getEnv("STORE_LOCALE", "ar-MA")
	if cfg.Store.Locale, err = language.Parse(locale); err != nil {
		return nil, fmt.Errorf("invalid STORE_LOCALE %q: %w", locale, err)
	}
	cfg.Store.Currency = getEnv("STORE_CURRENCY", "MAD")
	cfg.Store.DateLayout = getEnv("STORE_DATE_LAYOUT", "2/1/2006")
	cfg.Store.SeedPath = os.Getenv("CATALOG_SEED_PATH")
	cfg.Store.Cities = getList("STORE_CITIES", DefaultCities)

	cfg.Admin.Token = os.Getenv("ADMIN_TOKEN")
	if cfg.Admin.AllowCustomScripts, err = getBool("ALLOW_CUSTOM_SCRIPTS", false); err != nil {
		return nil, err
	}

	if cfg.Webhook.Timeout, err = getDuration("WEBHOOK_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Webhook.SyncDelay, err = getDuration("WEBHOOK_SYNC_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Webhook.QueueSize, err = getInt("WEBHOOK_QUEUE_SIZE", 64); err != nil {
		return nil, err
	}
	failures, err := getInt("WEBHOOK_BREAKER_FAILURES", 5)
	if err != nil {
		return nil, err
	}
	if failures < 1 {
		return nil, fmt.Errorf("WEBHOOK_BREAKER_FAILURES must be positive, got %d", failures)
	}
	cfg.Webhook.BreakerFailures = uint32(failures)
	if cfg.Webhook.BreakerCooldown, err = getDuration("WEBHOOK_BREAKER_COOLDOWN", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getList splits a comma-separated value. "*" yields an empty list.
func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	switch value {
	case "":
		return append([]string(nil), defaultValue...)
	case "*":
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return i, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
