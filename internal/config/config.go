// Package config загружает конфигурацию сервера.
// Приоритет: флаги > переменные окружения CAREWATCH_* > файл конфигурации > значения по умолчанию.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "CAREWATCH"

// Драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// generatedSecretSize размер случайного ключа, если секрет не задан
const generatedSecretSize = 32

// Config конфигурация сервера
type Config struct {
	Storage         StorageConfig
	Log             LogConfig
	Addr            string
	JWT             JWTConfig
	RateLimit       RateLimitConfig
	ShutdownTimeout time.Duration
	ShowVersion     bool
}

// StorageConfig параметры хранилища
type StorageConfig struct {
	Driver string
	DSN    string
}

// JWTConfig параметры токенов
type JWTConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// SecretGenerated ключ не задан и сгенерирован на время жизни процесса
	SecretGenerated bool
}

// LogConfig параметры логирования
type LogConfig struct {
	Level  string
	Format string
}

// RateLimitConfig ограничение частоты запросов к /auth/login и /auth/register
type RateLimitConfig struct {
	// TrustedProxies адреса прокси, чьим X-Forwarded-For и X-Real-IP можно верить
	TrustedProxies []netip.Prefix
	AuthRequests   int
	AuthWindow     time.Duration
}

// flagKeys соответствие флагов ключам конфигурации
var flagKeys = map[string]string{
	"addr":                      "addr",
	"storage-driver":            "storage.driver",
	"storage-dsn":               "storage.dsn",
	"jwt-secret":                "jwt.secret",
	"jwt-access-ttl":            "jwt.access-ttl",
	"jwt-refresh-ttl":           "jwt.refresh-ttl",
	"log-level":                 "log.level",
	"log-format":                "log.format",
	"ratelimit-auth-requests":   "ratelimit.auth-requests",
	"ratelimit-auth-window":     "ratelimit.auth-window",
	"ratelimit-trusted-proxies": "ratelimit.trusted-proxies",
	"shutdown-timeout":          "shutdown-timeout",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.dsn", "carewatch.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access-ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh-ttl", 30*24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("ratelimit.auth-requests", 10)
	v.SetDefault("ratelimit.auth-window", time.Minute)
	v.SetDefault("ratelimit.trusted-proxies", []string{})
	v.SetDefault("shutdown-timeout", 10*time.Second)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("carewatch-server", pflag.ContinueOnError)

	fs.String("config", "", "path to config file (yaml, json or toml)")
	fs.Bool("version", false, "show version information")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("storage-driver", DriverSQLite, "storage driver: sqlite or postgres")
	fs.String("storage-dsn", "carewatch.db", "sqlite file path or postgres DSN")
	fs.String("jwt-secret", "", "HMAC key for access tokens")
	fs.Duration("jwt-access-ttl", 15*time.Minute, "access token lifetime")
	fs.Duration("jwt-refresh-ttl", 30*24*time.Hour, "refresh token lifetime")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", "text", "log format: text or json")
	fs.Int("ratelimit-auth-requests", 10, "max login/register requests per IP in window, 0 disables")
	fs.Duration("ratelimit-auth-window", time.Minute, "rate limit window")
	fs.StringSlice("ratelimit-trusted-proxies", nil, "IPs or CIDRs of reverse proxies allowed to set X-Forwarded-For")
	fs.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	return fs
}

// Load разбирает аргументы командной строки (без имени программы) и собирает конфигурацию
func Load(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Флаги перекрывают остальное только если заданы явно
	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	configFile, _ := fs.GetString("config")
	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	showVersion, _ := fs.GetBool("version")

	trustedProxies, err := parseTrustedProxies(v.GetStringSlice("ratelimit.trusted-proxies"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: ratelimit: %w", err)
	}

	cfg := &Config{
		Addr: v.GetString("addr"),
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
			DSN:    v.GetString("storage.dsn"),
		},
		JWT: JWTConfig{
			Secret:     []byte(v.GetString("jwt.secret")),
			AccessTTL:  v.GetDuration("jwt.access-ttl"),
			RefreshTTL: v.GetDuration("jwt.refresh-ttl"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		RateLimit: RateLimitConfig{
			AuthRequests:   v.GetInt("ratelimit.auth-requests"),
			AuthWindow:     v.GetDuration("ratelimit.auth-window"),
			TrustedProxies: trustedProxies,
		},
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
		ShowVersion:     showVersion,
	}

	if cfg.ShowVersion {
		return cfg, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if len(cfg.JWT.Secret) == 0 {
		secret := make([]byte, generatedSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		cfg.JWT.Secret = secret
		cfg.JWT.SecretGenerated = true
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres)),
		validation.Field(&c.Storage.DSN, validation.Required),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := validation.ValidateStruct(&c.JWT,
		validation.Field(&c.JWT.AccessTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.JWT.RefreshTTL, validation.Required, validation.Min(c.JWT.AccessTTL)),
	); err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Log.Format, validation.In("text", "json")),
	); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.RateLimit.AuthRequests < 0 {
		return errors.New("ratelimit: auth-requests cannot be negative")
	}
	if c.RateLimit.AuthRequests > 0 && c.RateLimit.AuthWindow <= 0 {
		return errors.New("ratelimit: auth-window must be positive")
	}

	return nil
}

// parseTrustedProxies разбирает адреса и подсети прокси.
// Значение из окружения приходит одной строкой через запятую.
func parseTrustedProxies(raw []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, item := range raw {
		for _, entry := range strings.Split(item, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}

			if strings.Contains(entry, "/") {
				prefix, err := netip.ParsePrefix(entry)
				if err != nil {
					return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
				}
				prefixes = append(prefixes, prefix.Masked())
				continue
			}

			addr, err := netip.ParseAddr(entry)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			addr = addr.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return prefixes, nil
}
