package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port        string        `mapstructure:"port"`
	Environment string        `mapstructure:"environment"`
	BodyLimit   int           `mapstructure:"body_limit"`
	RateLimit   int           `mapstructure:"rate_limit"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN is the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	ImageTTL time.Duration `mapstructure:"image_ttl"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type PayNowConfig struct {
	RecipientPhone  string `mapstructure:"recipient_phone"`
	RecipientName   string `mapstructure:"recipient_name"`
	BrandColour     string `mapstructure:"brand_colour"`
	AmountEditable  bool   `mapstructure:"amount_editable"`
	ExpiryDate      string `mapstructure:"expiry_date"`
	LogoPath        string `mapstructure:"logo_path"`
	QRVersion       int    `mapstructure:"qr_version"`
	ErrorCorrection string `mapstructure:"error_correction"`
	ModuleSize      int    `mapstructure:"module_size"`
}

// StorageConfig picks where recipient and pairing data live. Backend is
// "postgres" or "file".
type StorageConfig struct {
	Backend        string `mapstructure:"backend"`
	RecipientsFile string `mapstructure:"recipients_file"`
	PairingsFile   string `mapstructure:"pairings_file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	PayNow   PayNowConfig   `mapstructure:"paynow"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

var defaults = map[string]any{
	"server.port":                 "8080",
	"server.environment":          "development",
	"server.body_limit":           1 << 20,
	"server.rate_limit":           60,
	"server.read_timeout":         "10s",
	"database.host":               "localhost",
	"database.port":               "5432",
	"database.user":               "postgres",
	"database.password":           "postgres",
	"database.name":               "splitpay",
	"database.sslmode":            "disable",
	"database.max_idle_conns":     10,
	"database.max_open_conns":     100,
	"database.conn_max_lifetime":  "1h",
	"database.conn_max_idle_time": "30m",
	"redis.enabled":               true,
	"redis.host":                  "localhost",
	"redis.port":                  "6379",
	"redis.password":              "",
	"redis.db":                    0,
	"redis.image_ttl":             "24h",
	"jwt.secret":                  "",
	"jwt.issuer":                  "splitpay-api",
	"paynow.recipient_phone":      "",
	"paynow.recipient_name":       "",
	"paynow.brand_colour":         "purple",
	"paynow.amount_editable":      false,
	"paynow.expiry_date":          "",
	"paynow.logo_path":            "",
	"paynow.qr_version":           0,
	"paynow.error_correction":     "H",
	"paynow.module_size":          10,
	"storage.backend":             "postgres",
	"storage.recipients_file":     "paynow_info.json",
	"storage.pairings_file":       "user_pairings.json",
	"log.level":                   "info",
	"log.format":                  "text",
}

var envBindings = map[string]string{
	"server.port":             "PORT",
	"server.environment":      "ENV",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.sslmode":        "DB_SSLMODE",
	"redis.enabled":           "REDIS_ENABLED",
	"redis.host":              "REDIS_HOST",
	"redis.port":              "REDIS_PORT",
	"redis.password":          "REDIS_PASSWORD",
	"redis.db":                "REDIS_DB",
	"jwt.secret":              "JWT_SECRET",
	"paynow.recipient_phone":  "PAYNOW_RECIPIENT_PHONE",
	"paynow.recipient_name":   "PAYNOW_RECIPIENT_NAME",
	"paynow.brand_colour":     "PAYNOW_BRAND_COLOUR",
	"paynow.amount_editable":  "PAYNOW_AMOUNT_EDITABLE",
	"paynow.expiry_date":      "PAYNOW_EXPIRY_DATE",
	"paynow.logo_path":        "PAYNOW_LOGO_PATH",
	"paynow.qr_version":       "PAYNOW_QR_VERSION",
	"paynow.error_correction": "PAYNOW_ERROR_CORRECTION",
	"storage.backend":         "STORAGE_BACKEND",
	"storage.recipients_file": "PAYNOW_INFO_FILE",
	"storage.pairings_file":   "USER_PAIRINGS_FILE",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "postgres", "file":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.PayNow.QRVersion < 0 || c.PayNow.QRVersion > 40 {
		return fmt.Errorf("paynow.qr_version must be between 0 and 40, got %d", c.PayNow.QRVersion)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
