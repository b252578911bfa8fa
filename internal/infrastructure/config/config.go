package config

import (
	"time"

	"github.com/davidokon/secretshop/internal/infrastructure/adapter/cache"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/events"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/gateway/paystack"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
)

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Session     session.Config  `mapstructure:"session"`
	Admin       session.AdminConfig `mapstructure:"admin"`
	Paystack    paystack.Config `mapstructure:"paystack"`
	Redis       cache.Config    `mapstructure:"redis"`
	Kafka       KafkaConfig     `mapstructure:"kafka"`
	App         AppConfig       `mapstructure:"app"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// KafkaConfig contains audit event producer settings. An empty broker
// list disables event publishing.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// AppConfig contains storefront-level settings
type AppConfig struct {
	// BaseURL is the externally reachable origin, used to build the
	// payment callback URL handed to the gateway
	BaseURL string `mapstructure:"baseUrl"`
	// SnowflakeNode distinguishes reference generators across instances
	SnowflakeNode int64 `mapstructure:"snowflakeNode"`
	// CacheEnabled toggles the Redis read-through cache
	CacheEnabled bool `mapstructure:"cacheEnabled"`
}

// CallbackURL returns the absolute URL the gateway redirects shoppers to
func (a AppConfig) CallbackURL() string {
	return a.BaseURL + "/wallet/callback"
}

// KafkaEnabled reports whether event publishing is configured
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// ToEvents converts the Kafka section to the producer's config type
func (c *Config) ToEvents() events.Config {
	return events.Config{
		Brokers: c.Kafka.Brokers,
		Topic:   c.Kafka.Topic,
	}
}
