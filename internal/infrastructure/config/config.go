package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	sharedConfig "github.com/modorifa/rifas/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Storage   sharedConfig.StorageConfig   `mapstructure:"storage"`
	Events    sharedConfig.EventsConfig    `mapstructure:"events"`
	Telegram  sharedConfig.TelegramConfig  `mapstructure:"telegram"`
	Raffle    sharedConfig.RaffleConfig    `mapstructure:"raffle"`
	Scheduler sharedConfig.SchedulerConfig `mapstructure:"scheduler"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configFile when set) and overlays
// RIFAS_* environment variables, e.g. RIFAS_DATABASE_DRIVER=sqlite.
func Load(env, configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("RIFAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects driver names nothing is wired for.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case sharedConfig.DatabaseDriverMySQL, sharedConfig.DatabaseDriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case sharedConfig.StorageDriverLocal:
	case sharedConfig.StorageDriverS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.Storage.Driver)
	}
	switch c.Events.Driver {
	case sharedConfig.EventsDriverNone, sharedConfig.EventsDriverRedis:
	case sharedConfig.EventsDriverKafka:
		if len(c.Events.Kafka.Brokers) == 0 {
			return fmt.Errorf("events.kafka.brokers is required for the kafka driver")
		}
	default:
		return fmt.Errorf("unsupported events driver: %q", c.Events.Driver)
	}
	if c.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.timezone", "America/Caracas")
	v.SetDefault("server.node_id", 1)

	v.SetDefault("database.driver", sharedConfig.DatabaseDriverSQLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "rifas")
	v.SetDefault("database.sqlite_path", "rifas.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.access_exp_minutes", 240)

	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_name", "Rifas")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.driver", sharedConfig.StorageDriverLocal)
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.max_size_bytes", 5<<20)
	v.SetDefault("storage.allowed_mime", []string{"image/jpeg", "image/png", "application/pdf"})
	v.SetDefault("storage.s3.region", "us-east-1")

	v.SetDefault("events.driver", sharedConfig.EventsDriverNone)
	v.SetDefault("events.redis_channel", "rifas:events")
	v.SetDefault("events.kafka.topic", "rifas.events")
	v.SetDefault("events.kafka.client_id", "rifas")

	v.SetDefault("raffle.reservation_max_attempts", 3)
	v.SetDefault("raffle.default_winner_count", 1)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.consistency_interval", 15*time.Minute)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.submit_payment_limit", 10)
	v.SetDefault("ratelimit.submit_payment_window", time.Minute)
}
