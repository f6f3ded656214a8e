package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`

	// NodeID seeds payment numbers; unique per running instance (0-1023).
	NodeID int64 `mapstructure:"node_id"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const (
	DatabaseDriverMySQL  = "mysql"
	DatabaseDriverSQLite = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver specific data source name.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == DatabaseDriverSQLite {
		// busy_timeout keeps concurrent writers waiting instead of failing with SQLITE_BUSY
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", d.SQLitePath)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

// AdminAccount is a back-office operator allowed to reconcile payments.
type AdminAccount struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

type AuthConfig struct {
	JWT    JWTConfig      `mapstructure:"jwt"`
	Admins []AdminAccount `mapstructure:"admins"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

// Enabled reports whether outgoing mail is configured.
func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && e.FromAddress != ""
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicURL       string `mapstructure:"public_url"`
	DisableSSL      bool   `mapstructure:"disable_ssl"`
}

type StorageConfig struct {
	Driver       string   `mapstructure:"driver"`
	LocalDir     string   `mapstructure:"local_dir"`
	MaxSizeBytes int64    `mapstructure:"max_size_bytes"`
	AllowedMIME  []string `mapstructure:"allowed_mime"`
	S3           S3Config `mapstructure:"s3"`
}

const (
	EventsDriverNone  = "none"
	EventsDriverRedis = "redis"
	EventsDriverKafka = "kafka"
)

type KafkaConfig struct {
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	ClientID string   `mapstructure:"client_id"`
}

type EventsConfig struct {
	Driver       string      `mapstructure:"driver"`
	RedisChannel string      `mapstructure:"redis_channel"`
	Kafka        KafkaConfig `mapstructure:"kafka"`
}

type TelegramConfig struct {
	BotToken     string  `mapstructure:"bot_token"`
	AdminChatIDs []int64 `mapstructure:"admin_chat_ids"`
}

func (t *TelegramConfig) Enabled() bool {
	return t.BotToken != "" && len(t.AdminChatIDs) > 0
}

type RaffleConfig struct {
	ReservationMaxAttempts int `mapstructure:"reservation_max_attempts"`
	DefaultWinnerCount     int `mapstructure:"default_winner_count"`
}

type SchedulerConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	ConsistencyInterval time.Duration `mapstructure:"consistency_interval"`
}

type RateLimitConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	SubmitPaymentLimit  int           `mapstructure:"submit_payment_limit"`
	SubmitPaymentWindow time.Duration `mapstructure:"submit_payment_window"`
}
