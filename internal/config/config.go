package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Friend   FriendConfig
	CORS     CORSConfig
	Log      LogConfig
}

var (
	ConfigInstance *Config
	loadErr        error
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	Mode         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Per-user API requests allowed per RateWindow; 0 disables API throttling.
	RateLimit  int
	RateWindow time.Duration
}

type DatabaseConfig struct {
	Driver   string
	URI      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// TxRetries bounds how often a transaction is retried on deadlock or serialization failure.
	TxRetries int
}

type RedisConfig struct {
	URI          string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type FriendConfig struct {
	RequestLimit   int
	RequestWindow  time.Duration
	ResolverPolicy string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DSN returns the connection string for the configured driver. An explicit DATABASE_URL wins.
func (d DatabaseConfig) DSN() string {
	if d.URI != "" {
		return d.URI
	}
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode)
	}
}

// LoadConfig reads .env (when present) and the environment once per process.
func LoadConfig() (*Config, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			slog.Debug("No .env file found, using environment variables")
		}
		ConfigInstance, loadErr = Load(viper.New())
	})

	return ConfigInstance, loadErr
}

// Load builds a Config from v, registering defaults and binding the environment.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetString("SERVER_PORT"),
			Mode:         v.GetString("GIN_MODE"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
			RateLimit:    v.GetInt("API_RATE_LIMIT"),
			RateWindow:   v.GetDuration("API_RATE_WINDOW"),
		},
		Database: DatabaseConfig{
			Driver:    strings.ToLower(v.GetString("DB_DRIVER")),
			URI:       v.GetString("DATABASE_URL"),
			Host:      v.GetString("DB_HOST"),
			Port:      v.GetString("DB_PORT"),
			User:      v.GetString("DB_USER"),
			Password:  v.GetString("DB_PASSWORD"),
			DBName:    v.GetString("DB_NAME"),
			SSLMode:   v.GetString("DB_SSLMODE"),
			TxRetries: v.GetInt("DB_TX_RETRIES"),
		},
		Redis: RedisConfig{
			URI:          v.GetString("REDIS_URL"),
			MaxRetries:   v.GetInt("REDIS_MAX_RETRIES"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		Friend: FriendConfig{
			RequestLimit:   v.GetInt("FRIEND_REQUEST_LIMIT"),
			RequestWindow:  v.GetDuration("FRIEND_REQUEST_WINDOW"),
			ResolverPolicy: strings.ToLower(v.GetString("FRIEND_RESOLVER_POLICY")),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("API_RATE_LIMIT", 100)
	v.SetDefault("API_RATE_WINDOW", time.Minute)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TX_RETRIES", 3)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 100)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("JWT_ACCESS_TTL", 5*time.Minute)
	v.SetDefault("JWT_REFRESH_TTL", 24*time.Hour)
	v.SetDefault("FRIEND_REQUEST_LIMIT", 3)
	v.SetDefault("FRIEND_REQUEST_WINDOW", time.Minute)
	v.SetDefault("FRIEND_RESOLVER_POLICY", "requester")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Friend.ResolverPolicy {
	case "requester", "recipient":
	default:
		return fmt.Errorf("unsupported FRIEND_RESOLVER_POLICY %q", c.Friend.ResolverPolicy)
	}
	if c.Friend.RequestLimit <= 0 || c.Friend.RequestWindow <= 0 {
		return fmt.Errorf("friend request limit and window must be positive")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
