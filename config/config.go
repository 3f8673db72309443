package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type (
	APP struct {
		Name        string
		Host        string
		Port        string
		Env         string
		JWTSecret   string
		SessionTTL  time.Duration
		CORSOrigins string
	}
	DB struct {
		Driver      string
		Path        string
		AutoMigrate bool
		BackupFile  string

		User     string
		Password string
		Name     string
		Host     string
		Port     string
		SSLMode  string
		MaxConns int32
	}
	Redis struct {
		Addr           string
		Password       string
		DB             int
		LoginPerMinute int
	}
	Storage struct {
		Bucket    string
		Region    string
		PublicURL string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App     APP
		DB      DB
		Redis   Redis
		Storage Storage
		MQ      MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
		return def
	}
	return b
}

func getInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s: %v, using default %d", key, err, def)
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
		return def
	}
	return d
}

func Load() Config {
	app := APP{
		Name:        getEnv("APP_NAME", "laudos-api"),
		Host:        getEnv("APP_HOST", ""),
		Port:        getEnv("APP_PORT", "8080"),
		Env:         getEnv("APP_ENV", EnvDevelopment),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		SessionTTL:  getDuration("SESSION_TTL", 24*time.Hour),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
	}
	dbPath := getEnv("DB_PATH", "data/laudos.db")
	db := DB{
		Driver:      strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		Path:        dbPath,
		AutoMigrate: getBool("DB_AUTO_MIGRATE", true),
		BackupFile:  getEnv("BACKUP_FILE", dbPath),

		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxConns: int32(getInt("POSTGRES_MAX_CONNS", 10)),
	}
	rds := Redis{
		Addr:           getEnv("REDIS_ADDR", ""),
		Password:       getEnv("REDIS_PASSWORD", ""),
		DB:             getInt("REDIS_DB", 0),
		LoginPerMinute: getInt("LOGIN_RATE_LIMIT", 10),
	}
	storage := Storage{
		Bucket:    getEnv("STORAGE_BUCKET", ""),
		Region:    getEnv("STORAGE_REGION", ""),
		PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "laudos.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "laudos.audit"),
	}

	return Config{
		App:     app,
		DB:      db,
		Redis:   rds,
		Storage: storage,
		MQ:      mq,
	}
}

func (c Config) IsProduction() bool { return c.App.Env == EnvProduction }

// Validate rejects configurations the server must not start with.
func (c Config) Validate() error {
	if c.App.JWTSecret == "" && c.App.Env != EnvDevelopment {
		return fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", c.App.Env)
	}
	if c.App.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if _, err := c.DBDSN(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	), nil
}

// MQEnabled is false when no broker host is configured; events are then dropped.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) CORSOrigins() []string {
	parts := strings.Split(c.App.CORSOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
