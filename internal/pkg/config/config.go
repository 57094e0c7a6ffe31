package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeouts, booking policy)
// - empty optional values disable the matching integration (Redis, AMQP)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Payment PaymentConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
	Receipt ReceiptConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret              string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer              string        `envconfig:"JWT_ISSUER"`
	AccessTokenDuration time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"24h"`
}

type BookingConfig struct {
	TimeZone      string `envconfig:"BOOKING_TIMEZONE" default:"Asia/Kolkata"`
	RefundPercent int64  `envconfig:"BOOKING_REFUND_PERCENT" default:"75"`
}

type PaymentConfig struct {
	BaseURL       string        `envconfig:"PAYMENT_BASE_URL" default:"https://sandbox.cashfree.com/pg"`
	ClientID      string        `envconfig:"PAYMENT_CLIENT_ID" required:"true"`
	ClientSecret  string        `envconfig:"PAYMENT_CLIENT_SECRET" required:"true"`
	APIVersion    string        `envconfig:"PAYMENT_API_VERSION" default:"2023-08-01"`
	WebhookSecret string        `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	Timeout       time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"5s"`
	Currency      string        `envconfig:"PAYMENT_CURRENCY" default:"INR"`
}

type RedisConfig struct {
	Addr          string `envconfig:"REDIS_ADDR"`
	Password      string `envconfig:"REDIS_PASSWORD"`
	DB            int    `envconfig:"REDIS_DB" default:"0"`
	EventsChannel string `envconfig:"REDIS_EVENTS_CHANNEL" default:"reservations.events"`
}

type AMQPConfig struct {
	URL          string `envconfig:"AMQP_URL"`
	ReceiptQueue string `envconfig:"AMQP_RECEIPT_QUEUE" default:"reservation.receipts"`
	Prefetch     int    `envconfig:"AMQP_PREFETCH" default:"20"`
}

type ReceiptConfig struct {
	LinkBaseURL    string        `envconfig:"RECEIPT_LINK_BASE_URL" default:"http://localhost:8080/receipts"`
	LinkTTL        time.Duration `envconfig:"RECEIPT_LINK_TTL" default:"720h"`
	SweepInterval  time.Duration `envconfig:"RECEIPT_SWEEP_INTERVAL" default:"24h"`
	EnqueueTimeout time.Duration `envconfig:"RECEIPT_ENQUEUE_TIMEOUT" default:"5s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

func (c AMQPConfig) Enabled() bool { return c.URL != "" }

// LoadConfig reads an optional .env file before processing the environment. Variables already
// present in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:          "error",
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:              "test-secret-key-for-table-booking",
			AccessTokenDuration: time.Hour,
		},
		Booking: BookingConfig{
			TimeZone:      "Asia/Kolkata",
			RefundPercent: 75,
		},
		Payment: PaymentConfig{
			BaseURL:       "http://127.0.0.1:0",
			ClientID:      "test-client",
			ClientSecret:  "test-secret",
			APIVersion:    "2023-08-01",
			WebhookSecret: "test-webhook-secret",
			Timeout:       2 * time.Second,
			Currency:      "INR",
		},
		Redis: RedisConfig{
			EventsChannel: "reservations.events",
		},
		AMQP: AMQPConfig{
			ReceiptQueue: "reservation.receipts",
			Prefetch:     20,
		},
		Receipt: ReceiptConfig{
			LinkBaseURL:    "http://localhost:8889/receipts",
			LinkTTL:        720 * time.Hour,
			SweepInterval:  24 * time.Hour,
			EnqueueTimeout: time.Second,
		},
	}
}
