package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	App        *App
	HTTP       *HTTP
	Database   *Database
	Gateway    *Gateway
	Kafka      *Kafka
	Redis      *Redis
	Reconciler *Reconciler
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

// Gateway holds the PG client policy as plain configuration so tests
// can inject fakes instead of relying on declarative wiring.
type Gateway struct {
	HostString     string        `env:"PG_ADDRESS"`
	CallbackURL    string        `env:"PG_CALLBACK_URL"`
	RequestTimeout time.Duration `env:"PG_REQUEST_TIMEOUT" envDefault:"300ms"`
	MaxRetries     int           `env:"PG_MAX_RETRIES" envDefault:"2"`
	RetryBackoff   time.Duration `env:"PG_RETRY_BACKOFF" envDefault:"50ms"`
	BreakerMinRequests uint32    `env:"PG_BREAKER_MIN_REQUESTS" envDefault:"10"`
	BreakerFailureRate float64   `env:"PG_BREAKER_FAILURE_RATE" envDefault:"0.5"`
	BreakerOpenFor     time.Duration `env:"PG_BREAKER_OPEN_FOR" envDefault:"10s"`
}

type Kafka struct {
	Brokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	PaymentTopic  string   `env:"KAFKA_PAYMENT_TOPIC" envDefault:"payment.events"`
	ConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"checkout"`
}

type Redis struct {
	Addr string `env:"REDIS_ADDRESS"`
}

type Reconciler struct {
	Interval  time.Duration `env:"RECONCILE_INTERVAL" envDefault:"5m"`
	Threshold time.Duration `env:"RECONCILE_THRESHOLD" envDefault:"10m"`
}

func NewConfig() (*Config, error) {
	var app App
	var http HTTP
	var db Database
	var gw Gateway
	var kafka Kafka
	var redis Redis
	var rec Reconciler

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&gw.HostString, "g", "", "Payment gateway address")
	flag.StringVar(&gw.CallbackURL, "c", "", "Callback URL handed to the gateway")
	flag.StringVar(&redis.Addr, "r", "", "Redis address")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	for name, target := range map[string]any{
		"app":        &app,
		"http":       &http,
		"database":   &db,
		"gateway":    &gw,
		"kafka":      &kafka,
		"redis":      &redis,
		"reconciler": &rec,
	} {
		if err := env.Parse(target); err != nil {
			return nil, fmt.Errorf("error parsing %s config: %w", name, err)
		}
	}

	config := Config{
		App:        &app,
		HTTP:       &http,
		Database:   &db,
		Gateway:    &gw,
		Kafka:      &kafka,
		Redis:      &redis,
		Reconciler: &rec,
	}

	return &config, nil
}
