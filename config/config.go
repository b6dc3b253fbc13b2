package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	defaultServerAddress     = ":8080"
	defaultDatabaseDSN       = ""
	defaultLogLevel          = "info"
	defaultJournalPath       = "capture-journal.db"
	defaultKafkaTopic        = "order-events"
	defaultReconcileInterval = 10 * time.Second
	defaultReservationTTL    = 15 * time.Minute
)

// gateway base urls by environment
const (
	sandboxGatewayURL    = "https://api.sandbox.braintreegateway.com"
	productionGatewayURL = "https://api.braintreegateway.com"
)

type Config struct {
	ServerAddr        string
	DatabaseDSN       string
	LogLevel          string
	JWTSecret         string
	JournalPath       string
	RedisAddr         string
	KafkaBrokers      string
	KafkaTopic        string
	ReconcileInterval time.Duration
	ReservationTTL    time.Duration
}

// Brokers returns kafka broker list, empty when relay is disabled
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// GatewayConfig is payment gateway credentials, read from BRAINTREE_* variables
type GatewayConfig struct {
	Environment string        `envconfig:"ENVIRONMENT" default:"sandbox"`
	MerchantID  string        `envconfig:"MERCHANT_ID"`
	PublicKey   string        `envconfig:"PUBLIC_KEY"`
	PrivateKey  string        `envconfig:"PRIVATE_KEY"`
	BaseURL     string        `envconfig:"BASE_URL"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

// URL returns gateway base url for configured environment
func (gc *GatewayConfig) URL() string {
	if gc.BaseURL != "" {
		return gc.BaseURL
	}
	if strings.EqualFold(gc.Environment, "production") {
		return productionGatewayURL
	}
	return sandboxGatewayURL
}

var (
	once      sync.Once
	singleton *Config
	cfgErr    error
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		singleton, cfgErr = parse(flag.CommandLine, os.Args[1:], os.Getenv)
	})

	return singleton, cfgErr
}

// NewGatewayConfig reads gateway configuration from environment
func NewGatewayConfig() (*GatewayConfig, error) {
	cfg := GatewayConfig{}
	if err := envconfig.Process("braintree", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parse(fs *flag.FlagSet, args []string, getenv func(string) string) (*Config, error) {
	cfg := Config{}

	// initialize flags
	fs.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "server address")
	fs.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
	fs.StringVar(&cfg.JWTSecret, "k", "", "auth token signing key")
	fs.StringVar(&cfg.JournalPath, "j", defaultJournalPath, "capture journal file")
	fs.StringVar(&cfg.RedisAddr, "r", "", "redis address, empty disables replay cache")
	fs.StringVar(&cfg.KafkaBrokers, "b", "", "comma separated kafka brokers, empty disables event relay")
	fs.StringVar(&cfg.KafkaTopic, "t", defaultKafkaTopic, "kafka topic for order events")
	fs.DurationVar(&cfg.ReconcileInterval, "i", defaultReconcileInterval, "reconcile interval")
	fs.DurationVar(&cfg.ReservationTTL, "e", defaultReservationTTL, "time after which pending reservation fails")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// if environment variable is set, then using it
	strVars := map[string]*string{
		"RUN_ADDRESS":   &cfg.ServerAddr,
		"DATABASE_URI":  &cfg.DatabaseDSN,
		"LOG_LEVEL":     &cfg.LogLevel,
		"JWT_SECRET":    &cfg.JWTSecret,
		"JOURNAL_PATH":  &cfg.JournalPath,
		"REDIS_ADDR":    &cfg.RedisAddr,
		"KAFKA_BROKERS": &cfg.KafkaBrokers,
		"KAFKA_TOPIC":   &cfg.KafkaTopic,
	}
	for name, dst := range strVars {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	durVars := map[string]*time.Duration{
		"RECONCILE_INTERVAL": &cfg.ReconcileInterval,
		"RESERVATION_TTL":    &cfg.ReservationTTL,
	}
	for name, dst := range durVars {
		v := getenv(name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		*dst = d
	}

	return &cfg, nil
}
