package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	RedisAddr   string

	KafkaBrokers []string
	KafkaTopic   string

	PaystackSecretKey string
	PaystackBaseURL   string
	// WebhookSecret signs provider webhooks; defaults to the gateway
	// secret key, matching Paystack's signing scheme.
	WebhookSecret string
	AppBaseURL    string

	JWTSecret string

	MailAPIKey    string
	MailFromEmail string
	MailBaseURL   string

	SuperadminEmail    string
	SuperadminPassword string

	OTPTTL            time.Duration
	GatewayTimeout    time.Duration
	ReconcileInterval time.Duration
	ReconcileAfter    time.Duration
	MaxReconcileBatch int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultPaystackBaseURL   = "https://api.paystack.co"
	defaultMailBaseURL       = "https://api.sendgrid.com"
	defaultKafkaTopic        = "purchase.events"
	defaultJWTSecret         = "change-me-in-production"
	defaultOTPTTL            = 10 * time.Minute
	defaultGatewayTimeout    = 10 * time.Second
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileAfter    = 2 * time.Minute
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxReconcileBatch = 32
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs is Load with an explicit argument list, for commands that parse
// their own flags first.
func LoadArgs(args []string) (*Config, error) {
	_ = godotenv.Load()
	return load(args, os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		RedisAddr:          getString(lookup, "REDIS_ADDR", ""),
		KafkaBrokers:       splitCSV(getString(lookup, "KAFKA_BROKERS", "")),
		KafkaTopic:         getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		PaystackSecretKey:  getString(lookup, "PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:    getString(lookup, "PAYSTACK_BASE_URL", defaultPaystackBaseURL),
		WebhookSecret:      getString(lookup, "WEBHOOK_SECRET", ""),
		AppBaseURL:         getString(lookup, "APP_URL", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		MailAPIKey:         getString(lookup, "MAIL_API_KEY", ""),
		MailFromEmail:      getString(lookup, "MAIL_FROM_EMAIL", ""),
		MailBaseURL:        getString(lookup, "MAIL_BASE_URL", defaultMailBaseURL),
		SuperadminEmail:    getString(lookup, "SUPERADMIN_EMAIL", ""),
		SuperadminPassword: getString(lookup, "SUPERADMIN_PASSWORD", ""),
		OTPTTL:             getDuration(lookup, "OTP_TTL", defaultOTPTTL),
		GatewayTimeout:     getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		ReconcileInterval:  getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileAfter:     getDuration(lookup, "RECONCILE_AFTER", defaultReconcileAfter),
		MaxReconcileBatch:  getInt(lookup, "RECONCILE_BATCH_SIZE", defaultMaxReconcileBatch),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ventry", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr           = strings.Join(cfg.KafkaBrokers, ",")
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for the OTP store")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers (optional)")
	fs.StringVar(&cfg.PaystackSecretKey, "paystack-secret", cfg.PaystackSecretKey, "Paystack secret key")
	fs.StringVar(&cfg.AppBaseURL, "app-url", cfg.AppBaseURL, "Public base URL used to build the payment callback")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciler workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between pending purchase sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxReconcileBatch, "reconcile-batch", cfg.MaxReconcileBatch, "Maximum purchases per reconciliation sweep")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.KafkaBrokers = splitCSV(brokersStr)

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WebhookSecret == "" {
		cfg.WebhookSecret = cfg.PaystackSecretKey
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxReconcileBatch <= 0 {
		cfg.MaxReconcileBatch = defaultMaxReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileAfter <= 0 {
		cfg.ReconcileAfter = defaultReconcileAfter
	}

	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = defaultOTPTTL
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis address must be provided")
	}

	if cfg.PaystackSecretKey == "" {
		return nil, fmt.Errorf("paystack secret key must be provided")
	}

	if cfg.AppBaseURL == "" {
		return nil, fmt.Errorf("application base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
