package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	AdminToken         string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	MailFrom           string
	MailFromName       string
	AdminEmail         string
	SiteURL            string
	LogLevel           string
	RequestTimeout     time.Duration
	NotifyWorkers      int
	NotifyQueueSize    int
	NotifyTimeout      time.Duration
	NotifyMaxAttempts  int
	NotifyRetryDelay   time.Duration
	MaxAttachmentBytes int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultSMTPPort           = 465
	defaultMailFromName       = "Joanna's Reborns"
	defaultSiteURL            = "http://localhost:8080"
	defaultLogLevel           = "info"
	defaultRequestTimeout     = 5 * time.Second
	defaultNotifyWorkers      = 2
	defaultNotifyQueueSize    = 64
	defaultNotifyTimeout      = 15 * time.Second
	defaultNotifyMaxAttempts  = 3
	defaultNotifyRetryDelay   = 2 * time.Second
	defaultMaxAttachmentBytes = 10 << 20
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		AdminToken:         getString(lookup, "ADMIN_TOKEN", ""),
		SMTPHost:           getString(lookup, "SMTP_HOST", ""),
		SMTPPort:           getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUser:           getString(lookup, "SMTP_USER", ""),
		SMTPPassword:       getString(lookup, "SMTP_PASSWORD", ""),
		MailFrom:           getString(lookup, "SMTP_FROM", ""),
		MailFromName:       getString(lookup, "SMTP_FROM_NAME", defaultMailFromName),
		AdminEmail:         getString(lookup, "ADMIN_EMAIL", ""),
		SiteURL:            getString(lookup, "SITE_URL", defaultSiteURL),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RequestTimeout:     getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		NotifyWorkers:      getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize:    getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		NotifyTimeout:      getDuration(lookup, "NOTIFY_TIMEOUT", defaultNotifyTimeout),
		NotifyMaxAttempts:  getInt(lookup, "NOTIFY_MAX_ATTEMPTS", defaultNotifyMaxAttempts),
		NotifyRetryDelay:   getDuration(lookup, "NOTIFY_RETRY_DELAY", defaultNotifyRetryDelay),
		MaxAttachmentBytes: getInt(lookup, "MAX_ATTACHMENT_BYTES", defaultMaxAttachmentBytes),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		notifyTimeoutStr   = cfg.NotifyTimeout.String()
		retryDelayStr      = cfg.NotifyRetryDelay.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Bearer token for admin endpoints")
	fs.StringVar(&cfg.SMTPHost, "smtp-host", cfg.SMTPHost, "SMTP server host")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", cfg.SMTPPort, "SMTP server port")
	fs.StringVar(&cfg.SMTPUser, "smtp-user", cfg.SMTPUser, "SMTP username")
	fs.StringVar(&cfg.MailFrom, "mail-from", cfg.MailFrom, "Sender address")
	fs.StringVar(&cfg.MailFromName, "mail-from-name", cfg.MailFromName, "Sender display name")
	fs.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "Address receiving new order alerts")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "Public storefront URL used in emails")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Per-request store timeout")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent mail workers")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Pending notification capacity")
	fs.StringVar(&notifyTimeoutStr, "notify-timeout", notifyTimeoutStr, "Timeout for a single delivery attempt")
	fs.IntVar(&cfg.NotifyMaxAttempts, "notify-attempts", cfg.NotifyMaxAttempts, "Delivery attempts per message")
	fs.StringVar(&retryDelayStr, "notify-retry-delay", retryDelayStr, "Delay between delivery attempts")
	fs.IntVar(&cfg.MaxAttachmentBytes, "max-attachment", cfg.MaxAttachmentBytes, "Maximum decoded attachment size")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.NotifyTimeout, err = time.ParseDuration(notifyTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid notify timeout: %w", err)
	}

	if cfg.NotifyRetryDelay, err = time.ParseDuration(retryDelayStr); err != nil {
		return nil, fmt.Errorf("invalid notify retry delay: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.AdminToken, err = readSecretFile(lookup, "ADMIN_TOKEN_FILE", cfg.AdminToken); err != nil {
		return nil, fmt.Errorf("read admin token file: %w", err)
	}

	if cfg.SMTPPassword, err = readSecretFile(lookup, "SMTP_PASSWORD_FILE", cfg.SMTPPassword); err != nil {
		return nil, fmt.Errorf("read smtp password file: %w", err)
	}

	cfg.normalize()

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("admin token must be provided")
	}

	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host must be provided")
	}

	return cfg, nil
}

func (cfg *Config) normalize() {
	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = defaultSMTPPort
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}
	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}
	if cfg.NotifyMaxAttempts <= 0 {
		cfg.NotifyMaxAttempts = defaultNotifyMaxAttempts
	}
	if cfg.NotifyRetryDelay < 0 {
		cfg.NotifyRetryDelay = defaultNotifyRetryDelay
	}
	if cfg.MaxAttachmentBytes <= 0 {
		cfg.MaxAttachmentBytes = defaultMaxAttachmentBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.MailFrom
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
}

func readSecretFile(lookup envLookup, key, current string) (string, error) {
	path, ok := lookup(key)
	if !ok || path == "" {
		return current, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
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
