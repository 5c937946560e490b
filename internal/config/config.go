// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file,
// a .env file and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the database connection string. When empty it is
	// assembled from the DB_* parts below.
	DatabaseDSN string `json:"database_dsn"`

	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_sslmode"`

	// MaxOpenConns and MaxIdleConns size the connection pool.
	MaxOpenConns int `json:"db_max_open_conns"`
	MaxIdleConns int `json:"db_max_idle_conns"`

	// JWTSecret signs bearer tokens.
	JWTSecret string `json:"jwt_secret"`
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration `json:"-"`

	LogLevel    string   `json:"log_level"`
	Environment string   `json:"environment"`
	CORSOrigins []string `json:"cors_origins"`

	// TrustedProxies lists proxy addresses (IPs or CIDRs) whose forwarding
	// headers are believed. Empty means the socket peer is the client.
	TrustedProxies []string `json:"trusted_proxies"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Defaults returns the options used when nothing else is configured.
func Defaults() *Options {
	return &Options{
		Port:         ":5000",
		DBHost:       "localhost",
		DBPort:       "5432",
		DBUser:       "postgres",
		DBName:       "portfolio",
		DBSSLMode:    "disable",
		MaxOpenConns: 25,
		MaxIdleConns: 25,
		TokenTTL:     24 * time.Hour,
		LogLevel:     "info",
		Environment:  "development",
		CORSOrigins:  []string{"*"},
		Config:       "config.json",
	}
}

// options holds the current configuration values.
var options = Defaults()

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", options.Port, "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Config, "config", options.Config, "path to config file")
	flag.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
	flag.StringVar(&options.LogLevel, "log-level", options.LogLevel, "log level")
}

// Parse parses the command-line flags, the optional config file and environment
// variables to set configuration values. Environment variables win over the file,
// the file wins over flags. A .env file in the working directory is loaded first.
func Parse() *Options {
	flag.Parse()
	loadDotEnv()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if err := options.applyEnv(os.Getenv); err != nil {
		log.Fatalf("error while reading environment: %v", err)
	}

	return options
}

// FromEnv returns defaults overridden by .env and environment variables only.
// It is meant for tools that parse their own flags.
func FromEnv() (*Options, error) {
	loadDotEnv()
	o := Defaults()
	if err := o.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return o, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}
}

// applyEnv overrides fields with non-empty variables returned by getenv.
func (o *Options) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	if port := strings.TrimSpace(getenv("PORT")); port != "" {
		o.Port = ":" + port
	}
	str("SERVER_ADDRESS", &o.Port)
	str("DATABASE_DSN", &o.DatabaseDSN)
	str("DB_HOST", &o.DBHost)
	str("DB_PORT", &o.DBPort)
	str("DB_USER", &o.DBUser)
	str("DB_PASSWORD", &o.DBPassword)
	str("DB_NAME", &o.DBName)
	str("DB_SSLMODE", &o.DBSSLMode)
	str("JWT_SECRET", &o.JWTSecret)
	str("LOG_LEVEL", &o.LogLevel)
	str("ENVIRONMENT", &o.Environment)

	for key, dst := range map[string]*int{
		"DB_MAX_OPEN_CONNS": &o.MaxOpenConns,
		"DB_MAX_IDLE_CONNS": &o.MaxIdleConns,
	} {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, raw)
		}
		*dst = n
	}

	if raw := strings.TrimSpace(getenv("TOKEN_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		o.TokenTTL = ttl
	}

	if raw := strings.TrimSpace(getenv("CORS_ORIGINS")); raw != "" {
		o.CORSOrigins = splitList(raw)
	}
	if raw := strings.TrimSpace(getenv("TRUSTED_PROXIES")); raw != "" {
		o.TrustedProxies = splitList(raw)
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// TrustedProxyPrefixes parses TrustedProxies. A bare IP becomes a single-address prefix.
func (o *Options) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(o.TrustedProxies))
	for _, raw := range o.TrustedProxies {
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// DSN returns DatabaseDSN, or a key/value connection string built from the DB_* parts.
func (o *Options) DSN() string {
	if o.DatabaseDSN != "" {
		return o.DatabaseDSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		o.DBHost, o.DBPort, o.DBUser, o.DBPassword, o.DBName, o.DBSSLMode)
}

// Validate reports settings the server cannot start without.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if o.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", o.TokenTTL)
	}
	if _, err := o.TrustedProxyPrefixes(); err != nil {
		return err
	}
	return nil
}
