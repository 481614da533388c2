// Package config provides functionality for managing configuration options
// for the studio server using command-line flags, an optional JSON config
// file, a .env file and environment variables.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

// Options holds the configuration values for the server.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"addr"`

	// DataDir is the directory holding the JSON documents.
	DataDir string `json:"data_dir"`

	// UploadDir is the directory uploaded images are written to and served from.
	UploadDir string `json:"upload_dir"`

	// DatabaseDSN switches document storage to PostgreSQL when set.
	DatabaseDSN string `json:"database_dsn"`

	// JWTSecret signs admin bearer tokens.
	JWTSecret string `json:"jwt_secret"`

	// TokenTTL is the lifetime of issued admin tokens.
	TokenTTL Duration `json:"token_ttl"`

	// AdminUsername and AdminPassword seed the admin record on first start.
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"admin_password"`

	// MaxUploadBytes caps a single uploaded image.
	MaxUploadBytes int64 `json:"max_upload_bytes"`

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string `json:"cors_origins"`

	// RateLimit is the number of public submissions allowed per IP per minute.
	RateLimit int `json:"rate_limit"`

	// TrustProxy takes client addresses from X-Forwarded-For / X-Real-IP.
	// Only safe behind a reverse proxy that sets those headers.
	TrustProxy bool `json:"trust_proxy"`

	// LogLevel is passed to the zap logger.
	LogLevel string `json:"log_level"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// SweepInterval and SweepRetention drive the orphaned upload sweeper.
	SweepInterval  Duration `json:"sweep_interval"`
	SweepRetention Duration `json:"sweep_retention"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// Duration is a time.Duration that reads "1h30m" style strings from JSON.
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts either a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		d.Duration = v
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	d.Duration = time.Duration(n)
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Parse loads .env (if present), then parses the process flags, the config
// file and the environment. Invalid configuration is fatal.
func Parse() *Options {
	_ = godotenv.Load()

	opts, err := Load(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	return opts
}

// Load builds Options from the given flag set and arguments. Values from the
// config file override flags, and environment variables override both.
func Load(fs *flag.FlagSet, args []string, getenv func(string) string) (*Options, error) {
	options := &Options{}
	var (
		tokenTTL       time.Duration
		sweepInterval  time.Duration
		sweepRetention time.Duration
		corsOrigins    string
	)

	fs.StringVar(&options.Addr, "a", ":3001", "run on ip:port server")
	fs.StringVar(&options.DataDir, "data", "data", "directory holding JSON documents")
	fs.StringVar(&options.UploadDir, "uploads", "uploads", "directory for uploaded images")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address (documents stored in PostgreSQL when set)")
	fs.StringVar(&options.AdminUsername, "admin-user", "admin", "initial admin username")
	fs.StringVar(&options.AdminPassword, "admin-password", "admin123", "initial admin password")
	fs.DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "admin token lifetime")
	fs.Int64Var(&options.MaxUploadBytes, "max-upload", 10<<20, "maximum upload size in bytes")
	fs.StringVar(&corsOrigins, "cors", "*", "comma separated allowed CORS origins")
	fs.IntVar(&options.RateLimit, "rate-limit", 20, "public submissions per minute per IP")
	fs.BoolVar(&options.TrustProxy, "trust-proxy", false, "use X-Forwarded-For / X-Real-IP as the client address")
	fs.StringVar(&options.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "TLS certificate file")
	fs.StringVar(&options.TLSKey, "tls-key", "", "TLS key file")
	fs.DurationVar(&sweepInterval, "sweep-interval", time.Hour, "orphaned upload sweep interval")
	fs.DurationVar(&sweepRetention, "sweep-retention", 24*time.Hour, "minimum age of an orphaned upload before removal")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	options.TokenTTL = Duration{tokenTTL}
	options.SweepInterval = Duration{sweepInterval}
	options.SweepRetention = Duration{sweepRetention}
	options.CORSOrigins = splitList(corsOrigins)

	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := applyEnv(options, getenv); err != nil {
		return nil, err
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func applyEnv(o *Options, getenv func(string) string) error {
	if port := getenv("PORT"); port != "" {
		o.Addr = ":" + port
	}
	if v := getenv("SERVER_ADDRESS"); v != "" {
		o.Addr = v
	}
	setString(&o.DataDir, getenv("DATA_DIR"))
	setString(&o.UploadDir, getenv("UPLOAD_DIR"))
	setString(&o.DatabaseDSN, getenv("DATABASE_DSN"))
	setString(&o.JWTSecret, getenv("JWT_SECRET"))
	setString(&o.AdminUsername, getenv("ADMIN_USERNAME"))
	setString(&o.AdminPassword, getenv("ADMIN_PASSWORD"))
	setString(&o.LogLevel, getenv("LOG_LEVEL"))
	setString(&o.TLSCert, getenv("TLS_CERT"))
	setString(&o.TLSKey, getenv("TLS_KEY"))

	if v := getenv("CORS_ORIGINS"); v != "" {
		o.CORSOrigins = splitList(v)
	}
	if v := getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		o.TokenTTL = Duration{d}
	}
	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		o.MaxUploadBytes = n
	}
	if v := getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		o.RateLimit = n
	}
	if v := getenv("TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRUST_PROXY: %w", err)
		}
		o.TrustProxy = b
	}
	return nil
}

func (o *Options) validate() error {
	switch {
	case o.DataDir == "" && o.DatabaseDSN == "":
		return fmt.Errorf("a data directory or a database DSN is required")
	case o.UploadDir == "":
		return fmt.Errorf("upload directory is required")
	case o.MaxUploadBytes <= 0:
		return fmt.Errorf("max upload size must be positive")
	case o.TokenTTL.Duration <= 0:
		return fmt.Errorf("token ttl must be positive")
	case o.SweepInterval.Duration <= 0:
		return fmt.Errorf("sweep interval must be positive")
	case (o.TLSCert == "") != (o.TLSKey == ""):
		return fmt.Errorf("tls cert and key must be set together")
	}
	return nil
}

// TLSEnabled reports whether the server should listen with HTTPS.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
