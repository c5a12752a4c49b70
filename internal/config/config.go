package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	DBDriver       string
	DatabaseURL    string
	DBMaxOpenConns int

	JWTSecret []byte
	TokenTTL  time.Duration

	LogLevel  string
	LogPretty bool

	CORSOrigins    []string
	TrustedProxies []string
	AuthRatePerS   float64
	AuthRateBurst  int

	SeedOnStart bool
	SeedFile    string
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // ok if missing in prod
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		GRPCAddr:    os.Getenv("GRPC_ADDR"),
		DBDriver:    getenv("DB_DRIVER", "sqlite3"),
		DatabaseURL: getenv("DATABASE_URL", "file:./data/flixnet.db?_foreign_keys=on&_busy_timeout=5000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogPretty:   os.Getenv("LOG_PRETTY") == "true",
		SeedOnStart: os.Getenv("SEED_ON_START") == "true",
		SeedFile:    os.Getenv("SEED_FILE"),
	}
	if _, ok := os.LookupEnv("GRPC_ADDR"); !ok {
		cfg.GRPCAddr = ":50051"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("missing required env JWT_SECRET")
	}
	cfg.JWTSecret = []byte(secret)

	switch cfg.DBDriver {
	case "sqlite3", "pgx":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be sqlite3 or pgx, got %q", cfg.DBDriver)
	}

	var err error
	if cfg.DBMaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", 10); err != nil {
		return Config{}, err
	}
	ttl, err := intEnv("TOKEN_TTL_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}
	if ttl <= 0 {
		return Config{}, errors.New("TOKEN_TTL_MINUTES must be positive")
	}
	cfg.TokenTTL = time.Duration(ttl) * time.Minute

	if cfg.AuthRateBurst, err = intEnv("AUTH_RATE_BURST", 5); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("AUTH_RATE_PER_SEC"); v != "" {
		if cfg.AuthRatePerS, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("AUTH_RATE_PER_SEC: %w", err)
		}
	} else {
		cfg.AuthRatePerS = 1
	}

	// allow comma-separated list of origins
	for _, p := range strings.Split(getenv("CORS_ORIGINS", "*"), ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	// empty means X-Forwarded-For is ignored and the socket peer is the client
	for _, p := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return Config{}, fmt.Errorf("TRUSTED_PROXIES: invalid IP or CIDR %q", p)
			}
		}
		cfg.TrustedProxies = append(cfg.TrustedProxies, p)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
