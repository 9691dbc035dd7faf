// Package config loads the runtime configuration from the environment.
//
// A .env file is read when present. Missing mandatory variables abort
// startup with a single error listing all of them, so that a broken
// deployment is fixed in one iteration instead of one variable at a
// time.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the configuration of the API server.
type Config struct {
	// APIURL is the URL the API is reachable at, used to construct
	// resource links.
	APIURL *url.URL

	// JWTSecret signs session tokens.
	JWTSecret string

	// Port the server listens on.
	Port string

	// DSN is the SQLite database file.
	DSN string

	// Currency is the ISO 4217 code used for formatted amounts.
	Currency string
}

// GatewayConfig is the configuration of the offline gateway.
type GatewayConfig struct {
	// Upstream is the origin the gateway forwards to.
	Upstream *url.URL

	// Listen is the address the gateway listens on.
	Listen string
}

// Load reads the API server configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	var missing []string

	apiURL := require("API_URL", &missing)
	secret := require("JWT_SECRET", &missing)

	if len(missing) > 0 {
		return Config{}, missingError(missing)
	}

	parsed, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("API_URL is not a valid URL: %w", err)
	}

	return Config{
		APIURL:    parsed,
		JWTSecret: secret,
		Port:      defaulted("PORT", "8080"),
		DSN:       defaulted("DB_DSN", "data/fintrack.db"),
		Currency:  defaulted("CURRENCY", "EUR"),
	}, nil
}

// LoadGateway reads the offline gateway configuration.
func LoadGateway() (GatewayConfig, error) {
	_ = godotenv.Load()

	var missing []string

	upstream := require("GATEWAY_UPSTREAM", &missing)

	if len(missing) > 0 {
		return GatewayConfig{}, missingError(missing)
	}

	parsed, err := url.Parse(upstream)
	if err != nil {
		return GatewayConfig{}, fmt.Errorf("GATEWAY_UPSTREAM is not a valid URL: %w", err)
	}

	return GatewayConfig{
		Upstream: parsed,
		Listen:   defaulted("GATEWAY_LISTEN", ":8081"),
	}, nil
}

func require(name string, missing *[]string) string {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		*missing = append(*missing, name)
	}
	return value
}

func defaulted(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

func missingError(missing []string) error {
	var b strings.Builder
	b.WriteString("missing required environment variables:\n")
	for _, name := range missing {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	return fmt.Errorf("%s", b.String())
}
