// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/jeycc/festival-booking/internal/model"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable: strings for identifiers, a parsed policy
// for the transport whitelist.
type Config struct {
	Env       string                // application environment (e.g. "dev", "prod")
	Port      string                // HTTP port to listen on
	DBUser    string                // database username
	DBPass    string                // database password (optional)
	DBHost    string                // database host address
	DBPort    string                // database port number
	DBName    string                // database name
	Transport model.TransportPolicy // transport whitelist and org-required subset
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
// The transport whitelist has sensible defaults so a bare environment
// still matches the festival's configured offering.
func Load() Config {
	return Config{
		Env:    getenv("APP_ENV", "dev"),
		Port:   must("APP_PORT"),
		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"), // empty allowed
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),
		Transport: model.TransportPolicy{
			Allowed:     splitList(getenv("TRANSPORT_TYPES", "Carpool,PrivateBus,Cinematdour")),
			OrgRequired: splitList(getenv("TRANSPORT_ORG_REQUIRED", "Cinematdour,PrivateBus")),
		},
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated env value into trimmed, non-empty
// entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
