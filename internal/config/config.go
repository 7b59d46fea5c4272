// Package config loads and validates the process configuration for the
// session cookie service. All settings come from environment variables
// (optionally seeded from a .env file in development); the parsed Config
// is passed explicitly into the codec and HTTP layer rather than read ad
// hoc, so there is no hidden global state.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/nichoth/session-cookie/internal/cookie"
)

// cookieNameRe is the RFC 6265 token syntax for cookie names.
var cookieNameRe = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+\\-.^_`|~]+$")

// Config holds all application configuration.
type Config struct {
	// Environment: dev, staging, or prod (default: dev)
	Env string `env:"ENV" envDefault:"dev"`

	// Server port (default: 8080)
	Port string `env:"PORT" envDefault:"8080"`

	// Log level: debug, info, warn, error (default: info)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Session signing secret. Required; at least 32 bytes of UTF-8.
	Secret string `env:"SESSION_SECRET"`

	// Name of the session cookie (default: session)
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`

	// Cookie attribute defaults
	CookieDomain   string `env:"SESSION_COOKIE_DOMAIN"`
	CookiePath     string `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieMaxAge   int    `env:"SESSION_COOKIE_MAX_AGE" envDefault:"604800"`
	CookieHTTPOnly bool   `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSecure   bool   `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
	CookieSameSite string `env:"SESSION_COOKIE_SAME_SITE" envDefault:"lax"`
}

// FromEnv reads configuration from environment variables. A .env file, if
// present, is loaded first; its absence is not an error.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.CookieSameSite = strings.ToLower(cfg.CookieSameSite)

	return cfg, nil
}

// SecretKey returns the validated signing key. It fails fast when the
// secret is unset or shorter than 32 bytes: this is the binding security
// invariant of the whole system and is never silently defaulted. Length is
// measured in UTF-8 bytes, not characters.
func (c Config) SecretKey() ([]byte, error) {
	if c.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required (generate at least 32 random bytes)")
	}

	key := []byte(c.Secret)
	if len(key) < cookie.MinKeyLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes for security (got %d bytes)", cookie.MinKeyLength, len(key))
	}

	return key, nil
}

// CookieOptions returns the Set-Cookie attribute defaults derived from the
// configuration: httpOnly and secure on, SameSite Lax, a one week Max-Age
// and path "/" unless overridden.
func (c Config) CookieOptions() cookie.SerializeOptions {
	maxAge := c.CookieMaxAge
	return cookie.SerializeOptions{
		MaxAge:   &maxAge,
		Domain:   c.CookieDomain,
		Path:     c.CookiePath,
		HTTPOnly: c.CookieHTTPOnly,
		Secure:   c.CookieSecure,
		SameSite: c.CookieSameSite,
	}
}

// Validate checks that required fields are set and well-formed. Error
// messages name the variable and the expected shape, in the spirit of
// failing at startup rather than at first use.
func (c *Config) Validate() error {
	switch c.Env {
	case "dev", "staging", "prod":
	default:
		return fmt.Errorf("ENV must be 'dev', 'staging', or 'prod' (got %q)", c.Env)
	}

	if c.Port == "" {
		return fmt.Errorf("PORT is required (set to a port number 1-65535, e.g., 8080)")
	}
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a valid number 1-65535 (got %q)", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be 1-65535 (got %q)", c.Port)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be 'debug', 'info', 'warn', or 'error' (got %q)", c.LogLevel)
	}

	if _, err := c.SecretKey(); err != nil {
		return err
	}

	if !cookieNameRe.MatchString(c.CookieName) {
		return fmt.Errorf("SESSION_COOKIE_NAME must be a valid cookie token (got %q)", c.CookieName)
	}

	switch c.CookieSameSite {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("SESSION_COOKIE_SAME_SITE must be 'strict', 'lax', or 'none' (got %q)", c.CookieSameSite)
	}

	if c.CookieMaxAge < 0 {
		return fmt.Errorf("SESSION_COOKIE_MAX_AGE must be non-negative (got %d)", c.CookieMaxAge)
	}

	return nil
}
