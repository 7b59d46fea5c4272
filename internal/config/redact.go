package config

import (
	"fmt"
)

// Redacted returns a map suitable for logging/json with secrets replaced by "***"
func (c Config) Redacted() map[string]any {
	redacted := make(map[string]any)

	// Non-sensitive fields
	redacted["env"] = c.Env
	redacted["port"] = c.Port
	redacted["log_level"] = c.LogLevel
	redacted["cookie_name"] = c.CookieName
	redacted["cookie_domain"] = c.CookieDomain
	redacted["cookie_path"] = c.CookiePath
	redacted["cookie_max_age"] = c.CookieMaxAge
	redacted["cookie_http_only"] = c.CookieHTTPOnly
	redacted["cookie_secure"] = c.CookieSecure
	redacted["cookie_same_site"] = c.CookieSameSite

	// Redact sensitive fields
	if c.Secret != "" {
		redacted["session_secret"] = fmt.Sprintf("*** (%d bytes)", len(c.Secret))
	}

	return redacted
}
