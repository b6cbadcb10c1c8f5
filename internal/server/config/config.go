// Package config handles configuration for the notesvc server,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds runtime settings for the notesvc server.
//
// Fields:
//   - Address: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - JWTSecret: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: access token lifetime.
//   - OTPValidityDuration: lifetime of an emailed one-time passcode.
//   - SMTPHost / SMTPPort / SMTPUser / SMTPPassword / MailFrom: outbound mail.
//   - AllowedOrigins: CORS allowlist for the SPA.
//   - RateLimitWindow / RateLimitMax: global per-IP request ceiling.
type Config struct {
	Address                     string
	DatabaseDSN                 string
	JWTSecret                   string
	AccessTokenValidityDuration time.Duration
	OTPValidityDuration         time.Duration
	SMTPHost                    string
	SMTPPort                    int
	SMTPUser                    string
	SMTPPassword                string
	MailFrom                    string
	AllowedOrigins              []string
	RateLimitWindow             time.Duration
	RateLimitMax                int
}

// LoadDefaults populates Config with development defaults. Secrets have no
// defaults on purpose: a config without them fails Validate.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.AccessTokenValidityDuration = 168 * time.Hour
	c.OTPValidityDuration = 5 * time.Minute
	c.SMTPPort = 587
	c.MailFrom = "Highway App <no-reply@highwayapp.dev>"
	c.AllowedOrigins = []string{"http://localhost:5173"}
	c.RateLimitWindow = 15 * time.Minute
	c.RateLimitMax = 100
}

// Validate enforces the fail-fast startup policy: every secret the server
// cannot run without must be present before anything else is initialized.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseDSN == "" {
		missing = append(missing, "database_dsn")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "jwt_secret")
	}
	if c.SMTPHost == "" {
		missing = append(missing, "smtp_host")
	}
	if c.SMTPUser == "" {
		missing = append(missing, "smtp_user")
	}
	if c.SMTPPassword == "" {
		missing = append(missing, "smtp_password")
	}
	if len(missing) > 0 {
		return errors.New("missing required config: " + strings.Join(missing, ", "))
	}
	if c.RateLimitMax <= 0 || c.RateLimitWindow <= 0 {
		return errors.New("rate limit window and ceiling must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
