package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration values from NOTESVC_* environment
// variables. Malformed numeric values are ignored so a stray variable cannot
// silently zero out a working default; the flag layer can still override.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("NOTESVC_ADDRESS"); ok {
		config.Address = v
	}
	if v, ok := os.LookupEnv("NOTESVC_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("NOTESVC_JWT_SECRET"); ok {
		config.JWTSecret = v
	}
	if v, ok := os.LookupEnv("NOTESVC_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("NOTESVC_OTP_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.OTPValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("NOTESVC_SMTP_HOST"); ok {
		config.SMTPHost = v
	}
	if v, ok := os.LookupEnv("NOTESVC_SMTP_PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = p
		}
	}
	if v, ok := os.LookupEnv("NOTESVC_SMTP_USER"); ok {
		config.SMTPUser = v
	}
	if v, ok := os.LookupEnv("NOTESVC_SMTP_PASSWORD"); ok {
		config.SMTPPassword = v
	}
	if v, ok := os.LookupEnv("NOTESVC_MAIL_FROM"); ok {
		config.MailFrom = v
	}
	if v, ok := os.LookupEnv("NOTESVC_ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = splitOrigins(v)
	}
	if v, ok := os.LookupEnv("NOTESVC_RATE_LIMIT_WINDOW"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.RateLimitWindow = d
		}
	}
	if v, ok := os.LookupEnv("NOTESVC_RATE_LIMIT_MAX"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RateLimitMax = n
		}
	}
}
