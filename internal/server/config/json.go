package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/hwdelite/notesvc/internal/flagx"
	"github.com/hwdelite/notesvc/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	Address                     string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	JWTSecret                   string         `json:"jwt_secret"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	OTPValidityDuration         timex.Duration `json:"otp_validity_duration"`
	SMTPHost                    string         `json:"smtp_host"`
	SMTPPort                    int            `json:"smtp_port"`
	SMTPUser                    string         `json:"smtp_user"`
	SMTPPassword                string         `json:"smtp_password"`
	MailFrom                    string         `json:"mail_from"`
	AllowedOrigins              string         `json:"allowed_origins"`
	RateLimitWindow             timex.Duration `json:"rate_limit_window"`
	RateLimitMax                int            `json:"rate_limit_max"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. Only fields present in
// the file override the current values.
//
// If the file cannot be read or contains invalid JSON, the function panics:
// a broken config file is a startup-fatal condition.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Address != "" {
		config.Address = c.Address
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.OTPValidityDuration.Duration != 0 {
		config.OTPValidityDuration = c.OTPValidityDuration.Duration
	}
	if c.SMTPHost != "" {
		config.SMTPHost = c.SMTPHost
	}
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.SMTPUser != "" {
		config.SMTPUser = c.SMTPUser
	}
	if c.SMTPPassword != "" {
		config.SMTPPassword = c.SMTPPassword
	}
	if c.MailFrom != "" {
		config.MailFrom = c.MailFrom
	}
	if c.AllowedOrigins != "" {
		config.AllowedOrigins = splitOrigins(c.AllowedOrigins)
	}
	if c.RateLimitWindow.Duration != 0 {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.RateLimitMax != 0 {
		config.RateLimitMax = c.RateLimitMax
	}
}

// splitOrigins turns a comma-separated origin list into a slice,
// dropping empty elements.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
