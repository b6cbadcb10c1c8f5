package config

import (
	"flag"
	"os"
	"time"

	"github.com/hwdelite/notesvc/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, hours
//	-o int      OTP validity, minutes
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers (hours/minutes). They overlay
//     the config only when actually passed: the JSON and env layers accept
//     finer-grained durations (e.g. "90s") that an unconditional
//     integer round-trip would truncate.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret key")

	accessTokenValidity := fs.Int("t", 0, "access token validity (in hours)")
	otpValidity := fs.Int("o", 0, "OTP validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Hour
		case "o":
			config.OTPValidityDuration = time.Duration(*otpValidity) * time.Minute
		}
	})
}
