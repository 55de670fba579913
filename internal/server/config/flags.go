package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret key
//	-t int      session token validity, minutes (0 disables expiry)
//	-b int      bcrypt cost factor
//	-k string   external provider API key
//	-e string   external provider base URL
//	-o int      external provider timeout, seconds
//	-p string   seed password for the "admin" account
//	-q string   seed password for the "admin2" account
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and converted to time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-b", "-k", "-e", "-o", "-p", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes, 0 disables expiry)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost factor")

	fs.StringVar(&config.ProviderAPIKey, "k", config.ProviderAPIKey, "external provider API key")
	fs.StringVar(&config.ProviderBaseURL, "e", config.ProviderBaseURL, "external provider base URL")
	providerTimeout := fs.Int("o", int(config.ProviderTimeout.Seconds()), "provider_timeout (in seconds)")

	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "seed password for admin")
	fs.StringVar(&config.Admin2Password, "q", config.Admin2Password, "seed password for admin2")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
	config.ProviderTimeout = time.Duration(*providerTimeout) * time.Second
}
