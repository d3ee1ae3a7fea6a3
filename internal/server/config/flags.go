package config

import (
	"flag"
	"os"
	"time"

	"linkarchive/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   SQLite database path
//	-s string   token signing secret (embedded provider)
//	-n string   server name used as token issuer and audience
//	-p string   identity provider: "embedded" or "delegated"
//	-e string   base URL of the delegated authentication service
//	-t int      token validity in hours (0 = provider default)
//
// os.Args is filtered through flagx.FilterArgs first so unrelated flags
// (like -c/-config) do not trip the flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-n", "-p", "-e", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "SQLite database path")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.ServerName, "n", config.ServerName, "server name (token issuer/audience)")
	fs.StringVar(&config.AuthProvider, "p", config.AuthProvider, "identity provider (embedded or delegated)")
	fs.StringVar(&config.AuthServiceURL, "e", config.AuthServiceURL, "delegated auth service base URL")

	tokenValidityHours := fs.Int("t", int(config.TokenValidity.Hours()), "token validity (in hours, 0 = provider default)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidity = time.Duration(*tokenValidityHours) * time.Hour
}
