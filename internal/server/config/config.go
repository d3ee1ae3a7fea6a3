// Package config handles configuration for the server: defaults, an
// optional JSON overlay, and command-line flags, applied in that order.
package config

import "time"

// Config holds the runtime settings for the link archive server.
//
// Fields:
//   - EndpointAddr: HTTP bind address.
//   - DatabasePath: path of the SQLite database file.
//   - SecretKey: HMAC secret for signing session tokens (embedded provider).
//     Do not run the development default in production.
//   - ServerName: identity string used as both token issuer and audience.
//   - AuthProvider: "embedded" (local token signing) or "delegated"
//     (external authentication service).
//   - AuthServiceURL: base URL of the external authority (delegated only).
//   - TokenValidity: session token lifetime; zero means the selected
//     provider's default (30 days embedded, 7 days delegated).
type Config struct {
	EndpointAddr   string
	DatabasePath   string
	SecretKey      string
	ServerName     string
	AuthProvider   string
	AuthServiceURL string
	TokenValidity  time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabasePath = "linkarchive.db"
	c.SecretKey = "secretKey"
	c.ServerName = "linkarchive"
	c.AuthProvider = "embedded"
	c.AuthServiceURL = ""
	c.TokenValidity = 0
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
