package config

import (
	"encoding/json"
	"os"
	"time"

	"linkarchive/internal/flagx"
	"linkarchive/internal/timex"
)

// jsonConfig is the DTO for the optional JSON config file. Durations accept
// either strings like "720h" or integer nanoseconds via timex.Duration.
type jsonConfig struct {
	EndpointAddr   string         `json:"endpoint_addr"`
	DatabasePath   string         `json:"database_path"`
	SecretKey      string         `json:"secret_key"`
	ServerName     string         `json:"server_name"`
	AuthProvider   string         `json:"auth_provider"`
	AuthServiceURL string         `json:"auth_service_url"`
	TokenValidity  timex.Duration `json:"token_validity"`
}

// parseJSON overlays values from the JSON file named by -c/-config, if any.
// Only fields present (non-zero) in the file override the defaults. A file
// that cannot be read or parsed is a startup failure.
func parseJSON(config *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabasePath != "" {
		config.DatabasePath = c.DatabasePath
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.ServerName != "" {
		config.ServerName = c.ServerName
	}
	if c.AuthProvider != "" {
		config.AuthProvider = c.AuthProvider
	}
	if c.AuthServiceURL != "" {
		config.AuthServiceURL = c.AuthServiceURL
	}
	if c.TokenValidity.Duration != 0 {
		config.TokenValidity = time.Duration(c.TokenValidity.Duration)
	}
}
