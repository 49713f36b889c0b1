package config

import (
	"encoding/json"
	"os"

	"github.com/reacademix/authd/internal/flagx"
	"github.com/reacademix/authd/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "24h" and integer nanoseconds. After
// unmarshalling, set fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	SeedDemoAccount       *bool           `json:"seed_demo_account"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config
// command-line flags; when neither is set, no JSON file is loaded.
// Fields absent from the file keep their current values. An unreadable
// or invalid file panics: a half-applied config is worse than no start.
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

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.SeedDemoAccount != nil {
		config.SeedDemoAccount = *c.SeedDemoAccount
	}
}
