package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"authd",
		"-a", ":9090",
		"-d", "postgres://u:p@db:5432/other",
		"-s", "another-secret-key-abcdefghijklmnopqr",
		"-t", "3600",
		"-b", "12",
		"-demo",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":9090")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@db:5432/other")
	assert.Equal(t, c.SecretKey, "another-secret-key-abcdefghijklmnopqr")
	assert.Equal(t, c.TokenValidityDuration, time.Hour)
	assert.Equal(t, c.BcryptCost, 12)
	assert.True(t, c.SeedDemoAccount)
}

func TestParseFlags_KeepsDefaultsWithoutFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"authd"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.TokenValidityDuration, 24*time.Hour)
	assert.Equal(t, c.BcryptCost, 10)
	assert.False(t, c.SeedDemoAccount)
}
