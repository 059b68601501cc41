package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withArgs(t *testing.T, args []string, fn func()) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"qrcontact-server"}, args...)
	defer func() { os.Args = orig }()
	fn()
}

func TestParseFlags_OverridesDefaults(t *testing.T) {
	withArgs(t, []string{"-a", ":9090", "-d", "mem", "-b", "https://contact.example.com", "-l", "10", "-w", "600", "-t", "3"}, func() {
		var c Config
		c.LoadDefaults()
		parseFlags(&c)

		assert.Equal(t, ":9090", c.EndpointAddr)
		assert.Equal(t, "mem", c.DatabaseDSN)
		assert.Equal(t, "https://contact.example.com", c.BaseURL)
		assert.Equal(t, 10, c.RateLimit)
		assert.Equal(t, 10*time.Minute, c.RateWindow)
		assert.Equal(t, 3*time.Second, c.DeliveryTimeout)
	})
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	withArgs(t, []string{"-a", ":9090", "-zzz", "whatever"}, func() {
		var c Config
		c.LoadDefaults()
		parseFlags(&c)

		assert.Equal(t, ":9090", c.EndpointAddr)
	})
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	withArgs(t, nil, func() {
		var c Config
		c.LoadDefaults()
		parseFlags(&c)

		assert.Equal(t, ":8080", c.EndpointAddr)
		assert.Equal(t, 5, c.RateLimit)
		assert.Equal(t, time.Hour, c.RateWindow)
	})
}
