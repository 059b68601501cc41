package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/qrcontact/internal/flagx"
	"github.com/dmitrijs2005/qrcontact/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Interval fields use
// timex.Duration so both "30s"-style strings and integer nanoseconds parse.
// It is an intermediate DTO: after unmarshalling, its fields are copied
// into the runtime Config.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	BaseURL         string         `json:"base_url"`
	RateLimit       int            `json:"rate_limit"`
	RateWindow      timex.Duration `json:"rate_window"`
	DeliveryTimeout timex.Duration `json:"delivery_timeout"`
	SMTPHost        string         `json:"smtp_host"`
	SMTPPort        int            `json:"smtp_port"`
	SMTPUsername    string         `json:"smtp_username"`
	SMTPPassword    string         `json:"smtp_password"`
	SMTPFrom        string         `json:"smtp_from"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a broken explicit config is
// not something to start up around.
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

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.BaseURL = c.BaseURL
	config.RateLimit = c.RateLimit
	config.RateWindow = c.RateWindow.Duration
	config.DeliveryTimeout = c.DeliveryTimeout.Duration
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUsername = c.SMTPUsername
	config.SMTPPassword = c.SMTPPassword
	config.SMTPFrom = c.SMTPFrom
}
