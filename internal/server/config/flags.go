package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/qrcontact/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN, or "mem" for the in-memory store
//	-b string   public base URL for lookup links
//	-l int      rate-limit cap per requester key
//	-w int      rate-limit window, seconds
//	-t int      delivery timeout, seconds
//	-m string   SMTP host (empty disables real delivery)
//	-p int      SMTP port
//	-u string   SMTP username
//	-s string   SMTP password
//	-f string   SMTP sender address
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in seconds and converted afterwards.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-l", "-w", "-t", "-m", "-p", "-u", "-s", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL")
	fs.IntVar(&config.RateLimit, "l", config.RateLimit, "rate limit per requester key")

	rateWindow := fs.Int("w", int(config.RateWindow.Seconds()), "rate-limit window (in seconds)")
	deliveryTimeout := fs.Int("t", int(config.DeliveryTimeout.Seconds()), "delivery timeout (in seconds)")

	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "p", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUsername, "u", config.SMTPUsername, "SMTP username")
	fs.StringVar(&config.SMTPPassword, "s", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.SMTPFrom, "f", config.SMTPFrom, "SMTP sender address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RateWindow = time.Duration(*rateWindow) * time.Second
	config.DeliveryTimeout = time.Duration(*deliveryTimeout) * time.Second
}
