// Package delivery is the outbound side of a disclosure: once credentials
// check out, the disclosed contact fields are handed to a Deliverer. The
// exchange service treats delivery as best-effort and bounds it with a
// timeout.
package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qrcontact/internal/logging"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// Deliverer sends disclosed contact fields to a recipient address.
type Deliverer interface {
	Deliver(ctx context.Context, recipient string, d *models.Disclosure) error
}

// FormatMessage renders the plain-text body of a disclosure message.
// Optional fields appear only when set.
func FormatMessage(d *models.Disclosure) string {
	var b strings.Builder
	b.WriteString("Here's the contact information you requested:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", d.Name)
	fmt.Fprintf(&b, "Email: %s\n", d.Email)
	if d.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", d.Phone)
	}
	if d.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", d.Company)
	}
	if d.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", d.Title)
	}
	if d.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", d.Website)
	}
	b.WriteString("\nBest regards,\nQR Contact System\n")
	return b.String()
}

// Subject renders the message subject line for a disclosure.
func Subject(d *models.Disclosure) string {
	return "Contact Information from " + d.Name
}

// LogDeliverer records the disclosure in the log instead of sending it.
// Used when no SMTP endpoint is configured, and in tests.
type LogDeliverer struct {
	logger logging.Logger
}

func NewLogDeliverer(l logging.Logger) *LogDeliverer {
	return &LogDeliverer{logger: l.With("module", "delivery")}
}

func (d *LogDeliverer) Deliver(ctx context.Context, recipient string, disc *models.Disclosure) error {
	d.logger.Info(ctx, "delivery simulated, no SMTP configured", "recipient", recipient, "contact", disc.Name)
	return nil
}
