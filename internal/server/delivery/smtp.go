package delivery

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// SMTPDeliverer sends disclosures by email.
type SMTPDeliverer struct {
	client *mail.Client
	from   string
}

// NewSMTPDeliverer dials nothing yet; the connection is established per
// message by DialAndSend.
func NewSMTPDeliverer(host string, port int, username, password, from string) (*SMTPDeliverer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client error: %w", err)
	}

	return &SMTPDeliverer{client: client, from: from}, nil
}

func (d *SMTPDeliverer) Deliver(ctx context.Context, recipient string, disc *models.Disclosure) error {
	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorDeliveryFailed, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorDeliveryFailed, err)
	}
	msg.Subject(Subject(disc))
	msg.SetBodyString(mail.TypeTextPlain, FormatMessage(disc))

	if err := d.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorDeliveryFailed, err)
	}
	return nil
}
