package email

import (
	"context"
	"strings"

	"portfolio_backend/internal/logger"
)

// ConsoleProvider writes messages to the application log instead of sending
// them. Used in development when no SMTP host is configured.
type ConsoleProvider struct {
	from string
}

func NewConsoleProvider(from string) *ConsoleProvider {
	return &ConsoleProvider{from: from}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "Email (console backend)",
		"from", p.from,
		"to", strings.Join(email.To, ","),
		"reply_to", email.ReplyTo,
		"subject", headerValue(email.Subject),
		"body", email.Body,
	)
	return nil
}

func (p *ConsoleProvider) Validate() error { return nil }
func (p *ConsoleProvider) Close() error    { return nil }
