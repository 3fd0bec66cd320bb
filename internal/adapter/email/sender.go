package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
)

// Sender delivers a single plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewSender picks the transport configured by MAIL_PROVIDER.
func NewSender(cfg *config.Config, log *logger.Logger) (Sender, error) {
	switch strings.ToLower(cfg.Mail.Provider) {
	case "mailersend":
		return NewMailerSendSender(cfg.MailerSend, log)
	case "smtp", "":
		return NewSMTPSender(cfg.SMTP, log)
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.Mail.Provider)
	}
}
