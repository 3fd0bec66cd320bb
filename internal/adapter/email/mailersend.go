package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"go.uber.org/zap"
)

const mailerSendAPIURL = "https://api.mailersend.com/v1/email"

// MailerSendSender delivers mail through the MailerSend HTTP API.
type MailerSendSender struct {
	apiKey    string
	fromEmail string
	fromName  string
	endpoint  string
	client    *http.Client
	logger    *logger.Logger
}

func NewMailerSendSender(cfg config.MailerSendConfig, log *logger.Logger) (*MailerSendSender, error) {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil, errors.New("MailerSend API key and sender email are required")
	}
	return &MailerSendSender{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		endpoint:  mailerSendAPIURL,
		client:    &http.Client{},
		logger:    log.Named("MailerSendSender"),
	}, nil
}

type mailerSendRequest struct {
	From    address   `json:"from"`
	To      []address `json:"to"`
	Subject string    `json:"subject"`
	Text    string    `json:"text"`
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (s *MailerSendSender) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(mailerSendRequest{
		From:    address{Email: s.fromEmail, Name: s.fromName},
		To:      []address{{Email: to}},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Failed to send request to MailerSend", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send request to MailerSend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		s.logger.Error("MailerSend API request failed", zap.Int("statusCode", resp.StatusCode))
		return fmt.Errorf("MailerSend API request failed with status code %d", resp.StatusCode)
	}

	s.logger.Info("Email sent via MailerSend", zap.String("to", to), zap.String("messageID", resp.Header.Get("X-Message-Id")))
	return nil
}
