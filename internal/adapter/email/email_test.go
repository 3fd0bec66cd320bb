package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSender_IncompleteConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.SMTPConfig
	}{
		{name: "Missing Host", cfg: config.SMTPConfig{Port: 587, SenderEmail: "sender@example.com"}},
		{name: "Missing Port", cfg: config.SMTPConfig{Host: "smtp.example.com", SenderEmail: "sender@example.com"}},
		{name: "Missing SenderEmail", cfg: config.SMTPConfig{Host: "smtp.example.com", Port: 587}},
		{name: "All Missing", cfg: config.SMTPConfig{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSMTPSender(tc.cfg, logger.NewNop())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteConfig)
		})
	}
}

func TestSMTPSender_SendHonoursContext(t *testing.T) {
	sender, err := NewSMTPSender(config.SMTPConfig{
		Host:        "127.0.0.1",
		Port:        1,
		SenderEmail: "noreply@campus.test",
	}, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = sender.Send(ctx, "student@campus.test", "Subject", "Body")
	require.Error(t, err)
}

func TestMailerSendSender_Send(t *testing.T) {
	var got mailerSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender, err := NewMailerSendSender(config.MailerSendConfig{
		APIKey:    "key-123",
		FromEmail: "noreply@campus.test",
		FromName:  "Campus Info",
	}, logger.NewNop())
	require.NoError(t, err)
	sender.endpoint = srv.URL

	err = sender.Send(context.Background(), "student@campus.test", "Verify Your Email - OTP Code", "body")
	require.NoError(t, err)
	assert.Equal(t, "noreply@campus.test", got.From.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "student@campus.test", got.To[0].Email)
	assert.Equal(t, "Verify Your Email - OTP Code", got.Subject)
}

func TestMailerSendSender_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	sender, err := NewMailerSendSender(config.MailerSendConfig{APIKey: "k", FromEmail: "a@b.c"}, logger.NewNop())
	require.NoError(t, err)
	sender.endpoint = srv.URL

	err = sender.Send(context.Background(), "student@campus.test", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestNewSender_SelectsProvider(t *testing.T) {
	cfg := &config.Config{
		Mail:       config.MailConfig{Provider: "mailersend"},
		MailerSend: config.MailerSendConfig{APIKey: "k", FromEmail: "a@b.c"},
	}
	s, err := NewSender(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MailerSendSender{}, s)

	cfg.Mail.Provider = "fax"
	_, err = NewSender(cfg, logger.NewNop())
	require.Error(t, err)
}
