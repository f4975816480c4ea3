package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/tictac1213/JobNotification/config"
)

// Mailer is the outbound email capability injected into the notification
// core. Implementations must return an error on transport failure; callers
// are responsible for isolating that failure per recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New selects a transport from the mail configuration.
// An unknown provider yields a logging no-op so the service can run without
// a mail account configured.
func New(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	switch cfg.Provider {
	case "smtp":
		return &smtpMailer{cfg: cfg}
	case "resend":
		timeout := cfg.SendTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		return &resendMailer{cfg: cfg, client: &http.Client{Timeout: timeout}}
	default:
		logger.Warn("mail provider not configured, emails will be dropped",
			zap.String("provider", cfg.Provider))
		return &nopMailer{logger: logger}
	}
}

// ── SMTP transport ──

type smtpMailer struct {
	cfg *config.MailConfig
}

func (m *smtpMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	msg := "From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		htmlBody

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// ── Resend HTTP transport ──

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendMailer struct {
	cfg    *config.MailConfig
	client *http.Client
}

func (m *resendMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	body := resendRequest{
		From:    m.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}

	return nil
}

// ── No-op transport ──

type nopMailer struct {
	logger *zap.Logger
}

func (m *nopMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Debug("email dropped (no provider)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
