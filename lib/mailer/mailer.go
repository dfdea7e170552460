// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package mailer delivers the transactional email the account service
// sends: the password reset verification code and the post-signup
// welcome message.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Mailer sends the service's transactional email. Handlers depend on
// this interface so tests can substitute a recorder.
type Mailer interface {
	// SendPasswordResetOTP emails a short-lived verification code.
	SendPasswordResetOTP(ctx context.Context, email, fullName, otp string) error

	// SendWelcome emails a greeting to a freshly created account.
	SendWelcome(ctx context.Context, email, fullName string) error
}

// Config holds SMTP connection parameters for New.
type Config struct {
	// Host is the SMTP server hostname. Required.
	Host string

	// Port is the SMTP submission port. Required.
	Port int

	// Username and Password authenticate the SMTP session.
	Username string
	Password string

	// Sender is the From address on outgoing mail. Required.
	Sender string

	// Logger receives delivery failures. Required.
	Logger *slog.Logger
}

// smtpMailer delivers mail over an authenticated SMTP session.
type smtpMailer struct {
	client *mail.Client
	sender string
	logger *slog.Logger
}

// New returns a Mailer backed by the configured SMTP server.
func New(cfg Config) (Mailer, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("mailer: Host and Port are required")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("mailer: Sender is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("mailer: Logger is required")
	}

	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("mailer: creating SMTP client: %w", err)
	}
	return &smtpMailer{client: client, sender: cfg.Sender, logger: cfg.Logger}, nil
}

func (m *smtpMailer) SendPasswordResetOTP(ctx context.Context, email, fullName, otp string) error {
	html, err := renderResetHTML(fullName, otp)
	if err != nil {
		return err
	}
	text := fmt.Sprintf(resetText, fullName, otp)
	return m.send(ctx, email, "RifleAxis - Password Reset Code", text, html)
}

func (m *smtpMailer) SendWelcome(ctx context.Context, email, fullName string) error {
	html, err := renderWelcomeHTML(fullName)
	if err != nil {
		return err
	}
	text := fmt.Sprintf(welcomeText, fullName)
	return m.send(ctx, email, "Welcome to RifleAxis!", text, html)
}

func (m *smtpMailer) send(ctx context.Context, recipient, subject, text, html string) error {
	message := mail.NewMsg()
	if err := message.From(m.sender); err != nil {
		return fmt.Errorf("mailer: setting sender: %w", err)
	}
	if err := message.To(recipient); err != nil {
		return fmt.Errorf("mailer: setting recipient: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, text)
	message.AddAlternativeString(mail.TypeTextHTML, html)

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		m.logger.Error("mail delivery failed",
			"recipient", recipient,
			"subject", subject,
			"error", err)
		return fmt.Errorf("mailer: sending %q: %w", subject, err)
	}
	return nil
}

// Discard returns a Mailer that logs instead of sending. Used when
// mail is disabled in the config, and in development.
func Discard(logger *slog.Logger) Mailer {
	return discardMailer{logger: logger}
}

type discardMailer struct {
	logger *slog.Logger
}

func (m discardMailer) SendPasswordResetOTP(ctx context.Context, email, fullName, otp string) error {
	m.logger.Info("mail disabled, dropping password reset email",
		"recipient", email,
		"otp", otp)
	return nil
}

func (m discardMailer) SendWelcome(ctx context.Context, email, fullName string) error {
	m.logger.Info("mail disabled, dropping welcome email", "recipient", email)
	return nil
}

const resetText = `RifleAxis - Password Reset Code

Hello %s,

You have requested to reset your password for your RifleAxis account.

Your verification code is: %s

This code will expire in 10 minutes.

If you didn't request this password reset, please ignore this email.
`

const welcomeText = `Welcome to RifleAxis!

Hello %s,

Thank you for joining RifleAxis, the platform for precision shooting
enthusiasts.

With RifleAxis you can:
- Manage your rifles, ammunition, and scopes
- Log DOPE, zero confirmations, and chronograph sessions
- Track your shooting progress

Ready to get started? Open the RifleAxis app and begin setting up your
first loadout!
`

var resetHTMLTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background-color: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; border-radius: 12px; overflow: hidden;">
    <div style="background: #667eea; color: white; padding: 30px 20px; text-align: center;">
      <h1 style="margin: 0;">RifleAxis</h1>
      <p>Password Reset Request</p>
    </div>
    <div style="padding: 40px 30px;">
      <p>Hello {{.FullName}},</p>
      <p>You have requested to reset your password for your RifleAxis account.
         Use the verification code below to proceed:</p>
      <div style="border: 2px solid #667eea; border-radius: 8px; padding: 20px; text-align: center; margin: 30px 0;">
        <div style="font-size: 32px; font-weight: bold; color: #667eea; letter-spacing: 8px;">{{.OTP}}</div>
        <div style="color: #666; font-size: 14px;">Enter this 4-digit code in the app</div>
      </div>
      <p>This code will expire in 10 minutes.</p>
      <p>If you didn't request this password reset, please ignore this email
         and your password will remain unchanged.</p>
      <p style="color: #dc3545; font-size: 14px;"><strong>Security note:</strong>
         never share this code with anyone. RifleAxis will never ask for your
         verification code via phone or email.</p>
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; text-align: center; color: #666; font-size: 14px;">
      <p>This is an automated message, please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>
`))

var welcomeHTMLTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background-color: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; border-radius: 12px; overflow: hidden;">
    <div style="background: #667eea; color: white; padding: 40px 20px; text-align: center;">
      <h1 style="margin: 0;">Welcome to RifleAxis!</h1>
      <p>Your precision shooting companion</p>
    </div>
    <div style="padding: 40px 30px;">
      <p>Welcome aboard, {{.FullName}}!</p>
      <p>Thank you for joining RifleAxis, the platform for precision shooting
         enthusiasts.</p>
      <ul>
        <li>Manage your rifles, ammunition, and scopes in one place</li>
        <li>Log DOPE, zero confirmations, and chronograph sessions</li>
        <li>Track your shooting progress</li>
      </ul>
      <p>Ready to get started? Open the RifleAxis app and begin setting up
         your first loadout!</p>
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; text-align: center; color: #666; font-size: 14px;">
      <p>Happy shooting!</p>
    </div>
  </div>
</body>
</html>
`))

func renderResetHTML(fullName, otp string) (string, error) {
	var buffer bytes.Buffer
	data := struct{ FullName, OTP string }{fullName, otp}
	if err := resetHTMLTemplate.Execute(&buffer, data); err != nil {
		return "", fmt.Errorf("mailer: rendering reset email: %w", err)
	}
	return buffer.String(), nil
}

func renderWelcomeHTML(fullName string) (string, error) {
	var buffer bytes.Buffer
	data := struct{ FullName string }{fullName}
	if err := welcomeHTMLTemplate.Execute(&buffer, data); err != nil {
		return "", fmt.Errorf("mailer: rendering welcome email: %w", err)
	}
	return buffer.String(), nil
}
