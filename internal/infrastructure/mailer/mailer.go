package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
	"safealert.backend/pkg/logger"
)

// Sender delivers transactional email
type Sender interface {
	SendOTP(to, name string, otp int) error
	Send(to, subject, body string) error
}

// Config holds SMTP connection settings
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail over SMTP with STARTTLS
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendOTP sends the verification code email
func (m *SMTPMailer) SendOTP(to, name string, otp int) error {
	subject := "Your verification code"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour verification code is %06d. It expires in 3 minutes.\r\n\r\nIf you did not request this code, ignore this email.\r\n",
		name, otp,
	)
	return m.Send(to, subject, body)
}

// Send delivers a plain-text email
func (m *SMTPMailer) Send(to, subject, body string) error {
	client, err := m.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(BuildMessage(m.cfg.From, to, subject, body))); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	if err := client.Quit(); err != nil {
		logger.Warn(context.Background(), "smtp quit failed", zap.Error(err))
	}
	logger.Debug(context.Background(), "email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (m *SMTPMailer) connect() (*smtp.Client, error) {
	addr := m.cfg.Host + ":" + m.cfg.Port

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		client.Close()
		return nil, fmt.Errorf("smtp server does not support STARTTLS")
	}
	tlsConfig := &tls.Config{
		ServerName: m.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, fmt.Errorf("smtp auth failed: %w", err)
	}

	return client, nil
}

// BuildMessage assembles the RFC 5322 message bytes
func BuildMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
