// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer sends contact notifications over SMTP with STARTTLS.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mailer: SMTP not configured; set FOLIO_SMTP_USER and FOLIO_SMTP_PASS")

// dialTimeout bounds the initial TCP connection.
const dialTimeout = 30 * time.Second

// Mailer sends notification emails.
type Mailer struct {
	host string
	port int
	user string
	pass string
	to   string
}

// ContactNotification is the payload for a contact-form notification email.
type ContactNotification struct {
	Name    string
	Email   string
	Subject string
	Message string
	SentAt  time.Time
}

// New creates a mailer. Missing credentials yield an unconfigured mailer
// whose sends fail fast with ErrNotConfigured.
func New(host string, port int, user, pass, to string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, to: to}
}

// Configured reports whether SMTP credentials are set.
func (m *Mailer) Configured() bool {
	return m.host != "" && m.user != "" && m.pass != ""
}

// SendContactNotification emails the site owner about a new contact message.
func (m *Mailer) SendContactNotification(ctx context.Context, n ContactNotification) error {
	subject := fmt.Sprintf("New contact message: %s", n.Subject)
	text := buildContactText(n)
	htmlBody := buildContactHTML(n)
	return m.Send(ctx, subject, text, htmlBody)
}

// SendTest sends a short test email for configuration diagnostics.
func (m *Mailer) SendTest(ctx context.Context) error {
	return m.Send(ctx, "Portfolio mail test",
		"SMTP configuration works. This is a test message.",
		"<p>SMTP configuration works. This is a test message.</p>")
}

// Send delivers a multipart text+HTML email to the configured recipient.
func (m *Mailer) Send(ctx context.Context, subject, text, htmlBody string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	msg := buildMessage(m.user, m.to, subject, text, htmlBody)
	if err := m.sendSMTP(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// buildMessage constructs an RFC 5322 message with a multipart/alternative body.
func buildMessage(from, to, subject, text, htmlBody string) string {
	var msg strings.Builder

	boundary := fmt.Sprintf("boundary_%d", time.Now().UnixNano())

	msg.WriteString(fmt.Sprintf("From: Portfolio <%s>\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(text)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return msg.String()
}

// sendSMTP connects, upgrades to TLS, authenticates and submits the message.
func (m *Mailer) sendSMTP(ctx context.Context, msg string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	tlsConfig := &tls.Config{
		ServerName: m.host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starting TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication: %w", err)
	}

	if err := client.Mail(m.user); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := client.Rcpt(m.to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("starting message: %w", err)
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing message: %w", err)
	}

	// Quit failures after a successful DATA are ignored; the message is sent.
	_ = client.Quit()
	return nil
}

func buildContactText(n ContactNotification) string {
	var b strings.Builder
	b.WriteString("New message from the portfolio contact form.\n\n")
	b.WriteString("Name: " + n.Name + "\n")
	b.WriteString("Email: " + n.Email + "\n")
	b.WriteString("Subject: " + n.Subject + "\n")
	b.WriteString("Sent: " + n.SentAt.Format(time.RFC1123) + "\n\n")
	b.WriteString(n.Message + "\n")
	return b.String()
}

func buildContactHTML(n ContactNotification) string {
	var b strings.Builder
	b.WriteString("<h2>New contact message</h2>")
	b.WriteString("<p><strong>Name:</strong> " + html.EscapeString(n.Name) + "<br>")
	b.WriteString("<strong>Email:</strong> " + html.EscapeString(n.Email) + "<br>")
	b.WriteString("<strong>Subject:</strong> " + html.EscapeString(n.Subject) + "<br>")
	b.WriteString("<strong>Sent:</strong> " + n.SentAt.Format(time.RFC1123) + "</p>")
	b.WriteString("<blockquote>" + html.EscapeString(n.Message) + "</blockquote>")
	return b.String()
}
