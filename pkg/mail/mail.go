package mail

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"sync"
)

type Mailer interface {
	SendPlainTextEmail(ctx context.Context, recipientEmail, subject, body string) error
}

type SMTPMailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	senderEmail  string
}

func NewSMTPMailService(host, port, username, password, from string) *SMTPMailService {
	return &SMTPMailService{
		smtpHost:     host,
		smtpPort:     port,
		smtpUsername: username,
		smtpPassword: password,
		senderEmail:  from,
	}
}

func (s *SMTPMailService) sendEmail(recipientEmail, subject, body string) error {
	msg := []string{
		"From: " + s.senderEmail,
		"To: " + recipientEmail,
		"Subject: " + subject,
		"",
		body,
	}

	var auth smtp.Auth
	if s.smtpUsername != "" {
		auth = smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	}
	return smtp.SendMail(
		fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort),
		auth,
		s.senderEmail,
		[]string{recipientEmail},
		[]byte(strings.Join(msg, "\r\n")),
	)
}

func (s *SMTPMailService) SendPlainTextEmail(ctx context.Context, recipientEmail, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.sendEmail(recipientEmail, subject, body)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email sending canceled: %w", ctx.Err())
	}
}

// LogMailer writes messages to the process log instead of delivering them.
type LogMailer struct{}

func (LogMailer) SendPlainTextEmail(ctx context.Context, recipientEmail, subject, body string) error {
	log.Printf("📧 To: %s | %s\n%s", recipientEmail, subject, body)
	return nil
}

type Message struct {
	To      string
	Subject string
	Body    string
}

// Outbox keeps every message in memory. Tests read it back with Sent.
type Outbox struct {
	mu   sync.Mutex
	sent []Message
}

func (o *Outbox) SendPlainTextEmail(ctx context.Context, recipientEmail, subject, body string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, Message{To: recipientEmail, Subject: subject, Body: body})
	return nil
}

func (o *Outbox) Sent() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.sent...)
}
