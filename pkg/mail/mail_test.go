package mail

import (
	"context"
	"testing"

	"github.com/abisalde/povertyline-client/internal/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailerService(t *testing.T) {
	cfg := &configs.Config{}
	assert.IsType(t, LogMailer{}, NewMailerService(cfg))

	cfg.Mail.SMTPHost = "smtp.example.org"
	cfg.Mail.SMTPPort = "2525"
	assert.IsType(t, &SMTPMailService{}, NewMailerService(cfg))
}

func TestOutbox(t *testing.T) {
	outbox := &Outbox{}
	require.NoError(t, outbox.SendPlainTextEmail(context.Background(), "a@b.com", "Hello", "body"))

	sent := outbox.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, Message{To: "a@b.com", Subject: "Hello", Body: "body"}, sent[0])

	sent[0].To = "changed"
	assert.Equal(t, "a@b.com", outbox.Sent()[0].To)
}

func TestSMTPHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSMTPMailService("127.0.0.1", "1", "", "", "no-reply@povertyline.org")
	assert.ErrorIs(t, s.SendPlainTextEmail(ctx, "a@b.com", "Hi", "body"), context.Canceled)
}
