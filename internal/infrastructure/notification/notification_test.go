package notification

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"scholarship-portal/internal/config"
	"scholarship-portal/internal/domain/notification"
	"scholarship-portal/internal/logger"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSMTPNotifier_Send(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "mailer@example.com",
		Password: "secret",
		From:     "Scholarships <no-reply@example.com>",
	})

	var (
		sent     *email.Email
		sentAddr string
		sentAuth smtp.Auth
	)
	n.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		sent, sentAddr, sentAuth = e, addr, auth
		return nil
	}

	err := n.Send(context.Background(), notification.Message{
		To:      "student@example.com",
		Subject: "Reset",
		HTML:    "<p>123456</p>",
	})
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Equal(t, "smtp.example.com:587", sentAddr)
	assert.NotNil(t, sentAuth)
	assert.Equal(t, "Scholarships <no-reply@example.com>", sent.From)
	assert.Equal(t, []string{"student@example.com"}, sent.To)
	assert.Equal(t, "Reset", sent.Subject)
	assert.Equal(t, "<p>123456</p>", string(sent.HTML))
}

func TestSMTPNotifier_FallsBackToUserAsSender(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "localhost", Port: 25, User: "mailer@example.com"})

	var from string
	n.send = func(e *email.Email, _ string, _ smtp.Auth) error {
		from = e.From
		return nil
	}

	require.NoError(t, n.Send(context.Background(), notification.Message{To: "a@b.com"}))
	assert.Equal(t, "mailer@example.com", from)
}

func TestSMTPNotifier_WrapsSendError(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "localhost", Port: 25})

	relayErr := errors.New("connection refused")
	n.send = func(*email.Email, string, smtp.Auth) error { return relayErr }

	err := n.Send(context.Background(), notification.Message{To: "a@b.com"})
	assert.ErrorIs(t, err, relayErr)
}

func TestSMTPNotifier_CanceledContext(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "localhost", Port: 25})

	called := false
	n.send = func(*email.Email, string, smtp.Auth) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Send(ctx, notification.Message{To: "a@b.com"}), context.Canceled)
	assert.False(t, called)
}

func TestSMTPNotifier_StalledRelayTimesOut(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "localhost", Port: 25, Timeout: 20 * time.Millisecond})

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	n.send = func(*email.Email, string, smtp.Auth) error {
		<-release
		return nil
	}

	start := time.Now()
	err := n.Send(context.Background(), notification.Message{To: "a@b.com"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSMTPNotifier_CallerDeadlineWins(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "localhost", Port: 25, Timeout: time.Hour})

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	n.send = func(*email.Email, string, smtp.Auth) error {
		<-release
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, n.Send(ctx, notification.Message{To: "a@b.com"}), context.DeadlineExceeded)
}

func TestLogNotifier_DoesNotLogBody(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	previous := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = previous })

	err := NewLogNotifier().Send(context.Background(), notification.Message{
		To:      "a@b.com",
		Subject: "Reset",
		HTML:    "code 654321",
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "a@b.com", fields["to"])
	for _, v := range fields {
		assert.NotContains(t, v, "654321")
	}
}
