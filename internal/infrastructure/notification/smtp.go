package notification

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"scholarship-portal/internal/config"
	"scholarship-portal/internal/domain/notification"

	"github.com/jordan-wright/email"
)

const defaultSendTimeout = 30 * time.Second

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// SMTPNotifier relays messages through a plain-auth SMTP server.
type SMTPNotifier struct {
	cfg  config.SMTPConfig
	send sendFunc
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		cfg: cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Send relays msg and gives up once ctx is done or, when ctx carries no
// deadline, after the configured timeout. The relay goroutine may outlive an
// abandoned send until the server answers.
func (n *SMTPNotifier) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	if e.From == "" {
		e.From = n.cfg.User
	}
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)

	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	if _, ok := ctx.Deadline(); !ok {
		timeout := n.cfg.Timeout
		if timeout <= 0 {
			timeout = defaultSendTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	done := make(chan error, 1)
	go func() {
		done <- n.send(e, addr, auth)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send email: %w", ctx.Err())
	}
}
