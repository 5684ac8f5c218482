package notification

import (
	"context"

	"scholarship-portal/internal/domain/notification"
	"scholarship-portal/internal/logger"

	"go.uber.org/zap"
)

// LogNotifier stands in for SMTP in development. Message bodies may carry
// one-time codes, so only the envelope is logged.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(_ context.Context, msg notification.Message) error {
	logger.Info("Email delivery skipped, SMTP not configured",
		logger.Event("email_skipped"),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
