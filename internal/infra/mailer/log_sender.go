// Package mailer delivers rendered receipts.
package mailer

import (
	"context"
	"log/slog"

	"table-booking/internal/usecase/shared"
)

// LogSender writes receipts to the structured log instead of an SMTP relay.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, r shared.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Receipt delivered",
		"to_name", r.To.Name,
		"to_email", r.To.Email,
		"subject", r.Subject,
		"body", r.Body)
	return nil
}
