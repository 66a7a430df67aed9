package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier implements usecase.Notifier by writing mail-shaped messages
// to the structured log. Actual delivery is handled by an external mail
// relay tailing the log stream; swapping in an SMTP implementation only
// requires satisfying the same interface.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify writes the notification to the log.
func (n *LogNotifier) Notify(_ context.Context, recipient, subject, body string) error {
	n.logger.Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Str("body", body).
		Msg("notification sent")

	return nil
}
