package services

import (
	"context"

	"github.com/dmitrijs2005/evote/internal/logging"
)

// Notifier delivers a voter's verification receipt out of band. Delivery
// is best-effort and never affects a cast.
type Notifier interface {
	SendVerification(ctx context.Context, address, token string) error
}

// LogNotifier only logs that a receipt would have been sent.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("module", "notifier")}
}

// SendVerification logs the address and the code prefix only.
func (n *LogNotifier) SendVerification(ctx context.Context, address, token string) error {
	hint := token
	if len(hint) > 8 {
		hint = hint[:8] + "..."
	}
	n.log.Info(ctx, "verification receipt", "to", address, "code", hint)
	return nil
}
