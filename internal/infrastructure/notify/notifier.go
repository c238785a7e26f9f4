// Package notify holds review-solicitation delivery. Email and SMS providers
// are external to this service; LogNotifier records what would be sent and is
// the default wiring.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// LogNotifier implements ports.Notifier by logging the solicitation.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendReviewRequest(_ context.Context, req *domain.ReviewRequest, followUp bool) error {
	n.log.Info().
		Int64("request_id", req.ID).
		Int64("company_id", req.CompanyID).
		Str("method", req.Method).
		Str("customer", req.CustomerName).
		Bool("follow_up", followUp).
		Msg("review request dispatched")
	return nil
}
