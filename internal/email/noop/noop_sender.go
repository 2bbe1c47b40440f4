package noop

import (
	"context"
	"log"

	"veridoc/internal/domain"
	"veridoc/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs summaries to stdout.
func NewNoopSender() port.EmailSender {
	return noopSender{}
}

func (noopSender) SendVerificationSummary(_ context.Context, toEmail, toName string, report domain.VerificationReport) error {
	log.Printf("[NOOP EMAIL] Verification summary for %s (%s): %s scored %d/100, authentic=%t",
		toName, toEmail, report.DocType, report.OverallScore, report.IsAuthentic)
	return nil
}
