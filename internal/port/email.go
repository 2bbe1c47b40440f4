package port

import (
	"context"

	"veridoc/internal/domain"
)

// EmailSender defines the contract for sending the verification summary
// notification after a document has been scored.
type EmailSender interface {
	SendVerificationSummary(ctx context.Context, toEmail, toName string, report domain.VerificationReport) error
}
