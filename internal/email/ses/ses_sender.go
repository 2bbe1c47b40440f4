package ses

import (
	"context"
	"fmt"
	"sort"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"veridoc/internal/domain"
	"veridoc/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendVerificationSummary(ctx context.Context, toEmail, toName string, report domain.VerificationReport) error {
	subject := fmt.Sprintf("Document verification result: %d/100", report.OverallScore)
	htmlBody := buildSummaryHTML(toName, report)
	textBody := buildSummaryText(toName, report)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// sortedChecks returns check names alphabetically so the rendered list is
// stable across sends.
func sortedChecks(report domain.VerificationReport) []domain.VerificationCheck {
	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make([]domain.VerificationCheck, 0, len(names))
	for _, name := range names {
		checks = append(checks, report.Checks[name])
	}
	return checks
}

func verdict(report domain.VerificationReport) string {
	if report.IsAuthentic {
		return "likely authentic"
	}
	return "could not be verified"
}

func buildSummaryText(name string, report domain.VerificationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Your %s document scored %d/100 (%s confidence) and is %s.\n\n",
		report.DocType, report.OverallScore, report.ConfidenceLevel, verdict(report))
	for _, check := range sortedChecks(report) {
		status := "FAIL"
		if check.Passed {
			status = "PASS"
		}
		fmt.Fprintf(&b, "  [%s] %s (%d/%d): %s\n", status, check.Name, check.Score, check.MaxScore, check.Details)
	}
	b.WriteString("\nVeriDoc Team")
	return b.String()
}

func buildSummaryHTML(name string, report domain.VerificationReport) string {
	var rows strings.Builder
	for _, check := range sortedChecks(report) {
		color := "#DC2626"
		if check.Passed {
			color = "#16A34A"
		}
		fmt.Fprintf(&rows,
			`<tr><td style="padding: 6px 12px; color: %s;">%s</td><td style="padding: 6px 12px;">%d/%d</td><td style="padding: 6px 12px; color: #666;">%s</td></tr>`,
			color, check.Name, check.Score, check.MaxScore, check.Details)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Document verification result</h2>
  <p>Hi %s,</p>
  <p>Your <strong>%s</strong> document scored <strong>%d/100</strong> (%s confidence) and is %s.</p>
  <table style="border-collapse: collapse; width: 100%%; font-size: 14px;">
    <tr style="background: #f5f5f5;"><th style="padding: 6px 12px; text-align: left;">Check</th><th style="padding: 6px 12px; text-align: left;">Score</th><th style="padding: 6px 12px; text-align: left;">Details</th></tr>
    %s
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">VeriDoc - Identity Document Verification</p>
</body>
</html>`, name, report.DocType, report.OverallScore, report.ConfidenceLevel, verdict(report), rows.String())
}
