package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"toolshare-admin/internal/dispute"
	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
)

type emailContent struct {
	subject string
	plain   string
	html    string
}

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService returns a SendGrid-backed EmailService. With no API key
// emails are logged and dropped.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		return logOnlyEmailService{}
	}
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendDepositSettlement(ctx context.Context, toEmail, toName string, n *domain.Notification) error {
	return s.send(toEmail, toName, settlementEmail(toName, n))
}

func (s *sendGridEmailService) SendOpenDisputeDigest(ctx context.Context, toEmail, toName string, disputes []domain.Report) error {
	return s.send(toEmail, toName, disputeDigestEmail(toName, disputes))
}

func (s *sendGridEmailService) send(toEmail, toName string, c emailContent) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", c.subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, c.subject, to, c.plain, c.html)

	response, err := sendgrid.NewSendClient(s.apiKey).Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}

type logOnlyEmailService struct{}

func (logOnlyEmailService) SendDepositSettlement(ctx context.Context, toEmail, toName string, n *domain.Notification) error {
	logger.Info("Email disabled, settlement email not sent", "to", toEmail, "type", n.Type)
	return nil
}

func (logOnlyEmailService) SendOpenDisputeDigest(ctx context.Context, toEmail, toName string, disputes []domain.Report) error {
	logger.Info("Email disabled, dispute digest not sent", "to", toEmail, "count", len(disputes))
	return nil
}

func settlementEmail(name string, n *domain.Notification) emailContent {
	plain := fmt.Sprintf("Hello %s,\n\n%s\n\nRental: %s\n\nBest regards,\nThe Toolshare Team", name, n.Message, n.RelatedRentalID)
	body := fmt.Sprintf(`<html>
	<body>
		<h2>%s</h2>
		<p>Hello %s,</p>
		<p>%s</p>
		<p>Rental: <code>%s</code></p>
	</body>
</html>`, html.EscapeString(n.Title), html.EscapeString(name), html.EscapeString(n.Message), html.EscapeString(n.RelatedRentalID))
	return emailContent{subject: n.Title, plain: plain, html: body}
}

func disputeDigestEmail(name string, disputes []domain.Report) emailContent {
	subject := fmt.Sprintf("%d open deposit dispute(s) awaiting action", len(disputes))

	var plain, items strings.Builder
	fmt.Fprintf(&plain, "Hello %s,\n\nThe following deposit disputes are still open:\n\n", name)
	for i := range disputes {
		r := &disputes[i]
		rentalID, _ := dispute.InferRentalID(r)
		status := domain.NormalizeReportStatus(r.Status)
		fmt.Fprintf(&plain, "- Report %s (%s), rental %s, reported by %s\n", r.ID, status, rentalID, r.ReportedByName)
		fmt.Fprintf(&items, "<li>Report <code>%s</code> (%s), rental <code>%s</code>, reported by %s</li>",
			html.EscapeString(r.ID), status, html.EscapeString(rentalID), html.EscapeString(r.ReportedByName))
	}
	plain.WriteString("\nBest regards,\nThe Toolshare Team")

	body := fmt.Sprintf(`<html>
	<body>
		<h2>Open deposit disputes</h2>
		<p>Hello %s,</p>
		<ul>%s</ul>
	</body>
</html>`, html.EscapeString(name), items.String())
	return emailContent{subject: subject, plain: plain.String(), html: body}
}
