package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// Mailer is the slice of *sendgrid.Client the invoice service uses.
type Mailer interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// SendInvoiceParams carries the scanned document and its optional
// labelling fields.
type SendInvoiceParams struct {
	PDFBase64 string
	Filename  string
	Amount    string
	DocType   string
}

// InvoiceService formats and sends a scanned document to the
// configured recipient with the PDF attached. It does not rate-limit
// itself; the controller checks the quota first and records the send
// only after this succeeds.
type InvoiceService interface {
	// Send delivers the email and returns the provider message id
	// (empty if the provider did not supply one). Provider rejections
	// are wrapped in utils.ErrExternalServiceFailure.
	Send(ctx context.Context, params SendInvoiceParams) (string, error)
}

type invoiceService struct {
	mailer Mailer
	cfg    *config.Config
}

func NewInvoiceService(mailer Mailer, cfg *config.Config) InvoiceService {
	return &invoiceService{mailer: mailer, cfg: cfg}
}

const invoiceEmailHTML = `<p>A new %s has been scanned and attached to this email.</p>
%s<p><strong>Scanned on:</strong> %s</p>`

func (s *invoiceService) Send(_ context.Context, params SendInvoiceParams) (string, error) {
	now := time.Now()

	label := "Invoice"
	if params.DocType != "" {
		label = params.DocType
	}

	subject := fmt.Sprintf("%s - %s", label, now.Format("1/2/2006"))
	amountLine := ""
	if params.Amount != "" {
		subject = fmt.Sprintf("%s - $%s - %s", label, params.Amount, now.Format("1/2/2006"))
		amountLine = fmt.Sprintf("<p><strong>Total Amount:</strong> $%s</p>", params.Amount)
	}

	from := mail.NewEmail(s.cfg.AppName, s.cfg.InvoiceFromEmail)
	to := mail.NewEmail("", s.cfg.InvoiceRecipient)
	htmlContent := fmt.Sprintf(invoiceEmailHTML, label, amountLine, now.Format("1/2/2006 3:04:05 PM"))
	plainContent := fmt.Sprintf("A new %s has been scanned and attached to this email.", label)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)

	attachment := mail.NewAttachment()
	attachment.SetContent(params.PDFBase64)
	attachment.SetType("application/pdf")
	attachment.SetFilename(params.Filename)
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	if s.cfg.SendGridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	resp, err := s.mailer.Send(message)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 300 {
		utils.Logger.Errorf("SendGrid rejected invoice email: status %d body %s", resp.StatusCode, resp.Body)
		return "", fmt.Errorf("%w: sendgrid returned status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}

	messageID := ""
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}
	return messageID, nil
}
