package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/pkg/logging"
)

// Mailer delivers an HTML mail. The POS ships with a log-only
// implementation; a real SMTP/SendGrid client plugs in here.
type Mailer interface {
	SendEmail(ctx context.Context, toEmail, subject, htmlBody string) error
}

// LogMailer pretends to send and reports success, like the counter demo
// it replaces.
type LogMailer struct{}

func (LogMailer) SendEmail(ctx context.Context, toEmail, subject, htmlBody string) error {
	logging.FromContext(ctx).Info("email simulated",
		"to", toEmail,
		"subject", subject,
		"body_bytes", len(htmlBody))
	return nil
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<html>
<body>
<h2>Receipt {{.OrderNumber}}</h2>
<p>{{.OrderDate.Format "2006-01-02 15:04"}}{{if .CustomerName}} &mdash; {{.CustomerName}}{{end}}</p>
<table>
{{range .Items}}<tr><td>{{if .Product}}{{.Product.Name}}{{else}}#{{.ProductID}}{{end}}</td><td>{{.Quantity}} x {{.UnitPrice.StringFixed 2}}</td><td>{{.TotalPrice.StringFixed 2}}</td></tr>
{{end}}</table>
<p>Subtotal: {{.Subtotal.StringFixed 2}}<br>
Tax: {{.Tax.StringFixed 2}}<br>
<b>Total: {{.Total.StringFixed 2}}</b></p>
<p>Paid by {{.PaymentMethod}}</p>
</body>
</html>
`))

type ReceiptService struct {
	Mailer Mailer
}

// Render produces the HTML receipt for an order.
func (s *ReceiptService) Render(order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, order); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

// SendReceipt renders and mails the receipt for an order.
func (s *ReceiptService) SendReceipt(ctx context.Context, toEmail string, order *models.Order) error {
	if toEmail == "" {
		return fmt.Errorf("%w: recipient email is required", ErrValidation)
	}

	body, err := s.Render(order)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Receipt %s - cafepos", order.OrderNumber)
	return s.Mailer.SendEmail(ctx, toEmail, subject, body)
}
