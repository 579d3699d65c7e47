package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	SchoolName   string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// PaymentReceiptData carries the fields rendered into a payment receipt email.
type PaymentReceiptData struct {
	StudentName   string
	Description   string
	ReceiptNumber string
	Date          string
	Method        string
	Amount        float64
	TotalDue      float64
	TotalPaid     float64
	Balance       float64
}

// SendPaymentReceiptEmail sends a payment confirmation to a guardian
func (s *EmailService) SendPaymentReceiptEmail(toEmail string, data PaymentReceiptData) error {
	htmlContent, err := s.renderPaymentReceiptEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Payment Receipt %s - %s", data.ReceiptNumber, s.config.SchoolName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	// Gmail requires TLS authentication
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderPaymentReceiptEmail renders the payment receipt email template
func (s *EmailService) renderPaymentReceiptEmail(data PaymentReceiptData) (string, error) {
	tmpl, err := template.New("payment_receipt").Parse(paymentReceiptTemplate)
	if err != nil {
		return "", err
	}

	tmplData := struct {
		PaymentReceiptData
		SchoolName string
	}{
		PaymentReceiptData: data,
		SchoolName:         s.config.SchoolName,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tmplData); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// paymentReceiptTemplate is the HTML template for payment receipt emails
const paymentReceiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Payment Receipt</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <!-- Header -->
                    <tr>
                        <td style="background: linear-gradient(135deg, #1e7a46 0%, #2f9e5f 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.SchoolName}}</h1>
                        </td>
                    </tr>

                    <!-- Content -->
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Payment Received</h2>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Dear Parent/Guardian,
                            </p>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 30px 0;">
                                We have received a payment for <strong>{{.StudentName}}</strong> towards <strong>{{.Description}}</strong>.
                            </p>

                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 0 0 30px 0;">
                                <tr>
                                    <td style="padding: 8px 0; color: #718096; font-size: 14px;">Receipt Number</td>
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 14px; text-align: right;">{{.ReceiptNumber}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 8px 0; color: #718096; font-size: 14px;">Date</td>
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 14px; text-align: right;">{{.Date}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 8px 0; color: #718096; font-size: 14px;">Payment Method</td>
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 14px; text-align: right;">{{.Method}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 8px 0; color: #718096; font-size: 14px; border-top: 1px solid #e2e8f0;">Amount Paid</td>
                                    <td style="padding: 8px 0; color: #1e7a46; font-size: 16px; font-weight: 600; text-align: right; border-top: 1px solid #e2e8f0;">{{printf "%.2f" .Amount}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 8px 0; color: #718096; font-size: 14px;">Total Due</td>
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 14px; text-align: right;">{{printf "%.2f" .TotalDue}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 8px 0; color: #718096; font-size: 14px;">Total Paid</td>
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 14px; text-align: right;">{{printf "%.2f" .TotalPaid}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 8px 0; color: #718096; font-size: 14px;">Outstanding Balance</td>
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 16px; font-weight: 600; text-align: right;">{{printf "%.2f" .Balance}}</td>
                                </tr>
                            </table>

                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                Please keep this email for your records. If any of the details above look incorrect, contact the school office.
                            </p>
                        </td>
                    </tr>

                    <!-- Footer -->
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">
                                This email was sent by {{.SchoolName}}
                            </p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">
                                © 2026 {{.SchoolName}}. All rights reserved.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
