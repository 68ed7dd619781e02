package mailer

import (
	"fmt"
	"net/smtp"

	"wastemanage/internal/config"
)

// Sender delivers outbound mail. Services depend on this interface so tests
// can substitute a recorder.
type Sender interface {
	SendPasswordResetEmail(to, firstName, resetURL string) error
	SendPasswordResetConfirmation(to, firstName string) error
}

// SMTPMailer sends mail through a plain SMTP transport.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendPasswordResetEmail(to, firstName, resetURL string) error {
	subject := "Password Reset Request - WasteManage"
	body := buildResetEmailBody(firstName, resetURL)
	return m.sendHTML(to, subject, body)
}

func (m *SMTPMailer) SendPasswordResetConfirmation(to, firstName string) error {
	subject := "Password Successfully Reset - WasteManage"
	body := buildConfirmationEmailBody(firstName)
	return m.sendHTML(to, subject, body)
}

func (m *SMTPMailer) sendHTML(to, subject, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		from, to, subject)
	msg := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

func buildResetEmailBody(firstName, resetURL string) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 0 auto; padding: 20px; }
                .header { background-color: #16a34a; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
                .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
                .button { display: inline-block; padding: 15px 30px; background-color: #16a34a; color: white; text-decoration: none; border-radius: 5px; font-weight: bold; margin: 20px 0; }
                .warning { background: #fef3c7; border-left: 4px solid #f59e0b; padding: 15px; margin: 20px 0; }
            </style>
        </head>
        <body>
            <div class="container">
                <div class="header">
                    <h1>Password Reset Request</h1>
                </div>
                <div class="content">
                    <p>Hi <strong>%s</strong>,</p>
                    <p>We received a request to reset your password for your WasteManage account.</p>
                    <p>Click the button below to create a new password:</p>
                    <div style="text-align: center;">
                        <a href="%s" class="button">Reset My Password</a>
                    </div>
                    <p>Or copy and paste this link into your browser:</p>
                    <p style="word-break: break-all; color: #16a34a;">%s</p>
                    <div class="warning">
                        <strong>Important:</strong> This link will expire in <strong>1 hour</strong>.
                    </div>
                    <p>If you didn't request this password reset, please ignore this email. Your password will remain unchanged.</p>
                </div>
            </div>
        </body>
        </html>
    `, firstName, resetURL, resetURL)
}

func buildConfirmationEmailBody(firstName string) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 0 auto; padding: 20px; }
                .header { background-color: #16a34a; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
                .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
                .success { background: #d1fae5; border-left: 4px solid #16a34a; padding: 15px; margin: 20px 0; }
            </style>
        </head>
        <body>
            <div class="container">
                <div class="header">
                    <h1>Password Reset Successful</h1>
                </div>
                <div class="content">
                    <p>Hi <strong>%s</strong>,</p>
                    <div class="success">
                        Your password has been successfully reset.
                    </div>
                    <p>You can now log in to your WasteManage account using your new password.</p>
                    <p>If you did not make this change, please contact our support team immediately.</p>
                </div>
            </div>
        </body>
        </html>
    `, firstName)
}
