package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

type EmailService struct {
	context.DefaultService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	baseURL      string

	templates map[string]*template.Template
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = envOr("SMTP_PORT", "587")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = envOr("FROM_NAME", "AutoLane")
	svc.baseURL = envOr("BASE_URL", "http://localhost:8000")

	svc.templates = make(map[string]*template.Template)

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	if err := svc.loadTemplates(); err != nil {
		// Don't fail startup, just log the error
		log.WithError(err).Error("Failed to load email templates")
	}
	return nil
}

const passwordResetEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reset Your Password - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #DC2626; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .code { font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center; padding: 15px; background-color: white; border-radius: 5px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
        .warning { background-color: #FEF2F2; border-left: 4px solid #DC2626; padding: 10px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset Request</h1>
        </div>
        <div class="content">
            <h2>Hi {{.Name}},</h2>
            <p>We received a request to reset your password for your {{.AppName}} account. Enter this code on the reset page:</p>
            <div class="code">{{.Code}}</div>
            <div class="warning">
                <strong>Important:</strong> This code expires in 15 minutes.
            </div>
            <p>If you didn't request a password reset, you can safely ignore this email. Your password will remain unchanged.</p>
        </div>
        <div class="footer">
            <p>&copy; 2026 {{.AppName}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

const invoiceEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Invoice - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .details { background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Invoice</h1>
        </div>
        <div class="content">
            <h2>Hi {{.Name}},</h2>
            <p>A new invoice has been issued to your {{.AppName}} account.</p>
            <div class="details">
                <strong>Invoice:</strong> {{.Number}}<br>
                <strong>Amount:</strong> {{.Amount}}<br>
                <strong>Due:</strong> {{.DueDate}}
            </div>
            <p>You can review and pay this invoice from your dealer dashboard at <a href="{{.BaseURL}}/dealer/invoices">{{.BaseURL}}/dealer/invoices</a>.</p>
        </div>
        <div class="footer">
            <p>&copy; 2026 {{.AppName}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

type PasswordResetEmailData struct {
	AppName string
	Name    string
	Code    string
}

type InvoiceEmailData struct {
	AppName string
	Name    string
	Number  string
	Amount  string
	DueDate string
	BaseURL string
}

func (svc *EmailService) loadTemplates() error {
	var err error

	svc.templates["password_reset"], err = template.New("password_reset").Parse(passwordResetEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse password reset email template: %v", err)
	}

	svc.templates["invoice"], err = template.New("invoice").Parse(invoiceEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse invoice email template: %v", err)
	}

	return nil
}

// SendPasswordResetEmail delivers the 6-digit reset code.
func (svc *EmailService) SendPasswordResetEmail(email, name, code string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping password reset email")
		return nil
	}

	data := PasswordResetEmailData{
		AppName: svc.fromName,
		Name:    name,
		Code:    code,
	}

	subject := fmt.Sprintf("Reset Your Password - %s", svc.fromName)
	return svc.sendTemplateEmail(email, subject, "password_reset", data)
}

// SendInvoiceEmail notifies a dealer that a new invoice was issued.
func (svc *EmailService) SendInvoiceEmail(email, name, number, amount, dueDate string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping invoice email")
		return nil
	}

	data := InvoiceEmailData{
		AppName: svc.fromName,
		Name:    name,
		Number:  number,
		Amount:  amount,
		DueDate: dueDate,
		BaseURL: svc.baseURL,
	}

	subject := fmt.Sprintf("New Invoice %s - %s", number, svc.fromName)
	return svc.sendTemplateEmail(email, subject, "invoice", data)
}

func (svc *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute template: %v", err)
	}

	return svc.sendEmail(to, subject, body.String())
}

func (svc *EmailService) sendEmail(to, subject, body string) error {
	if svc.smtpHost == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		svc.fromName, svc.fromEmail, to, subject, body))

	err := smtp.SendMail(
		svc.smtpHost+":"+svc.smtpPort,
		auth,
		svc.fromEmail,
		[]string{to},
		msg,
	)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent successfully")
	return nil
}
