package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"aisolutions/internal/config"
	"aisolutions/internal/domain"
	"aisolutions/internal/logger"
)

const mailBoundaryPrefix = "----=_NextPart_"

// ErrEmailNotConfigured is returned when sending is enabled without SMTP
// credentials.
var ErrEmailNotConfigured = errors.New("email service not properly configured")

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails
type EmailService struct {
	cfg      config.EmailConfig
	log      *zap.Logger
	sendMail sendMailFunc
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.EmailConfig, log *zap.Logger) *EmailService {
	return &EmailService{cfg: cfg, log: log, sendMail: smtp.SendMail}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// NotifyInquiry mails the configured recipient about a new inquiry. When
// sending is disabled it only logs.
func (s *EmailService) NotifyInquiry(inq *domain.Inquiry) error {
	if !s.cfg.Enabled {
		s.log.Info("new inquiry received",
			zap.Uint("id", inq.ID),
			zap.String("email", logger.MaskEmail(inq.Email)))
		return nil
	}

	subject := fmt.Sprintf("New Inquiry from %s", inq.Name)
	return s.SendHTMLEmail(s.cfg.NotifyEmail, subject, inquiryHTML(inq), inquiryText(inq))
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		s.log.Debug("email disabled, not sending", zap.String("subject", subject))
		return nil
	}
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return ErrEmailNotConfigured
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	msg := s.buildMessage(to, subject, htmlBody, textBody)
	if err := s.sendMail(addr, auth, s.cfg.FromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	from := headerValue(s.cfg.FromEmail)
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", headerValue(s.cfg.FromName), from)
	}

	boundary := newBoundary()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(to))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(textBody + "\r\n")

	if htmlBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(htmlBody + "\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

// headerValue folds submitted text onto one header line and Q-encodes
// anything outside printable ASCII.
func headerValue(v string) string {
	v = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, v)
	return mime.QEncoding.Encode("utf-8", v)
}

// newBoundary returns a multipart boundary that submitted text cannot
// predict.
func newBoundary() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return mailBoundaryPrefix + "fallback"
	}
	return mailBoundaryPrefix + hex.EncodeToString(buf[:])
}

func orNotProvided(v *string) string {
	if v == nil || *v == "" {
		return "Not provided"
	}
	return *v
}

func inquiryText(inq *domain.Inquiry) string {
	return fmt.Sprintf(`New Inquiry

Name: %s
Email: %s
Phone: %s
Company: %s
Country: %s
Job Title: %s
Submitted: %s

Details:
%s

Inquiry ID: #%d`, inq.Name, inq.Email, orNotProvided(inq.Phone), orNotProvided(inq.Company),
		orNotProvided(inq.Country), orNotProvided(inq.JobTitle),
		inq.Timestamp.Format("January 2, 2006 at 3:04 PM MST"), orNotProvided(inq.JobDetails), inq.ID)
}

func inquiryHTML(inq *domain.Inquiry) string {
	e := html.EscapeString
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Inquiry</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #1C5D99;">New Inquiry</h2>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> %s</p>
            <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
            <p><strong>Phone:</strong> %s</p>
            <p><strong>Company:</strong> %s</p>
            <p><strong>Country:</strong> %s</p>
            <p><strong>Job Title:</strong> %s</p>
            <p><strong>Submitted:</strong> %s</p>
        </div>
        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #1C5D99; margin: 20px 0;">
            <h3 style="margin-top: 0;">Details:</h3>
            <p style="white-space: pre-wrap;">%s</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">Inquiry ID: #%d</p>
    </div>
</body>
</html>`, e(inq.Name), e(inq.Email), e(inq.Email), e(orNotProvided(inq.Phone)),
		e(orNotProvided(inq.Company)), e(orNotProvided(inq.Country)), e(orNotProvided(inq.JobTitle)),
		inq.Timestamp.Format("January 2, 2006 at 3:04 PM MST"), e(orNotProvided(inq.JobDetails)), inq.ID)
}
