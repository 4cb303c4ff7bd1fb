// Package channels chứa các kênh gửi đi (SMTP email).
package channels

import (
	"gopkg.in/gomail.v2"

	"retro_notify/core/logger"
)

// SMTPConfig - thông tin SMTP của sender
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// EmailSender gửi email qua SMTP bằng gomail
type EmailSender struct {
	cfg SMTPConfig
}

// NewEmailSender tạo EmailSender với config SMTP
func NewEmailSender(cfg SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send gửi một email HTML tới recipient
func (s *EmailSender) Send(recipient, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
			"to":      recipient,
			"subject": subject,
		}).Error("📧 [EMAIL] Gửi email thất bại")
		return err
	}

	logger.GetAppLogger().WithField("to", recipient).Info("📧 [EMAIL] Đã gửi email")
	return nil
}
