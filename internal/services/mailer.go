package services

import (
	"context"
	"errors"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/terraincognita07/milla/internal/config"
)

var ErrMailDisabled = errors.New("mail delivery not configured")

type MailMessage struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, message MailMessage) error
}

// SMTPMailer delivers through one SMTP relay with PLAIN auth when a user
// name is configured.
type SMTPMailer struct {
	settings config.MailConfig
	send     func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(settings config.MailConfig) *SMTPMailer {
	return &SMTPMailer{settings: settings, send: smtp.SendMail}
}

func (mailer *SMTPMailer) Send(ctx context.Context, message MailMessage) error {
	if !mailer.settings.Enabled() {
		return ErrMailDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if mailer.settings.Username != "" {
		auth = smtp.PlainAuth("", mailer.settings.Username, mailer.settings.Password, mailer.settings.Host)
	}

	return mailer.send(mailer.settings.Address(), auth, message.From, []string{message.To}, buildMIMEMessage(message, time.Now()))
}

func buildMIMEMessage(message MailMessage, date time.Time) []byte {
	var builder strings.Builder
	writeHeader := func(name string, value string) {
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("\r\n")
	}

	writeHeader("From", message.From)
	writeHeader("To", message.To)
	if message.ReplyTo != "" {
		writeHeader("Reply-To", message.ReplyTo)
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", message.Subject))
	writeHeader("Date", date.Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `text/html; charset="UTF-8"`)
	builder.WriteString("\r\n")
	builder.WriteString(message.HTMLBody)
	return []byte(builder.String())
}
