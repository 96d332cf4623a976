package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/estoque-ti/internal/application/notification"
)

var _ notification.Sender = (*SMTPSender)(nil)

// SMTPConfig servidor SMTP propio (alternativa a EmailJS).
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPSender envía el asunto y cuerpo del mensaje por SMTP.
type SMTPSender struct {
	from   string
	dialer *gomail.Dialer
}

// NewSMTPSender construye el adaptador.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send abre una conexión por mensaje; el volumen es de pocas alertas por día.
func (s *SMTPSender) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := newGomailMessage(s.from, msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", msg.To, err)
	}
	return nil
}

func newGomailMessage(from string, msg notification.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}
