package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-ti/internal/application/notification"
)

var _ notification.Sender = (*NoopSender)(nil)

// NoopSender descarta el mensaje (EMAIL_DRIVER=none); solo lo registra en debug.
type NoopSender struct {
	log zerolog.Logger
}

// NewNoopSender construye el adaptador.
func NewNoopSender(log zerolog.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) Send(_ context.Context, msg notification.Message) error {
	s.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("email descartado (EMAIL_DRIVER=none)")
	return nil
}
