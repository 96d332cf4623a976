// Package notification arma y despacha el email de estoque baixo/zerado.
package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/domain/inventory"
)

// Message email listo para el Sender. Params es el mapa plano de la plantilla EmailJS;
// Subject y Body los usa el envío por SMTP.
type Message struct {
	To      string
	Subject string
	Body    string
	Params  map[string]any
}

// Sender entrega un Message (EmailJS, SMTP o no-op).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher convierte alertas en mensajes y nunca escala el fallo del envío.
type Dispatcher struct {
	sender Sender
	log    zerolog.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log}
}

// Notify envía la alerta y devuelve el aviso para el operador.
func (d *Dispatcher) Notify(ctx context.Context, alert inventory.Alert) dto.Notice {
	msg := BuildMessage(alert)
	if err := d.sender.Send(ctx, msg); err != nil {
		d.log.Error().Err(err).
			Str("email", alert.Email).
			Str("product", alert.ProductName).
			Msg("falha ao enviar notificação")
		return dto.ErrorNotice("Falha ao enviar notificação")
	}
	d.log.Info().Str("email", alert.Email).Str("status", alert.Status).Msg("notificação enviada")
	return dto.SuccessNotice("Notificação enviada para " + alert.Email)
}

// BuildMessage arma asunto, cuerpo y parámetros de plantilla de la alerta.
func BuildMessage(a inventory.Alert) Message {
	subject := fmt.Sprintf("Produto %q com estoque baixo (%d)", a.ProductName, a.Quantity)
	if a.Status == inventory.AlertZeroed {
		subject = fmt.Sprintf("Produto %q sem estoque", a.ProductName)
	}
	notes := a.Notes
	if notes == "" {
		notes = "-"
	}
	body := fmt.Sprintf(
		"O produto %q agora tem %d unidades. Mínimo configurado: %d.\n\nTipo de movimentação: %s\nResponsável: %s\nObservações: %s",
		a.ProductName, a.Quantity, a.MinQuantity, a.MovementType, a.Responsible, notes,
	)
	return Message{
		To:      a.Email,
		Subject: subject,
		Body:    body,
		Params: map[string]any{
			"email":        a.Email,
			"product_name": a.ProductName,
			"status":       a.Status,
			"quantity":     a.Quantity,
			"min_quantity": a.MinQuantity,
		},
	}
}
