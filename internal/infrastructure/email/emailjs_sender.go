package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/estoque-ti/internal/application/notification"
)

var _ notification.Sender = (*EmailJSSender)(nil)

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJSSender envía la plantilla de alerta vía la API REST de EmailJS.
type EmailJSSender struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	httpClient *http.Client
}

// EmailJSConfig credenciales de la cuenta EmailJS.
type EmailJSConfig struct {
	BaseURL    string // https://api.emailjs.com
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string // opcional; requerido si la cuenta exige "strict mode"
}

// NewEmailJSSender construye el adaptador.
func NewEmailJSSender(cfg EmailJSConfig) *EmailJSSender {
	return &EmailJSSender{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams map[string]any `json:"template_params"`
}

// Send publica los Params del mensaje como template_params.
func (s *EmailJSSender) Send(ctx context.Context, msg notification.Message) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      s.serviceID,
		TemplateID:     s.templateID,
		UserID:         s.publicKey,
		AccessToken:    s.privateKey,
		TemplateParams: msg.Params,
	})
	if err != nil {
		return fmt.Errorf("emailjs: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("emailjs: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("emailjs: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	// EmailJS responde texto plano ("OK" o el motivo del rechazo).
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("emailjs: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}
