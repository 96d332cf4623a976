package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/domain"
)

type errorMapping struct {
	sentinel error
	status   int
	code     string
}

// Orden: el primer sentinel que coincide define la respuesta.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrGateway, fiber.StatusBadGateway, "GATEWAY"},
}

// writeError traduce errores de dominio a HTTP. Los de gateway e internos se registran
// y solo exponen el mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.sentinel) {
			continue
		}
		msg := userMessage(err, m.sentinel)
		if m.sentinel == domain.ErrGateway {
			log.Error().Err(err).Str("path", c.Path()).Msg("falha no gateway de dados")
			msg = m.sentinel.Error()
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("erro interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
}

// userMessage quita el prefijo "<sentinel>: " que agrega fmt.Errorf("%w: ...").
func userMessage(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && rest != "" {
		return rest
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo da requisição inválido"})
}
