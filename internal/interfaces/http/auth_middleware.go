package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/pkg/jwt"
)

// LocalUsername key del operador autenticado en Fiber.
const LocalUsername = "username"

// AuthMiddleware valida el Bearer Token JWT y deja el operador en c.Locals.
// El operador queda como responsável por defecto de las movimentações.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, code, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return unauthorized(c, code, msg)
		}
		username, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido ou expirado")
		}
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// bearerToken extrae el token; si falta devuelve el código y mensaje de error.
func bearerToken(header string) (token, code, msg string) {
	if header == "" {
		return "", "MISSING_TOKEN", "header Authorization obrigatório"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	if token = strings.TrimSpace(rest); token == "" {
		return "", "MISSING_TOKEN", "token vazio"
	}
	return token, "", ""
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// GetUsername devuelve el operador del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}
