package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-ti/internal/application/auth"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/pkg/jwt"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassword("s3nha")
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.Credentials{Username: "suporte", PasswordHash: hash},
		auth.JWTConfig{Secret: "segredo", ExpMinutes: 30, Issuer: "estoque-ti"},
	)
}

func TestLogin_OK(t *testing.T) {
	resp, err := newAuth(t).Login(dto.LoginRequest{Username: " suporte ", Password: "s3nha"})
	require.NoError(t, err)
	assert.Equal(t, 1800, resp.ExpiresIn)

	user, err := jwt.Parse("segredo", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "suporte", user)
}

func TestLogin_Rechazos(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Username: "suporte", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "outro", Password: "s3nha"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "", Password: "s3nha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_SinHashConfigurado(t *testing.T) {
	uc := auth.NewAuthUseCase(auth.Credentials{Username: "admin"}, auth.JWTConfig{Secret: "x", ExpMinutes: 1})
	_, err := uc.Login(dto.LoginRequest{Username: "admin", Password: "qualquer"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
