package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "estoque-ti", cfg.App.Name)
	assert.Equal(t, GatewayPostgres, cfg.Gateway.Driver)
	assert.Equal(t, EmailNone, cfg.Email.Driver)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Empty(t, cfg.Refresh.Cron)
	assert.Empty(t, cfg.Dashboard.Widgets)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("GATEWAY_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("DASHBOARD_WIDGETS", "top_moved, zeroed_products,,")
	v.Set("EMAIL_DRIVER", "smtp")
	v.Set("SMTP_HOST", "smtp.local")
	v.Set("SMTP_FROM", "estoque@local")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, GatewayMemory, cfg.Gateway.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"top_moved", "zeroed_products"}, cfg.Dashboard.Widgets)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("GATEWAY_DRIVER", "supabase-rest")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("EMAIL_DRIVER", "emailjs")
	_, err = fromViper(v)
	assert.Error(t, err, "emailjs sin service/template/public key debe fallar")
}

func TestInvalidIntFallsBackToDefault(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "abc")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.HTTP.Port)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "postgres", Password: "p@ss/word", DBName: "estoque", SSLMode: "require"}
	assert.Equal(t, "postgres://postgres:p%40ss%2Fword@db:5432/estoque?sslmode=require", c.DSN())
	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{}.Location())
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Nowhere/Invalid"}.Location())
}
