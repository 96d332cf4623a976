package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers soportados para el gateway de datos y para el envío de correo.
const (
	GatewayPostgres = "postgres"
	GatewayMemory   = "memory"

	EmailEmailJS = "emailjs"
	EmailSMTP    = "smtp"
	EmailNone    = "none"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	Gateway   GatewayConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Email     EmailConfig
	Log       LogConfig
	Refresh   RefreshConfig
	Dashboard DashboardConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, production
	Name     string
	Timezone string // zona usada para calcular "movimentações de hoje"
}

// Location devuelve la zona horaria configurada; UTC si no se puede cargar.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración de PostgreSQL (Supabase expone el mismo Postgres que usaba el front).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// GatewayConfig elige la implementación del gateway de datos.
type GatewayConfig struct {
	Driver string // postgres | memory
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig credenciales del operador de la consola (password como hash bcrypt).
type AuthConfig struct {
	Username     string
	PasswordHash string
}

// EmailConfig configuración del despachador de notificaciones.
type EmailConfig struct {
	Driver string // emailjs | smtp | none

	EmailJSURL        string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

// LogConfig nivel y archivo rotativo opcional.
type LogConfig struct {
	Level      string
	File       string // vacío = solo stdout
	MaxSizeMB  int
	MaxBackups int
}

// RefreshConfig recarga periódica del snapshot (vacío = deshabilitado).
type RefreshConfig struct {
	Cron string
}

// DashboardConfig widgets habilitados del dashboard.
type DashboardConfig struct {
	Widgets []string // vacío = todos
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, EMAIL_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "estoque-ti"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Sao_Paulo"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "estoque_ti"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Gateway: GatewayConfig{
			Driver: strings.ToLower(getString(v, "GATEWAY_DRIVER", GatewayPostgres)),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", "*"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "estoque-ti"),
		},
		Auth: AuthConfig{
			Username:     getString(v, "AUTH_USERNAME", "admin"),
			PasswordHash: getString(v, "AUTH_PASSWORD_HASH", ""),
		},
		Email: EmailConfig{
			Driver:            strings.ToLower(getString(v, "EMAIL_DRIVER", EmailNone)),
			EmailJSURL:        getString(v, "EMAILJS_URL", "https://api.emailjs.com"),
			EmailJSServiceID:  getString(v, "EMAILJS_SERVICE_ID", ""),
			EmailJSTemplateID: getString(v, "EMAILJS_TEMPLATE_ID", ""),
			EmailJSPublicKey:  getString(v, "EMAILJS_PUBLIC_KEY", ""),
			EmailJSPrivateKey: getString(v, "EMAILJS_PRIVATE_KEY", ""),
			SMTPHost:          getString(v, "SMTP_HOST", ""),
			SMTPPort:          getInt(v, "SMTP_PORT", 587),
			SMTPUser:          getString(v, "SMTP_USER", ""),
			SMTPPassword:      getString(v, "SMTP_PASSWORD", ""),
			SMTPFrom:          getString(v, "SMTP_FROM", ""),
		},
		Log: LogConfig{
			Level:      getString(v, "LOG_LEVEL", "info"),
			File:       getString(v, "LOG_FILE", ""),
			MaxSizeMB:  getInt(v, "LOG_MAX_SIZE_MB", 50),
			MaxBackups: getInt(v, "LOG_MAX_BACKUPS", 5),
		},
		Refresh: RefreshConfig{
			Cron: getString(v, "REFRESH_CRON", ""),
		},
		Dashboard: DashboardConfig{
			Widgets: splitList(getString(v, "DASHBOARD_WIDGETS", "")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rechaza drivers desconocidos; los widgets se validan al construir el renderer.
func (c *Config) validate() error {
	switch c.Gateway.Driver {
	case GatewayPostgres, GatewayMemory:
	default:
		return fmt.Errorf("config: GATEWAY_DRIVER desconocido %q", c.Gateway.Driver)
	}
	switch c.Email.Driver {
	case EmailEmailJS:
		if c.Email.EmailJSServiceID == "" || c.Email.EmailJSTemplateID == "" || c.Email.EmailJSPublicKey == "" {
			return fmt.Errorf("config: EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID y EMAILJS_PUBLIC_KEY son obligatorios")
		}
	case EmailSMTP:
		if c.Email.SMTPHost == "" || c.Email.SMTPFrom == "" {
			return fmt.Errorf("config: SMTP_HOST y SMTP_FROM son obligatorios")
		}
	case EmailNone:
	default:
		return fmt.Errorf("config: EMAIL_DRIVER desconocido %q", c.Email.Driver)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
