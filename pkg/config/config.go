package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Mail backend selectors.
const (
	MailBackendConsole  = "console"
	MailBackendSendgrid = "sendgrid"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS     CORSConfig
	Log      LogConfig
	Roster   RosterConfig
	Mail     MailConfig
	WhatsApp WhatsAppConfig
	Export   ExportConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RosterConfig carries upload limits and the default progress thresholds
// applied before an operator overrides them.
type RosterConfig struct {
	NoProgressBelow int
	InProgressBelow int
	MaxUploadBytes  int64
}

// MailConfig selects and parameterises the email transport. Sender identity
// and the reporting-period label are fixed per deployment.
type MailConfig struct {
	Backend      string
	SendgridKey  string
	FromName     string
	FromAddress  string
	ReportPeriod string
	SupportPhone string
}

// WhatsAppConfig points the dispatcher at the template-message middleware.
type WhatsAppConfig struct {
	URL      string
	Token    string
	Template string
	Timeout  time.Duration
}

// ExportConfig gates the roster download endpoint.
type ExportConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxUpload := v.GetInt64("ROSTER_MAX_UPLOAD_SIZE")
	if maxUpload <= 0 {
		maxUpload = 5 * 1024 * 1024
	}
	cfg.Roster = RosterConfig{
		NoProgressBelow: v.GetInt("ROSTER_NO_PROGRESS_BELOW"),
		InProgressBelow: v.GetInt("ROSTER_IN_PROGRESS_BELOW"),
		MaxUploadBytes:  maxUpload,
	}

	cfg.Mail = MailConfig{
		Backend:      v.GetString("MAIL_BACKEND"),
		SendgridKey:  v.GetString("SENDGRID_API_KEY"),
		FromName:     v.GetString("MAIL_FROM_NAME"),
		FromAddress:  v.GetString("MAIL_FROM_ADDRESS"),
		ReportPeriod: v.GetString("MAIL_REPORT_PERIOD"),
		SupportPhone: v.GetString("MAIL_SUPPORT_PHONE"),
	}

	cfg.WhatsApp = WhatsAppConfig{
		URL:      v.GetString("WHATSAPP_URL"),
		Token:    v.GetString("WHATSAPP_TOKEN"),
		Template: v.GetString("WHATSAPP_TEMPLATE"),
		Timeout:  parseDuration(v.GetString("WHATSAPP_TIMEOUT"), 15*time.Second),
	}

	cfg.Export = ExportConfig{
		Enabled: v.GetBool("ENABLE_EXPORT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ROSTER_NO_PROGRESS_BELOW", 4)
	v.SetDefault("ROSTER_IN_PROGRESS_BELOW", 10)
	v.SetDefault("ROSTER_MAX_UPLOAD_SIZE", 5*1024*1024)

	v.SetDefault("MAIL_BACKEND", MailBackendConsole)
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM_NAME", "MedTrain Team")
	v.SetDefault("MAIL_FROM_ADDRESS", "contact@med-train.com")
	v.SetDefault("MAIL_REPORT_PERIOD", "August 2025")
	v.SetDefault("MAIL_SUPPORT_PHONE", "7975764489")

	v.SetDefault("WHATSAPP_URL", "")
	v.SetDefault("WHATSAPP_TOKEN", "")
	v.SetDefault("WHATSAPP_TEMPLATE", "reportassist")
	v.SetDefault("WHATSAPP_TIMEOUT", "15s")

	v.SetDefault("ENABLE_EXPORT", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
