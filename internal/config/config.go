package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Document  DocumentConfig
	Submitter SubmitterConfig
	Reference ReferenceConfig
	Session   SessionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DocumentConfig selects the document variant and its pricing constants.
type DocumentConfig struct {
	Kind               string   `mapstructure:"kind"`
	Prefix             string   `mapstructure:"prefix"`
	TaxComponentRate   string   `mapstructure:"tax_component_rate"`
	FixedTerms         []string `mapstructure:"fixed_terms"`
	DefaultPaymentTerm string   `mapstructure:"default_payment_term"`

	// Capability overrides. Nil keeps the preset of Kind.
	HasDiscountTax         *bool `mapstructure:"has_discount_tax"`
	HasSurcharge           *bool `mapstructure:"has_surcharge"`
	HasFixedTermsChecklist *bool `mapstructure:"has_fixed_terms_checklist"`
	HasTaxID               *bool `mapstructure:"has_tax_id"`
}

// SubmitterConfig holds settings for the remote document-generation service.
type SubmitterConfig struct {
	Provider    string `mapstructure:"provider"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`

	// Used by the pdf provider.
	OutputDir string `mapstructure:"output_dir"`
	PDFTitle  string `mapstructure:"pdf_title"`
}

// ReferenceConfig points at an optional XLSX workbook of lookup lists.
type ReferenceConfig struct {
	XLSXPath string `mapstructure:"xlsx_path"`
}

// SessionConfig holds operator session housekeeping settings.
type SessionConfig struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load reads configuration from environment variables with the QUOTEGEN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUOTEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Document defaults
	v.SetDefault("document.kind", "invoice")
	v.SetDefault("document.prefix", "")
	v.SetDefault("document.tax_component_rate", "9")
	v.SetDefault("document.fixed_terms", "")
	v.SetDefault("document.default_payment_term", "Immediate payment")

	// Submitter defaults
	v.SetDefault("submitter.provider", "http")
	v.SetDefault("submitter.endpoint", "http://localhost:3001/geninvoice")
	v.SetDefault("submitter.timeout_secs", 30)
	v.SetDefault("submitter.output_dir", "documents")
	v.SetDefault("submitter.pdf_title", "")

	// Reference defaults
	v.SetDefault("reference.xlsx_path", "")

	// Session defaults
	v.SetDefault("session.idle_timeout", "2h")
	v.SetDefault("session.sweep_interval", "5m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                         "QUOTEGEN_SERVER_PORT",
		"server.read_timeout":                 "QUOTEGEN_SERVER_READ_TIMEOUT",
		"server.write_timeout":                "QUOTEGEN_SERVER_WRITE_TIMEOUT",
		"server.environment":                  "QUOTEGEN_SERVER_ENVIRONMENT",
		"log.level":                           "QUOTEGEN_LOG_LEVEL",
		"cors.allowed_origins":                "QUOTEGEN_CORS_ALLOWED_ORIGINS",
		"document.kind":                       "QUOTEGEN_DOCUMENT_KIND",
		"document.prefix":                     "QUOTEGEN_DOCUMENT_PREFIX",
		"document.tax_component_rate":         "QUOTEGEN_DOCUMENT_TAX_COMPONENT_RATE",
		"document.fixed_terms":                "QUOTEGEN_DOCUMENT_FIXED_TERMS",
		"document.default_payment_term":       "QUOTEGEN_DOCUMENT_DEFAULT_PAYMENT_TERM",
		"document.has_discount_tax":           "QUOTEGEN_DOCUMENT_HAS_DISCOUNT_TAX",
		"document.has_surcharge":              "QUOTEGEN_DOCUMENT_HAS_SURCHARGE",
		"document.has_fixed_terms_checklist":  "QUOTEGEN_DOCUMENT_HAS_FIXED_TERMS_CHECKLIST",
		"document.has_tax_id":                 "QUOTEGEN_DOCUMENT_HAS_TAX_ID",
		"submitter.provider":                  "QUOTEGEN_SUBMITTER_PROVIDER",
		"submitter.endpoint":                  "QUOTEGEN_SUBMITTER_ENDPOINT",
		"submitter.timeout_secs":              "QUOTEGEN_SUBMITTER_TIMEOUT_SECS",
		"submitter.output_dir":                "QUOTEGEN_SUBMITTER_OUTPUT_DIR",
		"submitter.pdf_title":                 "QUOTEGEN_SUBMITTER_PDF_TITLE",
		"reference.xlsx_path":                 "QUOTEGEN_REFERENCE_XLSX_PATH",
		"session.idle_timeout":                "QUOTEGEN_SESSION_IDLE_TIMEOUT",
		"session.sweep_interval":              "QUOTEGEN_SESSION_SWEEP_INTERVAL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QUOTEGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QUOTEGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins"), ","),
	}

	cfg.Document = DocumentConfig{
		Kind:                   v.GetString("document.kind"),
		Prefix:                 v.GetString("document.prefix"),
		TaxComponentRate:       v.GetString("document.tax_component_rate"),
		FixedTerms:             splitList(v.GetString("document.fixed_terms"), "|"),
		DefaultPaymentTerm:     v.GetString("document.default_payment_term"),
		HasDiscountTax:         optionalBool(v, "document.has_discount_tax"),
		HasSurcharge:           optionalBool(v, "document.has_surcharge"),
		HasFixedTermsChecklist: optionalBool(v, "document.has_fixed_terms_checklist"),
		HasTaxID:               optionalBool(v, "document.has_tax_id"),
	}

	cfg.Submitter = SubmitterConfig{
		Provider:    v.GetString("submitter.provider"),
		Endpoint:    v.GetString("submitter.endpoint"),
		TimeoutSecs: v.GetInt("submitter.timeout_secs"),
		OutputDir:   v.GetString("submitter.output_dir"),
		PDFTitle:    v.GetString("submitter.pdf_title"),
	}

	cfg.Reference = ReferenceConfig{
		XLSXPath: v.GetString("reference.xlsx_path"),
	}

	cfg.Session = SessionConfig{
		IdleTimeout:   v.GetDuration("session.idle_timeout"),
		SweepInterval: v.GetDuration("session.sweep_interval"),
	}

	return cfg, nil
}

// splitList splits s on sep, trimming entries and dropping empty ones.
func splitList(s, sep string) []string {
	var out []string
	for _, item := range strings.Split(s, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func optionalBool(v *viper.Viper, key string) *bool {
	if !v.IsSet(key) {
		return nil
	}
	b := v.GetBool(key)
	return &b
}
