package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// NotFoundBehavior decide o que o servidor de arquivos faz quando não consegue ler o arquivo pedido.
type NotFoundBehavior string

const (
	FallbackToIndex NotFoundBehavior = "fallback"
	Respond404      NotFoundBehavior = "404"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port     string `env:"PORT" envDefault:"3000"`
	Version  string `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Google Google
	Static Static
	Mail   Mail
	Queue  Queue
	Kommo  Kommo
}

type Google struct {
	// CredentialsJSON tem prioridade sobre CredentialsFile (útil em PaaS sem disco).
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	CredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON"`

	SpreadsheetID string `env:"SPREADSHEET_ID" envDefault:"SEU_SPREADSHEET_ID"`
	SheetRange    string `env:"SHEET_RANGE" envDefault:"Leads!A:F"`

	TokenURL       string        `env:"GOOGLE_TOKEN_URL"`
	SheetsEndpoint string        `env:"SHEETS_ENDPOINT"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}

type Static struct {
	Root             string           `env:"STATIC_ROOT" envDefault:"."`
	IndexFile        string           `env:"INDEX_FILE" envDefault:"index.html"`
	NotFoundBehavior NotFoundBehavior `env:"NOT_FOUND_BEHAVIOR" envDefault:"fallback"`
}

type Mail struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	User     string `env:"MAIL_USER"`
	Password string `env:"MAIL_PASS"`
	From     string `env:"MAIL_FROM" envDefault:"nao-responda@liguemedicina.com"`
	To       string `env:"MAIL_TO"`
}

// Enabled reports whether lead notifications by email are configured.
func (m Mail) Enabled() bool {
	return m.Host != "" && m.To != ""
}

// Queue configura a publicação de eventos de lead no RabbitMQ. Vazio desliga.
type Queue struct {
	URL string `env:"AMQP_URL"`
}

func (q Queue) Enabled() bool {
	return q.URL != ""
}

// Kommo configura a criação do lead no CRM. Sem token, desligado.
type Kommo struct {
	APIToken string `env:"KOMMO_API_TOKEN"`
	BaseURL  string `env:"KOMMO_BASE_URL" envDefault:"https://liguemedicina.kommo.com/api/v4"`
	StatusID int    `env:"KOMMO_STATUS_ID"`
}

func (k Kommo) Enabled() bool {
	return k.APIToken != ""
}

// Load lê o .env (se existir) e depois as variáveis de ambiente.
// Variáveis já definidas no ambiente não são sobrescritas pelo .env.
func Load(envFiles ...string) (*Config, error) {
	// .env é opcional
	_ = godotenv.Load(envFiles...)

	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Static.NotFoundBehavior {
	case FallbackToIndex, Respond404:
	default:
		return fmt.Errorf("%w: NOT_FOUND_BEHAVIOR must be %q or %q, got %q",
			ErrInvalidConfig, FallbackToIndex, Respond404, c.Static.NotFoundBehavior)
	}

	if c.Port == "" {
		return fmt.Errorf("%w: PORT is empty", ErrInvalidConfig)
	}
	if c.Google.SpreadsheetID == "" || c.Google.SheetRange == "" {
		return fmt.Errorf("%w: SPREADSHEET_ID and SHEET_RANGE are required", ErrInvalidConfig)
	}
	if c.Google.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive", ErrInvalidConfig)
	}

	return nil
}

// Addr é o endereço de escuta do servidor HTTP.
func (c *Config) Addr() string {
	return ":" + c.Port
}
