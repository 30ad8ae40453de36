package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string `env:"DB_DSN,notEmpty"`
	ServerPort    string `env:"SERVER_PORT" envDefault:"8080"`
	SessionSecret string `env:"SESSION_SECRET,notEmpty"`

	SMTP   SMTP
	Sheets Sheets
	Admin  Admin
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT" envDefault:"587"`
	Endereco string `env:"SMTP_ENDERECO"`
	Senha    string `env:"SMTP_SENHA"`
	Nome     string `env:"SMTP_NOME" envDefault:"Plataforma de Seleção de Projetos"`
	BaseURL  string `env:"PLATAFORMA_URL" envDefault:"http://localhost:8080"`
}

type Sheets struct {
	APIKey string `env:"SHEETS_API_KEY"`
}

// Admin é o administrador criado na primeira subida do banco.
type Admin struct {
	Email string `env:"ADMIN_EMAIL" envDefault:"admin@selecao.local"`
	Senha string `env:"ADMIN_SENHA" envDefault:"Admin123!"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
