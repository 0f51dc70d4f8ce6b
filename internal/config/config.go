package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config armazena as configurações da aplicação
type Config struct {
	TokenAPI string
	Port     string
	GinMode  string
	LogLevel string
	LogJSON  bool

	// OCR remoto; com OCRAPIKey vazio o serviço usa o reconhecedor estático
	OCREndpoint string
	OCRAPIKey   string

	// Persistência de histórico; vazio desativa o banco
	DatabaseURL string

	// Basic auth dos endpoints de debug/métricas (hash bcrypt)
	DebugUser         string
	DebugPasswordHash string

	// Teto de escala usado quando nada é reconhecido no screenshot
	DefaultMaxHours float64
}

// Load carrega as configurações do ambiente
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()          // ./.env
	_ = godotenv.Load("../.env") // raiz do projeto

	cfg := &Config{
		TokenAPI:          os.Getenv("TOKEN_API"),
		Port:              os.Getenv("PORT"),
		GinMode:           os.Getenv("GIN_MODE"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogJSON:           os.Getenv("LOG_JSON") == "true",
		OCREndpoint:       os.Getenv("OCR_ENDPOINT"),
		OCRAPIKey:         os.Getenv("OCR_API_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DebugUser:         os.Getenv("DEBUG_USER"),
		DebugPasswordHash: os.Getenv("DEBUG_PASSWORD_HASH"),
	}

	// Validações obrigatórias
	if cfg.TokenAPI == "" {
		return nil, errors.New("TOKEN_API não configurado")
	}

	// Defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.DefaultMaxHours = 6
	if raw := os.Getenv("DEFAULT_MAX_HOURS"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return nil, errors.New("DEFAULT_MAX_HOURS inválido")
		}
		cfg.DefaultMaxHours = v
	}

	return cfg, nil
}
