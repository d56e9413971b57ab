package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	ServerPort    string
	JWTSecret     string
	UploadDir     string
	UploadBaseURL string
	DemoAutorID   string
}

func Load() (*Config, error) {
	// carrega .env em dev

	_ = godotenv.Load("../.env.local")

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  os.Getenv("DB_SSLMODE"),
		DBTimezone: os.Getenv("DB_TIMEZONE"),

		ServerPort:    env("SERVER_PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		UploadDir:     env("UPLOAD_DIR", "./uploads"),
		UploadBaseURL: env("UPLOAD_BASE_URL", "http://localhost:8080"),
		DemoAutorID:   env("DEMO_AUTOR_ID", "00000000-0000-0000-0000-000000000001"),
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("Variaveis de ambiente de DB não configuradas")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET não configurado")
	}
	return cfg, nil
}

func env(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}
