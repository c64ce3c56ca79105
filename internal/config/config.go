package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN: monta a string de conexão do Postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port)
}

type Config struct {
	HTTPPort    string
	CORSOrigins string
	Database    DatabaseConfig
}

func Load() *Config {
	// .env é opcional; em produção as variáveis vêm do ambiente
	if err := godotenv.Load(); err == nil {
		log.Println("Variáveis carregadas do arquivo .env")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "analytics"),
			Password: getEnv("POSTGRES_PASSWORD", "analytics"),
			Name:     getEnv("POSTGRES_DB", "sabores"),
		},
	}

	if cfg.Database.Password == "analytics" {
		log.Println("[WARN] POSTGRES_PASSWORD usando valor padrão, defina a senha real em produção.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
