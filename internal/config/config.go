package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config reúne a configuração da aplicação, carregada de um arquivo TOML
// com sobreposição por variáveis de ambiente.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
}

type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type AuthConfig struct {
	// JWTSecret nunca deve ir para o arquivo em produção; use JWT_SECRET.
	JWTSecret string `toml:"jwt_secret"`
}

// Default devolve a configuração padrão.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Path: "data/tariffs.db"},
	}
}

// Load lê o arquivo TOML indicado (ausência não é erro: valem os padrões)
// e aplica as sobreposições de ambiente.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET não configurado")
	}
	return cfg, nil
}
