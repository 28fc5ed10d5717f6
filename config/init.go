package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/tracing"
)

type Config struct {
	AppConfig           *AppConfig
	Logger              *logger.Config
	Tracing             *tracing.JaegerConfig
	DatabaseConfig      *DatabaseConfig
	SmartAdvocateConfig *SmartAdvocateConfig
	ContentConfig       *ContentConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:           &AppConfig{},
		Logger:              &logger.Config{},
		Tracing:             &tracing.JaegerConfig{},
		DatabaseConfig:      &DatabaseConfig{},
		SmartAdvocateConfig: &SmartAdvocateConfig{},
		ContentConfig:       &ContentConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading actslaw config: %v", err)
	}

	return config, nil
}
