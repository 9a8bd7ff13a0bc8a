// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var ErrJWTSecretMissing = errors.New("the JWT_SECRET environment variable must be set")

// Config holds everything the server reads from the environment.
type Config struct {
	// DBFilename is the path of the SQLite database file.
	DBFilename string

	// JWTSecret signs the session tokens. Required.
	JWTSecret string

	// AnthropicAPIKey enables the assistant when set.
	AnthropicAPIKey string

	// AssistantModel overrides the default model for the assistant.
	AssistantModel string

	// Currency is the ISO 4217 code the assistant formats amounts in.
	Currency string

	// Port the HTTP server listens on.
	Port string
}

// Load reads the configuration. A .env file is honored when present,
// real environment variables win.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("config")
	}

	config := Config{
		DBFilename:      getenv("DB_FILENAME", "data/centuition.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AssistantModel:  os.Getenv("ASSISTANT_MODEL"),
		Currency:        getenv("CURRENCY", "USD"),
		Port:            getenv("PORT", "8080"),
	}

	if config.JWTSecret == "" {
		return Config{}, ErrJWTSecretMissing
	}

	return config, nil
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
