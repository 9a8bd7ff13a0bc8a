package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/centuition/backend/internal/assistant"
	"github.com/centuition/backend/internal/config"
	"github.com/centuition/backend/internal/models"
	"github.com/centuition/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create the directory for the database file
	err = os.MkdirAll(filepath.Dir(cfg.DBFilename), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database, migrate the schema and seed the system
	// categories
	err = models.Connect(cfg.DBFilename)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The assistant only runs with an API key
	var service *assistant.Service
	if cfg.AnthropicAPIKey != "" {
		client, err := assistant.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		service = assistant.NewService(client, cfg.AssistantModel, cfg.Currency)
	} else {
		log.Info().Msg("ANTHROPIC_API_KEY is not set, the assistant endpoint is disabled")
	}

	r, err := router.Router(cfg, service)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
