package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	redisclient "github.com/signage-lite/backend/internal/redis"
)

func main() {
	env := LoadEnvironment()

	// human-readable logs during development, JSON elsewhere
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	// presence tracking is optional; without Redis players just show offline
	if env.RedisAddress != "" {
		redisclient.Init(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := db.NewStore(db.DB)

	r := gin.Default()
	RegisterRoutes(r, env, store)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
