package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string
	StaticDir      string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
}

// LoadEnvironment reads and validates env vars; a local .env is honored when
// present.
func LoadEnvironment() Environment {
	_ = godotenv.Load()

	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		StaticDir:      os.Getenv("STATIC_DIR"),
	}

	if env.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if env.ServerAddress == "" {
		env.ServerAddress = ":3000"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.StaticDir == "" {
		env.StaticDir = "./public"
	}

	return env
}
