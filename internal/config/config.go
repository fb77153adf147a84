package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"s!"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	AIProvider string `env:"AI_PROVIDER" envDefault:"groq"`
	GroqAPIKey string `env:"GROQ_API_KEY"`

	MusicMaxQueue int `env:"MUSIC_MAX_QUEUE" envDefault:"100"`
}

// New loads .env (when present) and parses the environment into a Config.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
